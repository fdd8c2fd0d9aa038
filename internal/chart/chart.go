// Package chart maps stock records to a Chart.js line chart configuration.
package chart

import (
	"github.com/shopspring/decimal"

	"mapup/internal/model"
)

const (
	PriceAxis  = "y"
	VolumeAxis = "y1"
)

// Config is a Chart.js configuration object. It is embedded in the analytics
// page as JSON and handed to the browser-side renderer unchanged.
type Config struct {
	Type    string  `json:"type"`
	Data    Data    `json:"data"`
	Options Options `json:"options"`
}

type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BorderColor     string    `json:"borderColor"`
	BackgroundColor string    `json:"backgroundColor"`
	Fill            bool      `json:"fill"`
	Tension         float64   `json:"tension"`
	YAxisID         string    `json:"yAxisID,omitempty"`
}

type Options struct {
	Responsive          bool            `json:"responsive"`
	MaintainAspectRatio bool            `json:"maintainAspectRatio"`
	Plugins             Plugins         `json:"plugins"`
	Scales              map[string]Axis `json:"scales"`
}

type Plugins struct {
	Legend  Legend  `json:"legend"`
	Tooltip Tooltip `json:"tooltip"`
}

type Font struct {
	Size   int    `json:"size"`
	Weight string `json:"weight,omitempty"`
}

type Legend struct {
	Display  bool         `json:"display"`
	Position string       `json:"position"`
	Labels   LegendLabels `json:"labels"`
}

type LegendLabels struct {
	Color string `json:"color"`
	Font  Font   `json:"font"`
}

type Tooltip struct {
	BackgroundColor string `json:"backgroundColor"`
	TitleColor      string `json:"titleColor"`
	BodyColor       string `json:"bodyColor"`
	TitleFont       Font   `json:"titleFont"`
	BodyFont        Font   `json:"bodyFont"`
}

type Axis struct {
	Type     string    `json:"type,omitempty"`
	Position string    `json:"position,omitempty"`
	Title    AxisTitle `json:"title"`
	Grid     Grid      `json:"grid"`
	Ticks    Ticks     `json:"ticks"`
}

type AxisTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
	Color   string `json:"color"`
	Font    Font   `json:"font"`
}

type Grid struct {
	Display         *bool  `json:"display,omitempty"`
	Color           string `json:"color,omitempty"`
	DrawOnChartArea *bool  `json:"drawOnChartArea,omitempty"`
}

type Ticks struct {
	Color         string `json:"color"`
	MaxTicksLimit int    `json:"maxTicksLimit,omitempty"`
}

type series struct {
	label, border, background string
	axis                      string
	field                     func(model.StockRecord) decimal.Decimal
}

var seriesDefs = []series{
	{"Open", "rgba(75, 192, 192, 1)", "rgba(75, 192, 192, 0.2)", "", func(r model.StockRecord) decimal.Decimal { return r.Open }},
	{"High", "rgba(255, 99, 132, 1)", "rgba(255, 99, 132, 0.2)", "", func(r model.StockRecord) decimal.Decimal { return r.High }},
	{"Low", "rgba(54, 162, 235, 1)", "rgba(54, 162, 235, 0.2)", "", func(r model.StockRecord) decimal.Decimal { return r.Low }},
	{"Close", "rgba(102, 51, 153, 1)", "rgba(102, 51, 153, 0.2)", "", func(r model.StockRecord) decimal.Decimal { return r.Close }},
	{"Volume", "rgba(255, 206, 86, 1)", "rgba(255, 206, 86, 0.2)", VolumeAxis, func(r model.StockRecord) decimal.Decimal { return r.Volume }},
}

// Build maps records, in order, to five aligned series sharing one label axis.
// Every point is passed through; an empty input yields an empty chart.
func Build(records []model.StockRecord) Config {
	labels := make([]string, len(records))
	for i, r := range records {
		labels[i] = r.DisplayDate()
	}

	datasets := make([]Dataset, 0, len(seriesDefs))
	for _, s := range seriesDefs {
		points := make([]float64, len(records))
		for i, r := range records {
			points[i] = s.field(r).InexactFloat64()
		}
		datasets = append(datasets, Dataset{
			Label:           s.label,
			Data:            points,
			BorderColor:     s.border,
			BackgroundColor: s.background,
			Fill:            true,
			Tension:         0.3,
			YAxisID:         s.axis,
		})
	}

	return Config{
		Type:    "line",
		Data:    Data{Labels: labels, Datasets: datasets},
		Options: defaultOptions(),
	}
}

// Dataset returns the dataset with the given label.
func (c Config) Dataset(label string) (Dataset, bool) {
	for _, d := range c.Data.Datasets {
		if d.Label == label {
			return d, true
		}
	}
	return Dataset{}, false
}

func axisTitle(text string) AxisTitle {
	return AxisTitle{Display: true, Text: text, Color: "#666", Font: Font{Size: 14, Weight: "bold"}}
}

func boolPtr(b bool) *bool { return &b }

func defaultOptions() Options {
	return Options{
		Responsive:          true,
		MaintainAspectRatio: false,
		Plugins: Plugins{
			Legend: Legend{
				Display:  true,
				Position: "top",
				Labels:   LegendLabels{Color: "#333", Font: Font{Size: 14, Weight: "bold"}},
			},
			Tooltip: Tooltip{
				BackgroundColor: "rgba(102, 51, 153, 0.9)",
				TitleColor:      "#ffffff",
				BodyColor:       "#ffffff",
				TitleFont:       Font{Size: 14, Weight: "bold"},
				BodyFont:        Font{Size: 12},
			},
		},
		Scales: map[string]Axis{
			"x": {
				Title: axisTitle("Date"),
				Grid:  Grid{Display: boolPtr(false)},
				Ticks: Ticks{Color: "#666", MaxTicksLimit: 10},
			},
			PriceAxis: {
				Title: axisTitle("Price"),
				Grid:  Grid{Color: "rgba(200, 200, 200, 0.2)"},
				Ticks: Ticks{Color: "#666"},
			},
			VolumeAxis: {
				Type:     "linear",
				Position: "right",
				Title:    axisTitle("Volume"),
				Grid:     Grid{DrawOnChartArea: boolPtr(false)},
				Ticks:    Ticks{Color: "#666"},
			},
		},
	}
}

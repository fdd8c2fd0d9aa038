package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// DisplayDateLayout is the YYYY-MM-DD layout used for table cells and chart labels.
const DisplayDateLayout = "2006-01-02"

// StockRecord is one row of the uploaded stock dataset as served by the backend.
type StockRecord struct {
	Date         string          `json:"date"`
	Open         decimal.Decimal `json:"open"`
	High         decimal.Decimal `json:"high"`
	Low          decimal.Decimal `json:"low"`
	Close        decimal.Decimal `json:"close"`
	Volume       decimal.Decimal `json:"volume"`
	OpenInterest decimal.Decimal `json:"openInterest"`
}

// stockRecordWire accepts both the backend's "openInt" key and "openInterest".
type stockRecordWire struct {
	Date         string           `json:"date"`
	Open         decimal.Decimal  `json:"open"`
	High         decimal.Decimal  `json:"high"`
	Low          decimal.Decimal  `json:"low"`
	Close        decimal.Decimal  `json:"close"`
	Volume       decimal.Decimal  `json:"volume"`
	OpenInt      *decimal.Decimal `json:"openInt"`
	OpenInterest *decimal.Decimal `json:"openInterest"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *StockRecord) UnmarshalJSON(data []byte) error {
	var w stockRecordWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = StockRecord{
		Date:   w.Date,
		Open:   w.Open,
		High:   w.High,
		Low:    w.Low,
		Close:  w.Close,
		Volume: w.Volume,
	}
	switch {
	case w.OpenInterest != nil:
		r.OpenInterest = *w.OpenInterest
	case w.OpenInt != nil:
		r.OpenInterest = *w.OpenInt
	}
	return nil
}

// DisplayDate returns the record date as YYYY-MM-DD in UTC. Dates that cannot be
// parsed are returned unchanged.
func (r StockRecord) DisplayDate() string {
	return FormatDate(r.Date)
}

// FormatDate reformats an ISO-8601 timestamp or date to YYYY-MM-DD in UTC.
func FormatDate(raw string) string {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", DisplayDateLayout} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format(DisplayDateLayout)
		}
	}
	return raw
}

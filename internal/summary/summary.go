// Package summary supplies the aggregate counters shown above the stock table.
package summary

import (
	"context"

	"mapup/internal/model"
)

// Provider returns the current SummaryStats.
type Provider interface {
	Stats(ctx context.Context) (model.SummaryStats, error)
}

// Defaults are the counters shown until the backend serves real ones.
var Defaults = model.SummaryStats{
	TotalFiles:     12,
	TotalRecords:   4500,
	LastUploadDate: "2024-10-28",
	DataValidity:   model.DataValid,
	IsProcessing:   false,
}

// StaticProvider always returns the same stats.
type StaticProvider struct {
	stats model.SummaryStats
}

// NewStaticProvider returns a Provider serving stats.
func NewStaticProvider(stats model.SummaryStats) *StaticProvider {
	return &StaticProvider{stats: stats}
}

func (p *StaticProvider) Stats(context.Context) (model.SummaryStats, error) {
	return p.stats, nil
}

// Panel is the view model for the summary cards.
type Panel struct {
	Stats      model.SummaryStats
	ValidClass string
	Status     string
}

// NewPanel derives the display labels from s.
func NewPanel(s model.SummaryStats) Panel {
	p := Panel{Stats: s, ValidClass: "bad", Status: "Completed"}
	if s.IsValid() {
		p.ValidClass = "ok"
	}
	if s.IsProcessing {
		p.Status = "Processing"
	}
	return p
}

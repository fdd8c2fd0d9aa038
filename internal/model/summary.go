package model

// DataValid is the DataValidity value shown in the "ok" colour.
const DataValid = "Valid"

// SummaryStats are the aggregate counters shown in the summary panel.
type SummaryStats struct {
	TotalFiles     int    `json:"totalFiles"`
	TotalRecords   int    `json:"totalRecords"`
	LastUploadDate string `json:"lastUploadDate"`
	DataValidity   string `json:"dataValidity"`
	IsProcessing   bool   `json:"isProcessing"`
}

// IsValid reports whether the data validity flag is "Valid".
func (s SummaryStats) IsValid() bool {
	return s.DataValidity == DataValid
}

// LastUploadLabel returns the last upload date or "N/A".
func (s SummaryStats) LastUploadLabel() string {
	if s.LastUploadDate == "" {
		return "N/A"
	}
	return s.LastUploadDate
}

// ValidityLabel returns the validity flag or "Unknown".
func (s SummaryStats) ValidityLabel() string {
	if s.DataValidity == "" {
		return "Unknown"
	}
	return s.DataValidity
}

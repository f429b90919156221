package model

import "time"

// Dataset is one loaded permit snapshot with its computed dashboard.
type Dataset struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Source      string    `json:"source"` // file path, URL, or "upload"/"sample"
	RecordCount int       `json:"record_count"`
	Status      string    `json:"status"` // "pending", "computing", "ready", "failed"
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ComputeMetrics summarizes one dashboard computation over a snapshot.
type ComputeMetrics struct {
	DatasetID       string         `json:"dataset_id"`
	TotalRecords    int            `json:"total_records"`
	MissingYear     int            `json:"missing_year"`
	MissingCounty   int            `json:"missing_county"`
	Unclassified    int            `json:"unclassified"`
	WithoutJobValue int            `json:"without_job_value"`
	SeriesRowCounts map[string]int `json:"series_row_counts"`
	Duration        time.Duration  `json:"duration"`
	ComputedAt      time.Time      `json:"computed_at"`
}

// ExportResult represents the result of one export operation
type ExportResult struct {
	Type        string    `json:"type"` // "csv", "json"
	Path        string    `json:"path"`
	RecordCount int       `json:"record_count"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
	ExportedAt  time.Time `json:"exported_at"`
}

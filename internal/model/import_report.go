// internal/model/import_report.go
package model

// ImportReport summarizes one CSV file run through the ingestion pipeline.
type ImportReport struct {
	File    string `json:"file"`
	Created int    `json:"created"`
	Skipped int    `json:"skipped"`
}

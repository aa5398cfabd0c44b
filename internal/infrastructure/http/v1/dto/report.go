package dto

import "quotify/internal/domain/report"

// GenerateReportResponse carries an on-screen report.
type GenerateReportResponse struct {
	ReportType string                    `json:"reportType"`
	Title      string                    `json:"title"`
	Count      int                       `json:"count"`
	Rows       []map[string]report.Value `json:"rows"`
}

// NewGenerateReportResponse flattens a report table into row maps.
func NewGenerateReportResponse(reportType string, table *report.Table) GenerateReportResponse {
	return GenerateReportResponse{
		ReportType: reportType,
		Title:      table.Title,
		Count:      len(table.Rows),
		Rows:       table.RowMaps(),
	}
}

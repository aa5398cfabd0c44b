// Package export renders report tables to CSV, Excel and PDF files.
package export

import (
	"fmt"
	"time"

	"quotify/internal/domain/report"
)

// MIME types by format.
const (
	MIMECSV   = "text/csv"
	MIMEExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMEPDF   = "application/pdf"
)

// File is a rendered export.
type File struct {
	Name    string
	MIME    string
	Content []byte
}

// Render produces the file for a table in the requested format.
// Unknown formats fall back to CSV.
func Render(table *report.Table, reportType, format string) (*File, error) {
	var (
		content []byte
		ext     string
		mime    string
		err     error
	)
	switch format {
	case report.FormatExcel:
		content, err = RenderExcel(table)
		ext, mime = "xlsx", MIMEExcel
	case report.FormatPDF:
		content, err = RenderPDF(table)
		ext, mime = "pdf", MIMEPDF
	default:
		content, err = RenderCSV(table)
		ext, mime = "csv", MIMECSV
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", ext, err)
	}
	return &File{
		Name:    Filename(reportType, ext, time.Now()),
		MIME:    mime,
		Content: content,
	}, nil
}

// Filename builds the canonical export file name.
func Filename(reportType, ext string, now time.Time) string {
	return fmt.Sprintf("report_%s_%s.%s", reportType, now.UTC().Format("20060102150405"), ext)
}

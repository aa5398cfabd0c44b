package export

import (
	"bytes"
	"encoding/csv"

	"quotify/internal/domain/report"
)

// RenderCSV writes a header row followed by the data rows.
func RenderCSV(table *report.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = col.Name
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i := range table.Columns {
			if i < len(row) {
				record[i] = row[i].Display()
			} else {
				record[i] = ""
			}
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

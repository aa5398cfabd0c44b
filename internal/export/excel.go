package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"quotify/internal/domain/report"
)

const (
	excelSheet       = "Report"
	excelAccent      = "BC4749"
	excelStripe      = "F5F5F5"
	excelMoneyFormat = "$#,##0.00"
	excelHeaderRow   = 4
)

// RenderExcel writes a styled worksheet: title, generation timestamp,
// colored header, striped data rows and a record count footer.
func RenderExcel(table *report.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(excelSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Color: excelAccent},
	})
	if err != nil {
		return nil, err
	}
	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Italic: true, Size: 10},
	})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{excelAccent}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, err
	}
	stripeStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{excelStripe}},
	})
	if err != nil {
		return nil, err
	}
	moneyFormat := excelMoneyFormat
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFormat})
	if err != nil {
		return nil, err
	}
	moneyStripeStyle, err := f.NewStyle(&excelize.Style{
		Fill:         excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{excelStripe}},
		CustomNumFmt: &moneyFormat,
	})
	if err != nil {
		return nil, err
	}
	footerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	if err := f.SetCellValue(excelSheet, "A1", table.Title); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(excelSheet, "A1", "A1", titleStyle); err != nil {
		return nil, err
	}
	generated := fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05"))
	if err := f.SetCellValue(excelSheet, "A2", generated); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(excelSheet, "A2", "A2", subtitleStyle); err != nil {
		return nil, err
	}

	widths := make([]int, len(table.Columns))
	for i, col := range table.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, excelHeaderRow)
		if err := f.SetCellValue(excelSheet, cell, col.Name); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(excelSheet, cell, cell, headerStyle); err != nil {
			return nil, err
		}
		widths[i] = len(col.Name)
	}

	for r, row := range table.Rows {
		rowNum := excelHeaderRow + 1 + r
		stripe := r%2 == 1
		for c := range table.Columns {
			cell, _ := excelize.CoordinatesToCellName(c+1, rowNum)
			var value report.Value
			if c < len(row) {
				value = row[c]
			}
			if err := setExcelCell(f, cell, value); err != nil {
				return nil, err
			}

			style := 0
			switch {
			case value.Kind() == report.KindDecimal && stripe:
				style = moneyStripeStyle
			case value.Kind() == report.KindDecimal:
				style = moneyStyle
			case stripe:
				style = stripeStyle
			}
			if style != 0 {
				if err := f.SetCellStyle(excelSheet, cell, cell, style); err != nil {
					return nil, err
				}
			}

			if n := len(displayForWidth(value)); n > widths[c] {
				widths[c] = n
			}
		}
	}

	for i := range table.Columns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		width := float64(widths[i] + 2)
		if width < 15 {
			width = 15
		}
		if err := f.SetColWidth(excelSheet, name, name, width); err != nil {
			return nil, err
		}
	}

	footerRow := excelHeaderRow + len(table.Rows) + 3
	footerCell, _ := excelize.CoordinatesToCellName(1, footerRow)
	if err := f.SetCellValue(excelSheet, footerCell, fmt.Sprintf("Total Records: %d", len(table.Rows))); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(excelSheet, footerCell, footerCell, footerStyle); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setExcelCell(f *excelize.File, cell string, value report.Value) error {
	switch value.Kind() {
	case report.KindInt:
		return f.SetCellValue(excelSheet, cell, value.Int())
	case report.KindDecimal:
		fv, _ := value.Dec().Float64()
		return f.SetCellValue(excelSheet, cell, fv)
	case report.KindBool:
		if value.Flag() {
			return f.SetCellValue(excelSheet, cell, "Yes")
		}
		return f.SetCellValue(excelSheet, cell, "No")
	case report.KindTime:
		return f.SetCellValue(excelSheet, cell, value.Timestamp().Format("2006-01-02 15:04:05"))
	case report.KindNull:
		return nil
	default:
		return f.SetCellValue(excelSheet, cell, value.Str())
	}
}

func displayForWidth(value report.Value) string {
	if value.Kind() == report.KindBool {
		if value.Flag() {
			return "Yes"
		}
		return "No"
	}
	return value.Display()
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "right", "top", "bottom"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Style: 1, Color: "D9D9D9"}
	}
	return borders
}

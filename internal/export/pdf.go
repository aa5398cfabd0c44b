package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"quotify/internal/domain/report"
)

const (
	pdfMargin      = 20.0
	pdfCellPad     = 8.0
	pdfMinColWidth = 40.0
	pdfLineHeight  = 14.0
	pdfFontSize    = 9.0
)

// RenderPDF writes an A4 landscape table with measured column widths,
// word-wrapped cells and repeated headers on page breaks.
func RenderPDF(table *report.Table) ([]byte, error) {
	pdf := gofpdf.New("L", "pt", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	printable := pageW - 2*pdfMargin

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(printable, 22, table.Title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(128, 128, 128)
	generated := fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05"))
	pdf.CellFormat(printable, 14, generated, "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", pdfFontSize)
	widths := measureColumns(pdf, table, printable)

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", pdfFontSize)
		pdf.SetFillColor(188, 71, 73)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetDrawColor(217, 217, 217)
		for i, col := range table.Columns {
			pdf.CellFormat(widths[i], pdfLineHeight+4, col.Name, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", pdfFontSize)
		pdf.SetTextColor(0, 0, 0)
	}
	drawHeader()

	for r, row := range table.Rows {
		lines := make([][]string, len(table.Columns))
		rowLines := 1
		for c := range table.Columns {
			var text string
			if c < len(row) {
				text = displayForWidth(row[c])
			}
			lines[c] = wrapText(pdf, text, widths[c]-pdfCellPad)
			if len(lines[c]) > rowLines {
				rowLines = len(lines[c])
			}
		}
		rowH := float64(rowLines) * pdfLineHeight

		if pdf.GetY()+rowH > pageH-pdfMargin {
			pdf.AddPage()
			drawHeader()
		}

		shaded := r%2 == 1
		if shaded {
			pdf.SetFillColor(245, 245, 245)
		}
		x := pdfMargin
		y := pdf.GetY()
		pdf.SetDrawColor(217, 217, 217)
		for c := range table.Columns {
			pdf.Rect(x, y, widths[c], rowH, "D")
			if shaded {
				pdf.Rect(x, y, widths[c], rowH, "F")
				pdf.Rect(x, y, widths[c], rowH, "D")
			}
			for li, line := range lines[c] {
				pdf.SetXY(x+pdfCellPad/2, y+float64(li)*pdfLineHeight)
				pdf.CellFormat(widths[c]-pdfCellPad, pdfLineHeight, line, "", 0, "L", false, 0, "")
			}
			x += widths[c]
		}
		pdf.SetXY(pdfMargin, y+rowH)
	}

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", pdfFontSize)
	pdf.CellFormat(printable, pdfLineHeight, fmt.Sprintf("Total Records: %d", len(table.Rows)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// measureColumns sizes columns from header and cell text, then fits
// them into the printable width.
func measureColumns(pdf *gofpdf.Fpdf, table *report.Table, printable float64) []float64 {
	maxWidth := printable * 0.6
	widths := make([]float64, len(table.Columns))
	for i, col := range table.Columns {
		widths[i] = pdf.GetStringWidth(col.Name) + pdfCellPad
	}
	for _, row := range table.Rows {
		for i := range table.Columns {
			if i >= len(row) {
				continue
			}
			w := pdf.GetStringWidth(displayForWidth(row[i])) + pdfCellPad
			if w > widths[i] {
				widths[i] = w
			}
		}
	}

	total := 0.0
	for i := range widths {
		if widths[i] < pdfMinColWidth {
			widths[i] = pdfMinColWidth
		}
		if widths[i] > maxWidth {
			widths[i] = maxWidth
		}
		total += widths[i]
	}

	if total < printable && len(widths) > 0 {
		// Spread the slack evenly.
		extra := (printable - total) / float64(len(widths))
		for i := range widths {
			widths[i] += extra
		}
		return widths
	}

	if total > printable && total > 0 {
		scale := printable / total
		used := 0.0
		for i := range widths {
			widths[i] *= scale
			if widths[i] < pdfMinColWidth {
				widths[i] = pdfMinColWidth
			}
			if i < len(widths)-1 {
				used += widths[i]
			}
		}
		// Last column absorbs rounding drift.
		if last := printable - used; last >= pdfMinColWidth {
			widths[len(widths)-1] = last
		}
	}
	return widths
}

// wrapText breaks text into lines fitting the width, chunking words
// that are wider than the whole cell.
func wrapText(pdf *gofpdf.Fpdf, text string, width float64) []string {
	if text == "" {
		return []string{""}
	}
	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		for pdf.GetStringWidth(word) > width {
			runes := []rune(word)
			if len(runes) <= 1 {
				break
			}
			cut := len(runes)
			for cut > 1 && pdf.GetStringWidth(string(runes[:cut])) > width {
				cut--
			}
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			lines = append(lines, string(runes[:cut]))
			word = string(runes[cut:])
		}
		switch {
		case current == "":
			current = word
		case pdf.GetStringWidth(current+" "+word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/phpdave11/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotify/internal/core/types"
	"quotify/internal/domain/report"
)

func sampleTable() *report.Table {
	return &report.Table{
		Title: "Clients Report",
		Columns: []report.Column{
			{Name: "Client Name", Kind: report.KindString},
			{Name: "Amount", Kind: report.KindDecimal},
			{Name: "Active", Kind: report.KindBool},
			{Name: "Created Date", Kind: report.KindTime},
		},
		Rows: [][]report.Value{
			{
				report.String("Acme Trading"),
				report.Decimal(types.MustMoney("1250.50")),
				report.Bool(true),
				report.Time(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)),
			},
			{
				report.String("Nordwind"),
				report.Decimal(types.MustMoney("90")),
				report.Bool(false),
				report.Null(),
			},
		},
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 6, 15, 9, 30, 45, 0, time.UTC)
	assert.Equal(t, "report_clients_20240615093045.csv", Filename("clients", "csv", now))
}

func TestRenderCSV(t *testing.T) {
	content, err := RenderCSV(sampleTable())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Client Name", "Amount", "Active", "Created Date"}, records[0])
	assert.Equal(t, []string{"Acme Trading", "1250.5", "true", "2024-06-01 12:00:00"}, records[1])
	assert.Equal(t, []string{"Nordwind", "90", "false", ""}, records[2])
}

func TestRender_FormatDispatch(t *testing.T) {
	table := sampleTable()

	file, err := Render(table, "clients", report.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, MIMECSV, file.MIME)
	assert.True(t, strings.HasSuffix(file.Name, ".csv"))

	file, err = Render(table, "clients", report.FormatExcel)
	require.NoError(t, err)
	assert.Equal(t, MIMEExcel, file.MIME)
	assert.True(t, strings.HasSuffix(file.Name, ".xlsx"))
	assert.NotEmpty(t, file.Content)

	file, err = Render(table, "clients", report.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, MIMEPDF, file.MIME)
	assert.True(t, strings.HasSuffix(file.Name, ".pdf"))
	assert.NotEmpty(t, file.Content)

	// Unknown format falls back to CSV.
	file, err = Render(table, "clients", "docx")
	require.NoError(t, err)
	assert.Equal(t, MIMECSV, file.MIME)
}

func testPDF() *gofpdf.Fpdf {
	pdf := gofpdf.New("L", "pt", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", pdfFontSize)
	return pdf
}

func TestWrapText(t *testing.T) {
	pdf := testPDF()

	assert.Equal(t, []string{""}, wrapText(pdf, "", 100))

	// Short text stays on one line.
	lines := wrapText(pdf, "hello world", 200)
	assert.Equal(t, []string{"hello world"}, lines)

	// Narrow width forces a break between words.
	lines = wrapText(pdf, "hello world", pdf.GetStringWidth("hello")+1)
	assert.Equal(t, []string{"hello", "world"}, lines)

	// A single oversized word is chunked mid-word.
	long := strings.Repeat("x", 200)
	lines = wrapText(pdf, long, 50)
	assert.Greater(t, len(lines), 1)
	joined := strings.Join(lines, "")
	assert.Equal(t, long, joined, "chunking must not lose characters")
	for _, line := range lines {
		assert.LessOrEqual(t, pdf.GetStringWidth(line), 50.0)
	}
}

func TestWrapText_ChunksOnRuneBoundaries(t *testing.T) {
	pdf := testPDF()

	long := strings.Repeat("é", 120)
	lines := wrapText(pdf, long, 50)
	assert.Greater(t, len(lines), 1)
	assert.Equal(t, long, strings.Join(lines, ""), "chunking must not lose characters")
	for _, line := range lines {
		assert.True(t, utf8.ValidString(line), "chunk split a rune: %q", line)
	}
}

func TestMeasureColumns_FitsPrintableWidth(t *testing.T) {
	pdf := testPDF()

	wide := &report.Table{
		Columns: []report.Column{
			{Name: "A", Kind: report.KindString},
			{Name: "B", Kind: report.KindString},
			{Name: "C", Kind: report.KindString},
		},
		Rows: [][]report.Value{{
			report.String("short"),
			report.String(strings.Repeat("long text ", 40)),
			report.String(strings.Repeat("more text ", 40)),
		}},
	}

	printable := 800.0
	widths := measureColumns(pdf, wide, printable)
	require.Len(t, widths, 3)

	total := 0.0
	for _, w := range widths {
		assert.GreaterOrEqual(t, w, pdfMinColWidth)
		assert.LessOrEqual(t, w, printable*0.6+1)
		total += w
	}
	assert.InDelta(t, printable, total, 1.0)
}

func TestMeasureColumns_SpreadsSlack(t *testing.T) {
	pdf := testPDF()

	narrow := &report.Table{
		Columns: []report.Column{
			{Name: "A", Kind: report.KindString},
			{Name: "B", Kind: report.KindString},
		},
	}

	printable := 800.0
	widths := measureColumns(pdf, narrow, printable)
	require.Len(t, widths, 2)

	// Slack is spread evenly across all columns.
	assert.InDelta(t, widths[0], widths[1], 0.01)
	assert.InDelta(t, printable, widths[0]+widths[1], 0.01)
}

func TestRenderExcel_Smoke(t *testing.T) {
	content, err := RenderExcel(sampleTable())
	require.NoError(t, err)
	// xlsx files are zip archives.
	require.Greater(t, len(content), 4)
	assert.Equal(t, []byte{'P', 'K'}, content[:2])
}

package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Defaults(t *testing.T) {
	q := Request{}.Normalize()

	assert.Equal(t, TypeActivity, q.ReportType)
	assert.Equal(t, "all", q.ActionType)
	assert.Equal(t, FormatCSV, q.Format)
	assert.Nil(t, q.StartDate)
	assert.Nil(t, q.EndDate)
	assert.Equal(t, "", q.SortColumn)
}

func TestNormalize_ActionTypeChain(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want string
	}{
		{
			name: "filters.actionType wins",
			req: Request{
				ActionType: "delete",
				Filters:    Filters{ActionType: "created", Activity: "updated"},
			},
			want: "create",
		},
		{
			name: "filters.activity is second",
			req: Request{
				ActionType: "delete",
				Filters:    Filters{Activity: "Updated"},
			},
			want: "update",
		},
		{
			name: "root actionType is last",
			req:  Request{ActionType: "Deleted"},
			want: "delete",
		},
		{
			name: "unknown passes through lowered",
			req:  Request{ActionType: "Login"},
			want: "login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.Normalize().ActionType)
		})
	}
}

func TestNormalize_StatusAllCleared(t *testing.T) {
	q := Request{Filters: Filters{Status: "All"}}.Normalize()
	assert.Equal(t, "", q.Status)

	q = Request{Filters: Filters{Status: "Sent"}}.Normalize()
	assert.Equal(t, "sent", q.Status)
}

func TestNormalize_Dates(t *testing.T) {
	q := Request{Filters: Filters{
		StartDate: "2024-03-01",
		EndDate:   "2024-03-31",
	}}.Normalize()

	require.NotNil(t, q.StartDate)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *q.StartDate)

	// End dates cover the whole day.
	require.NotNil(t, q.EndDate)
	assert.Equal(t, time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC), *q.EndDate)
}

func TestNormalize_LenientDateLayouts(t *testing.T) {
	layouts := []string{
		"2024-03-01T10:30:00Z",
		"2024-03-01T10:30:00",
		"2024-03-01 10:30:00",
		"2024-03-01",
		"03/01/2024",
		"2024/03/01",
	}

	for _, input := range layouts {
		q := Request{Filters: Filters{StartDate: input}}.Normalize()
		assert.NotNil(t, q.StartDate, "layout %q should parse", input)
	}

	q := Request{Filters: Filters{StartDate: "March 1st"}}.Normalize()
	assert.Nil(t, q.StartDate, "garbage dates are ignored")
}

func TestNormalize_Format(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"excel", FormatExcel},
		{"xlsx", FormatExcel},
		{"XLSX", FormatExcel},
		{"pdf", FormatPDF},
		{"csv", FormatCSV},
		{"", FormatCSV},
		{"docx", FormatCSV},
	}

	for _, tt := range tests {
		q := Request{Options: Options{Format: tt.input}}.Normalize()
		assert.Equal(t, tt.want, q.Format, "format %q", tt.input)
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		input    string
		wantCol  string
		wantDesc bool
	}{
		{"", "", false},
		{"Name", "Name", false},
		{"Name:asc", "Name", false},
		{"Name:desc", "Name", true},
		{"Name|d", "Name", true},
		{"Total desc", "Total", true},
		{"Total\tDESC", "Total", true},
		{"Name:up", "Name", false},
		{"Created Date:desc", "Created Date", true},
		{"Client Name|asc", "Client Name", false},
		{"Performed By: d", "Performed By", true},
	}

	for _, tt := range tests {
		col, desc := parseSort(tt.input)
		assert.Equal(t, tt.wantCol, col, "input %q", tt.input)
		assert.Equal(t, tt.wantDesc, desc, "input %q", tt.input)
	}
}

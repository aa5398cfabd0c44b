package report

import (
	"strings"
	"time"
)

// Report types.
const (
	TypeProducts = "products"
	TypeUsers    = "users"
	TypeInvoices = "invoices"
	TypeQuotes   = "quotes"
	TypeClients  = "clients"
	TypeActivity = "activity"
)

// Export formats.
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// Request is the raw report request body.
type Request struct {
	ReportType string  `json:"reportType"`
	ActionType string  `json:"actionType"`
	Filters    Filters `json:"filters"`
	Options    Options `json:"options"`
}

// Filters narrow the report rows. All fields are optional.
type Filters struct {
	Activity       string `json:"activity"`
	ActionType     string `json:"actionType"`
	Status         string `json:"status"`
	Client         string `json:"client"`
	User           string `json:"user"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	MinAmount      string `json:"minAmount"`
	MaxAmount      string `json:"maxAmount"`
	Search         string `json:"search"`
	IncludeDeleted bool   `json:"includeDeleted"`
}

// Options control output shaping. GroupBy and SendEmail are accepted
// but unused.
type Options struct {
	GroupBy   string `json:"groupBy"`
	SortBy    string `json:"sortBy"`
	Format    string `json:"format"`
	SendEmail bool   `json:"sendEmail"`
}

// Query is the normalized form the generator works from.
type Query struct {
	ReportType     string
	ActionType     string
	Status         string
	Client         string
	User           string
	StartDate      *time.Time
	EndDate        *time.Time
	MinAmount      string
	MaxAmount      string
	Search         string
	IncludeDeleted bool
	SortColumn     string
	SortDesc       bool
	Format         string
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
}

// parseDate tries the known layouts; unparseable input is ignored.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// canonicalAction folds action synonyms onto the stored values.
func canonicalAction(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "create", "created":
		return "create"
	case "update", "updated":
		return "update"
	case "delete", "deleted":
		return "delete"
	case "", "all":
		return "all"
	default:
		return strings.ToLower(strings.TrimSpace(s))
	}
}

// firstNonEmpty returns the first non-blank value.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// Normalize resolves defaults, the action type chain, lenient dates and
// the sort directive into a Query.
func (r Request) Normalize() Query {
	q := Query{
		ReportType:     strings.ToLower(strings.TrimSpace(r.ReportType)),
		ActionType:     canonicalAction(firstNonEmpty(r.Filters.ActionType, r.Filters.Activity, r.ActionType)),
		Status:         strings.ToLower(strings.TrimSpace(r.Filters.Status)),
		Client:         strings.TrimSpace(r.Filters.Client),
		User:           strings.TrimSpace(r.Filters.User),
		MinAmount:      strings.TrimSpace(r.Filters.MinAmount),
		MaxAmount:      strings.TrimSpace(r.Filters.MaxAmount),
		Search:         strings.TrimSpace(r.Filters.Search),
		IncludeDeleted: r.Filters.IncludeDeleted,
		Format:         strings.ToLower(strings.TrimSpace(r.Options.Format)),
	}
	if q.ReportType == "" {
		q.ReportType = TypeActivity
	}
	if q.Status == "all" {
		q.Status = ""
	}

	q.StartDate = parseDate(r.Filters.StartDate)
	if end := parseDate(r.Filters.EndDate); end != nil {
		// End dates cover the whole day.
		eod := end.AddDate(0, 0, 1).Add(-time.Second)
		q.EndDate = &eod
	}

	q.SortColumn, q.SortDesc = parseSort(r.Options.SortBy)

	switch q.Format {
	case "excel", "xlsx":
		q.Format = FormatExcel
	case "pdf":
		q.Format = FormatPDF
	default:
		q.Format = FormatCSV
	}

	return q
}

// parseSort splits a sort directive into column and direction. ":" and
// "|" take precedence over whitespace so multi-word column names like
// "Created Date:desc" keep their spaces; each form splits at most once.
// A direction starting with "d" means descending.
func parseSort(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	var column, dir string
	switch {
	case strings.Contains(s, ":"):
		column, dir, _ = strings.Cut(s, ":")
	case strings.Contains(s, "|"):
		column, dir, _ = strings.Cut(s, "|")
	default:
		column = s
		if i := strings.IndexAny(s, " \t"); i >= 0 {
			column, dir = s[:i], s[i+1:]
		}
	}

	column = strings.TrimSpace(column)
	dir = strings.ToLower(strings.TrimSpace(dir))
	return column, strings.HasPrefix(dir, "d")
}

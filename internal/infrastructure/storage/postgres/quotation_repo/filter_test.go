package quotation_repo

import (
	"strings"
	"testing"
	"time"

	"quotify/internal/core/id"
	"quotify/internal/domain/quotation"
)

func TestBuildListQuery_Quotations(t *testing.T) {
	prefix := "SELECT " + strings.Join(selectCols, ", ") + " FROM quotations"

	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)
	owner := id.New()

	tests := []struct {
		name     string
		filter   quotation.Filter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "NoFilters",
			filter:   quotation.Filter{},
			wantSQL:  prefix,
			wantArgs: nil,
		},
		{
			name:     "Status",
			filter:   quotation.Filter{Status: quotation.StatusSent},
			wantSQL:  prefix + " WHERE status = $1",
			wantArgs: []any{quotation.StatusSent},
		},
		{
			name:     "Search",
			filter:   quotation.Filter{Search: "QTN-000"},
			wantSQL:  prefix + " WHERE (number ILIKE $1 OR client_name ILIKE $2)",
			wantArgs: []any{"%QTN-000%", "%QTN-000%"},
		},
		{
			name:     "DateRange",
			filter:   quotation.Filter{DateFrom: &from, DateTo: &to},
			wantSQL:  prefix + " WHERE quote_date >= $1 AND quote_date <= $2",
			wantArgs: []any{from, to},
		},
		{
			name:   "OwnerScope",
			filter: quotation.Filter{ScopeUserID: &owner, ScopeEmail: "me@x.io"},
			wantSQL: prefix +
				" WHERE (created_by_id = $1 OR lower(created_by_email) = $2 OR lower(assigned_user) = $3)",
			wantArgs: []any{owner, "me@x.io", "me@x.io"},
		},
		{
			name:     "EmailOnlyScope",
			filter:   quotation.Filter{ScopeEmail: "me@x.io"},
			wantSQL:  prefix + " WHERE (lower(created_by_email) = $1 OR lower(assigned_user) = $2)",
			wantArgs: []any{"me@x.io", "me@x.io"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := BuildListQuery(tt.filter).ToSql()
			if err != nil {
				t.Fatalf("ToSql failed: %v", err)
			}

			if sql != tt.wantSQL {
				t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", tt.wantSQL, sql)
			}
			if len(args) != len(tt.wantArgs) {
				t.Fatalf("Args count mismatch\nwant: %d\ngot:  %d", len(tt.wantArgs), len(args))
			}
			for i := range args {
				if args[i] != tt.wantArgs[i] {
					t.Errorf("Arg %d mismatch\nwant: %v\ngot:  %v", i, tt.wantArgs[i], args[i])
				}
			}
		})
	}
}

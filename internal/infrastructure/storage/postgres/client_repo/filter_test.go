package client_repo

import (
	"strings"
	"testing"

	"quotify/internal/domain/client"
)

func boolPtr(b bool) *bool { return &b }

func TestBuildListQuery_Clients(t *testing.T) {
	prefix := "SELECT " + strings.Join(selectCols, ", ") + " FROM clients"

	tests := []struct {
		name     string
		filter   client.Filter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "NoFilters",
			filter:   client.Filter{},
			wantSQL:  prefix,
			wantArgs: nil,
		},
		{
			name:     "Search",
			filter:   client.Filter{Search: "acme"},
			wantSQL:  prefix + " WHERE (name ILIKE $1 OR code ILIKE $2 OR email ILIKE $3)",
			wantArgs: []any{"%acme%", "%acme%", "%acme%"},
		},
		{
			name:     "Active",
			filter:   client.Filter{Active: boolPtr(true)},
			wantSQL:  prefix + " WHERE active = $1",
			wantArgs: []any{true},
		},
		{
			name:     "Scope",
			filter:   client.Filter{ScopeAssignedUser: "sales@quotify.local"},
			wantSQL:  prefix + " WHERE (lower(assigned_user) = $1 OR lower(created_by_email) = $2)",
			wantArgs: []any{"sales@quotify.local", "sales@quotify.local"},
		},
		{
			name:   "Combined",
			filter: client.Filter{Search: "co", Active: boolPtr(false), ScopeAssignedUser: "me@x.io"},
			wantSQL: prefix +
				" WHERE (name ILIKE $1 OR code ILIKE $2 OR email ILIKE $3)" +
				" AND active = $4" +
				" AND (lower(assigned_user) = $5 OR lower(created_by_email) = $6)",
			wantArgs: []any{"%co%", "%co%", "%co%", false, "me@x.io", "me@x.io"},
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

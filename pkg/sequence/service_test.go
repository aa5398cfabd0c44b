package sequence

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	value int64
}

func (r fakeRow) Scan(dest ...any) error {
	*dest[0].(*int64) = r.value
	return nil
}

type fakeQuerier struct {
	value   int64
	lastSQL string
	args    []any
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.lastSQL = sql
	q.args = args
	return fakeRow{value: q.value}
}

func TestNext_ClaimsFromContextQuerier(t *testing.T) {
	querier := &fakeQuerier{value: 7}
	svc := NewService(func(context.Context) Querier { return querier })

	got, err := svc.Next(context.Background(), Clients)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got)
	assert.Contains(t, querier.lastSQL, "RETURNING last_value")
	assert.Equal(t, []any{Clients}, querier.args)
}

func TestPeek_DoesNotClaim(t *testing.T) {
	querier := &fakeQuerier{value: 43}
	svc := NewService(func(context.Context) Querier { return querier })

	got, err := svc.Peek(context.Background(), Quotations)
	require.NoError(t, err)
	assert.Equal(t, int64(43), got)
	assert.False(t, strings.Contains(querier.lastSQL, "UPDATE"), "peek must not advance the counter")
}

func TestFormat(t *testing.T) {
	tests := []struct {
		prefix string
		value  int64
		want   string
	}{
		{"CLT", 1, "CLT-000001"},
		{"QTN", 42, "QTN-000042"},
		{"QTN", 999999, "QTN-999999"},
		{"QTN", 1000000, "QTN-1000000"},
	}

	for _, tt := range tests {
		if got := Format(tt.prefix, tt.value); got != tt.want {
			t.Errorf("Format(%q, %d) = %q, want %q", tt.prefix, tt.value, got, tt.want)
		}
	}
}

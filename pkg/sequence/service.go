// Package sequence provides monotonically increasing counters backing
// human-readable record codes (CLT-000042, QT-000107).
//
// Counters live in the sys_sequences table. Next claims a number with
// UPDATE ... RETURNING, so numbers are gap-free as long as the claiming
// transaction commits; claim inside the same transaction that inserts
// the record.
package sequence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Well-known sequence names.
const (
	Clients    = "clients"
	Quotations = "quotations"
)

// Querier is the slice of pgx this package needs. Both pgx.Tx and
// pgxpool.Pool satisfy it.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Source yields the querier bound to a context, so claims made inside
// a transaction run on that transaction.
type Source func(ctx context.Context) Querier

// Service claims and inspects sequence values.
type Service struct {
	querier Source
}

// NewService creates a sequence service.
func NewService(source Source) *Service {
	return &Service{querier: source}
}

// Next claims and returns the next value of the named sequence,
// creating the sequence on first use.
func (s *Service) Next(ctx context.Context, name string) (int64, error) {
	const sql = `
		INSERT INTO sys_sequences (name, last_value)
		VALUES ($1, 1)
		ON CONFLICT (name)
		DO UPDATE SET last_value = sys_sequences.last_value + 1
		RETURNING last_value
	`

	var value int64
	if err := s.querier(ctx).QueryRow(ctx, sql, name).Scan(&value); err != nil {
		return 0, fmt.Errorf("claim sequence %s: %w", name, err)
	}
	return value, nil
}

// Peek returns the value Next would claim, without claiming it.
// Purely informational: a concurrent writer may take the value first.
func (s *Service) Peek(ctx context.Context, name string) (int64, error) {
	const sql = `SELECT COALESCE(MAX(last_value), 0) + 1 FROM sys_sequences WHERE name = $1`

	var value int64
	if err := s.querier(ctx).QueryRow(ctx, sql, name).Scan(&value); err != nil {
		return 0, fmt.Errorf("peek sequence %s: %w", name, err)
	}
	return value, nil
}

// Format renders a sequence value as a display code: PREFIX-000042.
func Format(prefix string, value int64) string {
	return fmt.Sprintf("%s-%06d", prefix, value)
}

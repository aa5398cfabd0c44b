// Package dashboard_repo provides the PostgreSQL dashboard aggregate
// queries.
package dashboard_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"quotify/internal/domain/client"
	"quotify/internal/domain/dashboard"
	"quotify/internal/domain/quotation"
	"quotify/internal/infrastructure/storage/postgres"
)

var clientCols = postgres.ExtractDBColumns[client.Client]()

var quotationCols = postgres.ExtractDBColumns[quotation.Quotation]()

// Repository implements dashboard.Repository on PostgreSQL.
type Repository struct {
	txManager *postgres.TxManager
}

func NewRepository(txManager *postgres.TxManager) *Repository {
	return &Repository{txManager: txManager}
}

func (r *Repository) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *Repository) CountClients(ctx context.Context) (int, error) {
	return r.count(ctx, "clients")
}

func (r *Repository) CountItems(ctx context.Context) (int, error) {
	return r.count(ctx, "items")
}

func (r *Repository) count(ctx context.Context, table string) (int, error) {
	sql, args, err := r.builder().
		Select("COUNT(*)").
		From(table).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var n int
	if err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

func quotationScope(scope dashboard.Scope) squirrel.Sqlizer {
	or := squirrel.Or{}
	if scope.UserID != nil {
		or = append(or, squirrel.Eq{"created_by_id": *scope.UserID})
	}
	if scope.Email != "" {
		or = append(or,
			squirrel.Eq{"lower(created_by_email)": scope.Email},
			squirrel.Eq{"lower(assigned_user)": scope.Email},
		)
	}
	return or
}

func (r *Repository) QuotationStats(ctx context.Context, since time.Time, scope dashboard.Scope) ([]dashboard.QuotationStat, error) {
	q := r.builder().
		Select("quote_date", "status", "total").
		From("quotations").
		Where(squirrel.GtOrEq{"quote_date": since})
	if !scope.Empty() {
		q = q.Where(quotationScope(scope))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	stats := make([]dashboard.QuotationStat, 0)
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &stats, sql, args...); err != nil {
		return nil, fmt.Errorf("quotation stats: %w", err)
	}
	return stats, nil
}

func (r *Repository) RecentClients(ctx context.Context, scope dashboard.Scope, limit int) ([]client.Client, error) {
	q := r.builder().
		Select(clientCols...).
		From("clients")
	if !scope.Empty() && scope.Email != "" {
		q = q.Where(squirrel.Or{
			squirrel.Eq{"lower(assigned_user)": scope.Email},
			squirrel.Eq{"lower(created_by_email)": scope.Email},
		})
	}

	sql, args, err := q.
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	clients := make([]client.Client, 0, limit)
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &clients, sql, args...); err != nil {
		return nil, fmt.Errorf("recent clients: %w", err)
	}
	return clients, nil
}

func (r *Repository) RecentQuotations(ctx context.Context, scope dashboard.Scope, limit int) ([]quotation.Quotation, error) {
	q := r.builder().
		Select(quotationCols...).
		From("quotations")
	if !scope.Empty() {
		q = q.Where(quotationScope(scope))
	}

	sql, args, err := q.
		OrderBy("quote_date DESC, created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	quotations := make([]quotation.Quotation, 0, limit)
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &quotations, sql, args...); err != nil {
		return nil, fmt.Errorf("recent quotations: %w", err)
	}
	return quotations, nil
}

// Package report_repo loads the full record sets reports are built
// from.
package report_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"quotify/internal/domain/auth"
	"quotify/internal/domain/client"
	"quotify/internal/domain/item"
	"quotify/internal/domain/quotation"
	"quotify/internal/infrastructure/storage/postgres"
)

var (
	clientCols    = postgres.ExtractDBColumns[client.Client]()
	itemCols      = postgres.ExtractDBColumns[item.Item]()
	userCols      = postgres.ExtractDBColumns[auth.User]()
	quotationCols = postgres.ExtractDBColumns[quotation.Quotation]()
)

// Repository implements report.Repository on PostgreSQL.
type Repository struct {
	txManager *postgres.TxManager
}

func NewRepository(txManager *postgres.TxManager) *Repository {
	return &Repository{txManager: txManager}
}

func (r *Repository) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func selectAll[T any](ctx context.Context, r *Repository, cols []string, table, orderBy string) ([]T, error) {
	sql, args, err := r.builder().
		Select(cols...).
		From(table).
		OrderBy(orderBy).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	items := make([]T, 0)
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	return items, nil
}

func (r *Repository) Clients(ctx context.Context) ([]client.Client, error) {
	return selectAll[client.Client](ctx, r, clientCols, "clients", "created_at DESC")
}

func (r *Repository) Items(ctx context.Context) ([]item.Item, error) {
	return selectAll[item.Item](ctx, r, itemCols, "items", "created_at DESC")
}

func (r *Repository) Users(ctx context.Context) ([]auth.User, error) {
	return selectAll[auth.User](ctx, r, userCols, "users", "created_at DESC")
}

func (r *Repository) Quotations(ctx context.Context) ([]quotation.Quotation, error) {
	return selectAll[quotation.Quotation](ctx, r, quotationCols, "quotations", "quote_date DESC")
}

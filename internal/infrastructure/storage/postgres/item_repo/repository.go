// Package item_repo provides the PostgreSQL item catalog repository.
package item_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"quotify/internal/core/apperror"
	"quotify/internal/core/id"
	"quotify/internal/domain"
	"quotify/internal/domain/item"
	"quotify/internal/infrastructure/storage/postgres"
)

const tableName = "items"

var selectCols = postgres.ExtractDBColumns[item.Item]()

// Repository implements item.Repository on PostgreSQL.
type Repository struct {
	txManager *postgres.TxManager
}

func NewRepository(txManager *postgres.TxManager) *Repository {
	return &Repository{txManager: txManager}
}

func (r *Repository) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *Repository) Create(ctx context.Context, it *item.Item) error {
	sql, args, err := r.builder().
		Insert(tableName).
		SetMap(postgres.StructToMap(it)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, iid id.ID) (*item.Item, error) {
	sql, args, err := r.builder().
		Select(selectCols...).
		From(tableName).
		Where(squirrel.Eq{"id": iid}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var it item.Item
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &it, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("item", iid.String())
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

func (r *Repository) Update(ctx context.Context, it *item.Item) error {
	data := postgres.StructToMap(it)
	delete(data, "id")
	delete(data, "created_at")

	sql, args, err := r.builder().
		Update(tableName).
		SetMap(data).
		Where(squirrel.Eq{"id": it.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("item", it.ID.String())
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, iid id.ID) error {
	sql, args, err := r.builder().
		Delete(tableName).
		Where(squirrel.Eq{"id": iid}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("item", iid.String())
	}
	return nil
}

func (r *Repository) List(ctx context.Context, filter item.Filter) (domain.ListResult[item.Item], error) {
	result := domain.ListResult[item.Item]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.builder().
		Select(selectCols...).
		From(tableName)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"description": pattern},
		})
	}
	if filter.Active != nil {
		q = q.Where(squirrel.Eq{"active": *filter.Active})
	}

	countSQL, countArgs, err := r.builder().
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count items: %w", err)
	}

	q = q.OrderBy("title ASC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}
	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list items: %w", err)
	}
	return result, nil
}

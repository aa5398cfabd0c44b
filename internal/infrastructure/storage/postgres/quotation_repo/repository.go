// Package quotation_repo provides the PostgreSQL quotation repository.
package quotation_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"quotify/internal/core/apperror"
	"quotify/internal/core/id"
	"quotify/internal/domain"
	"quotify/internal/domain/quotation"
	"quotify/internal/infrastructure/storage/postgres"
)

const (
	tableName     = "quotations"
	lineTableName = "quotation_items"
)

var selectCols = postgres.ExtractDBColumns[quotation.Quotation]()

var lineCols = postgres.ExtractDBColumns[quotation.Line]()

// Repository implements quotation.Repository on PostgreSQL.
type Repository struct {
	txManager *postgres.TxManager
}

func NewRepository(txManager *postgres.TxManager) *Repository {
	return &Repository{txManager: txManager}
}

func (r *Repository) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *Repository) Create(ctx context.Context, q *quotation.Quotation) error {
	sql, args, err := r.builder().
		Insert(tableName).
		SetMap(postgres.StructToMap(q)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert quotation: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, qid id.ID) (*quotation.Quotation, error) {
	sql, args, err := r.builder().
		Select(selectCols...).
		From(tableName).
		Where(squirrel.Eq{"id": qid}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var q quotation.Quotation
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &q, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("quotation", qid.String())
		}
		return nil, fmt.Errorf("get quotation: %w", err)
	}

	lines, err := r.loadLines(ctx, qid)
	if err != nil {
		return nil, err
	}
	q.Lines = lines
	return &q, nil
}

func (r *Repository) Update(ctx context.Context, q *quotation.Quotation) error {
	data := postgres.StructToMap(q)
	delete(data, "id")
	delete(data, "created_at")

	sql, args, err := r.builder().
		Update(tableName).
		SetMap(data).
		Where(squirrel.Eq{"id": q.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update quotation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("quotation", q.ID.String())
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, qid id.ID) error {
	querier := r.txManager.GetQuerier(ctx)

	lineSQL, lineArgs, err := r.builder().
		Delete(lineTableName).
		Where(squirrel.Eq{"quotation_id": qid}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build line delete: %w", err)
	}
	if _, err := querier.Exec(ctx, lineSQL, lineArgs...); err != nil {
		return fmt.Errorf("delete quotation lines: %w", err)
	}

	sql, args, err := r.builder().
		Delete(tableName).
		Where(squirrel.Eq{"id": qid}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete quotation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("quotation", qid.String())
	}
	return nil
}

// BuildListQuery translates a filter into a SELECT builder.
func BuildListQuery(filter quotation.Filter) squirrel.SelectBuilder {
	q := squirrel.StatementBuilder.
		PlaceholderFormat(squirrel.Dollar).
		Select(selectCols...).
		From(tableName)

	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": pattern},
			squirrel.ILike{"client_name": pattern},
		})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"quote_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"quote_date": *filter.DateTo})
	}
	if filter.ScopeUserID != nil || filter.ScopeEmail != "" {
		scope := squirrel.Or{}
		if filter.ScopeUserID != nil {
			scope = append(scope, squirrel.Eq{"created_by_id": *filter.ScopeUserID})
		}
		if filter.ScopeEmail != "" {
			scope = append(scope,
				squirrel.Eq{"lower(created_by_email)": filter.ScopeEmail},
				squirrel.Eq{"lower(assigned_user)": filter.ScopeEmail},
			)
		}
		q = q.Where(scope)
	}
	return q
}

func (r *Repository) List(ctx context.Context, filter quotation.Filter) (domain.ListResult[quotation.Quotation], error) {
	result := domain.ListResult[quotation.Quotation]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := BuildListQuery(filter)

	countSQL, countArgs, err := r.builder().
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count quotations: %w", err)
	}

	q = q.OrderBy("quote_date DESC, created_at DESC")
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
		return result, fmt.Errorf("list quotations: %w", err)
	}
	return result, nil
}

// ReplaceLines deletes and re-inserts all lines of a quotation.
func (r *Repository) ReplaceLines(ctx context.Context, qid id.ID, lines []quotation.Line) error {
	querier := r.txManager.GetQuerier(ctx)

	delSQL, delArgs, err := r.builder().
		Delete(lineTableName).
		Where(squirrel.Eq{"quotation_id": qid}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build line delete: %w", err)
	}
	if _, err := querier.Exec(ctx, delSQL, delArgs...); err != nil {
		return fmt.Errorf("delete lines: %w", err)
	}

	for i := range lines {
		insSQL, insArgs, err := r.builder().
			Insert(lineTableName).
			SetMap(postgres.StructToMap(&lines[i])).
			ToSql()
		if err != nil {
			return fmt.Errorf("build line insert: %w", err)
		}
		if _, err := querier.Exec(ctx, insSQL, insArgs...); err != nil {
			return fmt.Errorf("insert line: %w", err)
		}
	}
	return nil
}

func (r *Repository) loadLines(ctx context.Context, qid id.ID) ([]quotation.Line, error) {
	sql, args, err := r.builder().
		Select(lineCols...).
		From(lineTableName).
		Where(squirrel.Eq{"quotation_id": qid}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build line query: %w", err)
	}

	lines := make([]quotation.Line, 0)
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("load lines: %w", err)
	}
	return lines, nil
}

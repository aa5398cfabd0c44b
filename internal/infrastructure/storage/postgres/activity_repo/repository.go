// Package activity_repo provides the PostgreSQL activity log repository.
package activity_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"quotify/internal/core/id"
	"quotify/internal/domain"
	"quotify/internal/domain/activity"
	"quotify/internal/infrastructure/storage/postgres"
)

const tableName = "activity_logs"

var selectCols = postgres.ExtractDBColumns[activity.Entry]()

// Repository implements activity.Repository on PostgreSQL. Change
// payloads are compressed with the shared change codec before storage.
type Repository struct {
	txManager *postgres.TxManager
	codec     *postgres.ChangeCodec
}

func NewRepository(txManager *postgres.TxManager, codec *postgres.ChangeCodec) *Repository {
	return &Repository{txManager: txManager, codec: codec}
}

func (r *Repository) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *Repository) Insert(ctx context.Context, entry *activity.Entry) error {
	data := postgres.StructToMap(entry)
	if len(entry.Changes) > 0 {
		stored, algo := r.codec.Encode(entry.Changes)
		data["changes"] = stored
		data["changes_algo"] = string(algo)
	}

	sql, args, err := r.builder().
		Insert(tableName).
		SetMap(data).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert activity entry: %w", err)
	}
	return nil
}

func applyFilter(q squirrel.SelectBuilder, filter activity.Filter) squirrel.SelectBuilder {
	if filter.EntityName != "" {
		q = q.Where(squirrel.Eq{"entity_name": filter.EntityName})
	}
	if filter.ActionType != "" {
		q = q.Where(squirrel.Eq{"lower(action_type)": filter.ActionType})
	}
	if filter.PerformedBy != "" {
		pattern := "%" + filter.PerformedBy + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"performed_by": pattern},
			squirrel.ILike{"performed_by_email": pattern},
		})
	}
	if filter.StartDate != nil {
		q = q.Where(squirrel.GtOrEq{"timestamp": *filter.StartDate})
	}
	if filter.EndDate != nil {
		q = q.Where(squirrel.LtOrEq{"timestamp": *filter.EndDate})
	}
	if filter.ScopeUserID != nil || filter.ScopeEmail != "" {
		scope := squirrel.Or{}
		if filter.ScopeUserID != nil {
			scope = append(scope, squirrel.Eq{"user_id": *filter.ScopeUserID})
		}
		if filter.ScopeEmail != "" {
			scope = append(scope, squirrel.Eq{"lower(performed_by_email)": filter.ScopeEmail})
		}
		q = q.Where(scope)
	}
	return q
}

func (r *Repository) List(ctx context.Context, filter activity.Filter) (domain.ListResult[activity.Entry], error) {
	result := domain.ListResult[activity.Entry]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := applyFilter(r.builder().
		Select(selectCols...).
		From(tableName), filter)

	countSQL, countArgs, err := r.builder().
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count activity entries: %w", err)
	}

	q = q.OrderBy("timestamp DESC")
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
		return result, fmt.Errorf("list activity entries: %w", err)
	}
	return result, nil
}

// RecentFor returns the latest entries performed by a user, matched by
// ID or email.
func (r *Repository) RecentFor(ctx context.Context, userID *id.ID, email string, limit int) ([]activity.Entry, error) {
	scope := squirrel.Or{}
	if userID != nil {
		scope = append(scope, squirrel.Eq{"user_id": *userID})
	}
	if email != "" {
		scope = append(scope, squirrel.Eq{"lower(performed_by_email)": email})
	}

	sql, args, err := r.builder().
		Select(selectCols...).
		From(tableName).
		Where(scope).
		OrderBy("timestamp DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	entries := make([]activity.Entry, 0, limit)
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	return entries, nil
}

// DeletedRecordIDs returns the record IDs of an entity that have a
// Delete log entry.
func (r *Repository) DeletedRecordIDs(ctx context.Context, entityName string) (map[string]bool, error) {
	sql, args, err := r.builder().
		Select("DISTINCT record_id").
		From(tableName).
		Where(squirrel.Eq{"entity_name": entityName}).
		Where(squirrel.Eq{"lower(action_type)": "delete"}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var recordIDs []string
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &recordIDs, sql, args...); err != nil {
		return nil, fmt.Errorf("deleted record ids: %w", err)
	}

	out := make(map[string]bool, len(recordIDs))
	for _, rid := range recordIDs {
		out[rid] = true
	}
	return out, nil
}

// ForEntity groups all entries of an entity by record ID.
func (r *Repository) ForEntity(ctx context.Context, entityName string) (map[string][]activity.Entry, error) {
	sql, args, err := r.builder().
		Select(selectCols...).
		From(tableName).
		Where(squirrel.Eq{"entity_name": entityName}).
		OrderBy("timestamp DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var entries []activity.Entry
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("entity activity: %w", err)
	}

	out := make(map[string][]activity.Entry)
	for _, e := range entries {
		out[e.RecordID] = append(out[e.RecordID], e)
	}
	return out, nil
}

// Package client_repo provides the PostgreSQL client repository.
package client_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"quotify/internal/core/apperror"
	"quotify/internal/core/id"
	"quotify/internal/domain"
	"quotify/internal/domain/client"
	"quotify/internal/infrastructure/storage/postgres"
)

const (
	tableName        = "clients"
	contactTableName = "client_contacts"
)

var selectCols = postgres.ExtractDBColumns[client.Client]()

var contactCols = postgres.ExtractDBColumns[client.Contact]()

// Repository implements client.Repository on PostgreSQL.
type Repository struct {
	txManager *postgres.TxManager
}

func NewRepository(txManager *postgres.TxManager) *Repository {
	return &Repository{txManager: txManager}
}

func (r *Repository) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *Repository) Create(ctx context.Context, c *client.Client) error {
	data := postgres.StructToMap(c)

	sql, args, err := r.builder().
		Insert(tableName).
		SetMap(data).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate("client", "email", c.Email).
				WithCause(err)
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, cid id.ID) (*client.Client, error) {
	sql, args, err := r.builder().
		Select(selectCols...).
		From(tableName).
		Where(squirrel.Eq{"id": cid}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	var c client.Client
	if err := pgxscan.Get(ctx, querier, &c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("client", cid.String())
		}
		return nil, fmt.Errorf("get client: %w", err)
	}

	contacts, err := r.loadContacts(ctx, cid)
	if err != nil {
		return nil, err
	}
	c.Contacts = contacts
	return &c, nil
}

func (r *Repository) Update(ctx context.Context, c *client.Client) error {
	data := postgres.StructToMap(c)
	delete(data, "id")
	delete(data, "created_at")

	sql, args, err := r.builder().
		Update(tableName).
		SetMap(data).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("client", c.ID.String())
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, cid id.ID) error {
	sql, args, err := r.builder().
		Delete(tableName).
		Where(squirrel.Eq{"id": cid}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperror.NewConflict("client is referenced by other records").
				WithDetail("id", cid.String()).
				WithCause(err)
		}
		return fmt.Errorf("delete client: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("client", cid.String())
	}
	return nil
}

// BuildListQuery translates a filter into a SELECT builder. Split out
// for testability.
func BuildListQuery(filter client.Filter) squirrel.SelectBuilder {
	q := squirrel.StatementBuilder.
		PlaceholderFormat(squirrel.Dollar).
		Select(selectCols...).
		From(tableName)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"code": pattern},
			squirrel.ILike{"email": pattern},
		})
	}
	if filter.Active != nil {
		q = q.Where(squirrel.Eq{"active": *filter.Active})
	}
	if filter.ScopeAssignedUser != "" {
		q = q.Where(squirrel.Or{
			squirrel.Eq{"lower(assigned_user)": filter.ScopeAssignedUser},
			squirrel.Eq{"lower(created_by_email)": filter.ScopeAssignedUser},
		})
	}
	return q
}

func (r *Repository) List(ctx context.Context, filter client.Filter) (domain.ListResult[client.Client], error) {
	result := domain.ListResult[client.Client]{
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
		return result, fmt.Errorf("count clients: %w", err)
	}

	q = q.OrderBy("created_at DESC")
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
		return result, fmt.Errorf("list clients: %w", err)
	}
	return result, nil
}

func (r *Repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	sql, args, err := r.builder().
		Select("1").
		From(tableName).
		Where(squirrel.Eq{"lower(email)": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists int
	err = r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&exists)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists by email: %w", err)
	}
	return true, nil
}

// ReplaceContacts deletes and re-inserts all contacts of a client.
func (r *Repository) ReplaceContacts(ctx context.Context, cid id.ID, contacts []client.Contact) error {
	querier := r.txManager.GetQuerier(ctx)

	delSQL, delArgs, err := r.builder().
		Delete(contactTableName).
		Where(squirrel.Eq{"client_id": cid}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build contact delete: %w", err)
	}
	if _, err := querier.Exec(ctx, delSQL, delArgs...); err != nil {
		return fmt.Errorf("delete contacts: %w", err)
	}

	for i := range contacts {
		data := postgres.StructToMap(&contacts[i])
		insSQL, insArgs, err := r.builder().
			Insert(contactTableName).
			SetMap(data).
			ToSql()
		if err != nil {
			return fmt.Errorf("build contact insert: %w", err)
		}
		if _, err := querier.Exec(ctx, insSQL, insArgs...); err != nil {
			return fmt.Errorf("insert contact: %w", err)
		}
	}
	return nil
}

func (r *Repository) loadContacts(ctx context.Context, cid id.ID) ([]client.Contact, error) {
	sql, args, err := r.builder().
		Select(contactCols...).
		From(contactTableName).
		Where(squirrel.Eq{"client_id": cid}).
		OrderBy("is_primary DESC, name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build contact query: %w", err)
	}

	contacts := make([]client.Contact, 0)
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &contacts, sql, args...); err != nil {
		return nil, fmt.Errorf("load contacts: %w", err)
	}
	return contacts, nil
}

// Package auth_repo provides PostgreSQL repositories for users and
// refresh tokens.
package auth_repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"quotify/internal/core/apperror"
	"quotify/internal/core/id"
	"quotify/internal/domain"
	"quotify/internal/domain/auth"
	"quotify/internal/infrastructure/storage/postgres"
)

const userTableName = "users"

var userSelectCols = postgres.ExtractDBColumns[auth.User]()

// UserRepository implements auth.UserRepository on PostgreSQL.
type UserRepository struct {
	txManager *postgres.TxManager
}

func NewUserRepository(txManager *postgres.TxManager) *UserRepository {
	return &UserRepository{txManager: txManager}
}

func (r *UserRepository) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *UserRepository) Create(ctx context.Context, user *auth.User) error {
	sql, args, err := r.builder().
		Insert(userTableName).
		SetMap(postgres.StructToMap(user)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate("user", "email", user.Email).
				WithCause(err)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, uid id.ID) (*auth.User, error) {
	sql, args, err := r.builder().
		Select(userSelectCols...).
		From(userTableName).
		Where(squirrel.Eq{"id": uid}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var user auth.User
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &user, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", uid.String())
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	sql, args, err := r.builder().
		Select(userSelectCols...).
		From(userTableName).
		Where(squirrel.Eq{"lower(email)": strings.ToLower(email)}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var user auth.User
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &user, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", email)
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *auth.User) error {
	data := postgres.StructToMap(user)
	delete(data, "id")
	delete(data, "created_at")

	sql, args, err := r.builder().
		Update(userTableName).
		SetMap(data).
		Where(squirrel.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("user", user.ID.String())
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, uid id.ID) error {
	sql, args, err := r.builder().
		Delete(userTableName).
		Where(squirrel.Eq{"id": uid}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("user", uid.String())
	}
	return nil
}

func (r *UserRepository) Exists(ctx context.Context, email string) (bool, error) {
	sql, args, err := r.builder().
		Select("1").
		From(userTableName).
		Where(squirrel.Eq{"lower(email)": strings.ToLower(email)}).
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
		return false, fmt.Errorf("user exists: %w", err)
	}
	return true, nil
}

func (r *UserRepository) List(ctx context.Context, filter auth.UserFilter) (domain.ListResult[auth.User], error) {
	result := domain.ListResult[auth.User]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.builder().
		Select(userSelectCols...).
		From(userTableName)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"email": pattern},
		})
	}
	if filter.Role != "" {
		q = q.Where(squirrel.Eq{"lower(role)": strings.ToLower(filter.Role)})
	}
	if filter.IsActive != nil {
		q = q.Where(squirrel.Eq{"is_active": *filter.IsActive})
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
		return result, fmt.Errorf("count users: %w", err)
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
		return result, fmt.Errorf("list users: %w", err)
	}
	return result, nil
}

package auth_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"quotify/internal/core/apperror"
	"quotify/internal/core/id"
	"quotify/internal/domain/auth"
	"quotify/internal/infrastructure/storage/postgres"
)

const tokenTableName = "refresh_tokens"

var tokenSelectCols = postgres.ExtractDBColumns[auth.RefreshToken]()

// TokenRepository implements auth.TokenRepository on PostgreSQL.
type TokenRepository struct {
	txManager *postgres.TxManager
}

func NewTokenRepository(txManager *postgres.TxManager) *TokenRepository {
	return &TokenRepository{txManager: txManager}
}

func (r *TokenRepository) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *TokenRepository) SaveRefreshToken(ctx context.Context, token *auth.RefreshToken) error {
	sql, args, err := r.builder().
		Insert(tokenTableName).
		SetMap(postgres.StructToMap(token)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

func (r *TokenRepository) GetRefreshToken(ctx context.Context, tokenHash string) (*auth.RefreshToken, error) {
	sql, args, err := r.builder().
		Select(tokenSelectCols...).
		From(tokenTableName).
		Where(squirrel.Eq{"token_hash": tokenHash}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var token auth.RefreshToken
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &token, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("refresh token", "")
		}
		return nil, fmt.Errorf("get refresh token: %w", err)
	}
	return &token, nil
}

func (r *TokenRepository) RevokeRefreshToken(ctx context.Context, tokenID id.ID) error {
	sql, args, err := r.builder().
		Update(tokenTableName).
		Set("revoked_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": tokenID}).
		Where(squirrel.Eq{"revoked_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

func (r *TokenRepository) RevokeAllUserTokens(ctx context.Context, userID id.ID) error {
	sql, args, err := r.builder().
		Update(tokenTableName).
		Set("revoked_at", time.Now().UTC()).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Eq{"revoked_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("revoke user tokens: %w", err)
	}
	return nil
}

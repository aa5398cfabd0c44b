package auth

import (
	"context"

	"quotify/internal/core/id"
	"quotify/internal/domain"
)

// UserRepository persists users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, uid id.ID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, uid id.ID) error
	Exists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter UserFilter) (domain.ListResult[User], error)
}

// TokenRepository persists refresh tokens.
type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, token *RefreshToken) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenID id.ID) error
	RevokeAllUserTokens(ctx context.Context, userID id.ID) error
}

package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotify/internal/core/apperror"
	"quotify/internal/core/id"
	"quotify/internal/domain"
	"quotify/internal/domain/activity"
	"quotify/pkg/logger"
)

type fakeUserRepo struct {
	users map[string]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *User) error {
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, uid id.ID) (*User, error) {
	for _, u := range r.users {
		if u.ID == uid {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", uid.String())
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, apperror.NewNotFound("user", email)
}

func (r *fakeUserRepo) Update(_ context.Context, user *User) error {
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, uid id.ID) error { return nil }

func (r *fakeUserRepo) Exists(_ context.Context, email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

func (r *fakeUserRepo) List(context.Context, UserFilter) (domain.ListResult[User], error) {
	return domain.ListResult[User]{}, nil
}

type fakeTokenRepo struct {
	tokens map[string]*RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*RefreshToken{}}
}

func (r *fakeTokenRepo) SaveRefreshToken(_ context.Context, token *RefreshToken) error {
	r.tokens[token.TokenHash] = token
	return nil
}

func (r *fakeTokenRepo) GetRefreshToken(_ context.Context, tokenHash string) (*RefreshToken, error) {
	if t, ok := r.tokens[tokenHash]; ok {
		return t, nil
	}
	return nil, apperror.NewNotFound("refresh token", tokenHash)
}

func (r *fakeTokenRepo) RevokeRefreshToken(_ context.Context, tokenID id.ID) error { return nil }

func (r *fakeTokenRepo) RevokeAllUserTokens(_ context.Context, userID id.ID) error { return nil }

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopActivityRepo struct{}

func (noopActivityRepo) Insert(context.Context, *activity.Entry) error { return nil }

func (noopActivityRepo) List(context.Context, activity.Filter) (domain.ListResult[activity.Entry], error) {
	return domain.ListResult[activity.Entry]{}, nil
}

func (noopActivityRepo) RecentFor(context.Context, *id.ID, string, int) ([]activity.Entry, error) {
	return nil, nil
}

func (noopActivityRepo) DeletedRecordIDs(context.Context, string) (map[string]bool, error) {
	return nil, nil
}

func (noopActivityRepo) ForEntity(context.Context, string) (map[string][]activity.Entry, error) {
	return nil, nil
}

func newTestService(t *testing.T) (*Service, *fakeUserRepo) {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "error"})
	require.NoError(t, err)

	userRepo := newFakeUserRepo()
	svc := NewService(
		userRepo,
		newFakeTokenRepo(),
		fakeTxManager{},
		NewJWTService(DefaultJWTConfig("test-secret")),
		activity.NewLogger(noopActivityRepo{}, log),
		DefaultServiceConfig(),
	)
	return svc, userRepo
}

func TestRegister_CreatesUser(t *testing.T) {
	svc, repo := newTestService(t)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Email:         "  Alice@Example.com ",
		Password:      "Secret123!",
		Name:          "Alice",
		AcceptedTerms: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, RoleUser, user.Role)
	assert.True(t, user.AcceptedTerms)
	assert.NotEqual(t, "Secret123!", user.PasswordHash)
	assert.Contains(t, repo.users, "alice@example.com")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	req := RegisterRequest{
		Email:         "alice@example.com",
		Password:      "Secret123!",
		Name:          "Alice",
		AcceptedTerms: true,
	}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
	assert.Equal(t, "alice@example.com", appErr.Details["value"])
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{name: "missing email", req: RegisterRequest{Password: "Secret123!", Name: "A", AcceptedTerms: true}},
		{name: "short password", req: RegisterRequest{Email: "a@b.io", Password: "short", Name: "A", AcceptedTerms: true}},
		{name: "terms not accepted", req: RegisterRequest{Email: "a@b.io", Password: "Secret123!", Name: "A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.req)
			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
		})
	}
}

func TestLogin_RoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Email:         "alice@example.com",
		Password:      "Secret123!",
		Name:          "Alice",
		AcceptedTerms: true,
	})
	require.NoError(t, err)

	tokens, user, err := svc.Login(ctx, Credentials{Email: "Alice@Example.com", Password: "Secret123!"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "Bearer", tokens.TokenType)
	assert.NotNil(t, user.LastLoginAt)

	_, _, err = svc.Login(ctx, Credentials{Email: "alice@example.com", Password: "wrong"})
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestLogin_DisabledAccount(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Email:         "bob@example.com",
		Password:      "Secret123!",
		Name:          "Bob",
		AcceptedTerms: true,
	})
	require.NoError(t, err)
	repo.users["bob@example.com"].IsActive = false

	_, _, err = svc.Login(ctx, Credentials{Email: "bob@example.com", Password: "Secret123!"})
	assert.Error(t, err)
}

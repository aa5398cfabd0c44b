package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"quotify/internal/core/apperror"
	appctx "quotify/internal/core/context"
	"quotify/internal/core/id"
	"quotify/internal/core/tx"
	"quotify/internal/domain"
	"quotify/internal/domain/activity"
	"quotify/pkg/logger"
)

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	PasswordMinLength  int
	RefreshTokenExpiry time.Duration
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		PasswordMinLength:  8,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
	}
}

// Service provides authentication and user management.
type Service struct {
	userRepo   UserRepository
	tokenRepo  TokenRepository
	txManager  tx.Manager
	jwtService *JWTService
	audit      *activity.Logger
	config     ServiceConfig
}

// NewService creates a new auth service.
func NewService(
	userRepo UserRepository,
	tokenRepo TokenRepository,
	txManager tx.Manager,
	jwtService *JWTService,
	audit *activity.Logger,
	config ServiceConfig,
) *Service {
	return &Service{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		txManager:  txManager,
		jwtService: jwtService,
		audit:      audit,
		config:     config,
	}
}

// Register creates a new account with the default user role.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		return nil, apperror.NewValidation("email is required").WithDetail("field", "email")
	}
	if len(req.Password) < s.config.PasswordMinLength {
		return nil, apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}
	if !req.AcceptedTerms {
		return nil, apperror.NewValidation("terms of service must be accepted").
			WithDetail("field", "acceptedTerms")
	}

	exists, err := s.userRepo.Exists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, apperror.NewDuplicate("user", "email", req.Email)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := NewUser(req.Email, string(passwordHash))
	user.Name = req.Name
	user.Company = req.Company
	user.AcceptedTerms = true
	if err := user.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		return s.userRepo.Create(txCtx, user)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, EntityName, user.ID.String(), activity.ActionRegister,
		fmt.Sprintf("User registered: %s", user.Email))

	logger.Info(ctx, "user registered",
		"user_id", user.ID,
		"email", user.Email)

	return user, nil
}

// Login authenticates the user and returns a token pair.
func (s *Service) Login(ctx context.Context, creds Credentials) (*TokenPair, *User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(creds.Email)))
	if err != nil {
		return nil, nil, apperror.NewUnauthorized("invalid credentials")
	}
	if err := user.CanLogin(); err != nil {
		return nil, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, nil, apperror.NewUnauthorized("invalid credentials")
	}

	tokens, err := s.generateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, fmt.Errorf("generate tokens: %w", err)
	}

	user.RecordLogin()
	_ = s.userRepo.Update(ctx, user)

	s.audit.Record(ctx, EntityName, user.ID.String(), activity.ActionLogin,
		fmt.Sprintf("User logged in: %s", user.Email))

	logger.Info(ctx, "user logged in",
		"user_id", user.ID,
		"email", user.Email)

	return tokens, user, nil
}

// Refresh rotates the refresh token and issues a new token pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := s.tokenRepo.GetRefreshToken(ctx, hashToken(refreshToken))
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid refresh token")
	}
	if !token.IsValid() {
		return nil, apperror.NewUnauthorized("refresh token expired or revoked")
	}

	user, err := s.userRepo.GetByID(ctx, token.UserID)
	if err != nil {
		return nil, apperror.NewUnauthorized("user not found")
	}
	if err := user.CanLogin(); err != nil {
		return nil, err
	}

	_ = s.tokenRepo.RevokeRefreshToken(ctx, token.ID)

	return s.generateTokenPair(ctx, user)
}

// Logout revokes all refresh tokens of the user.
func (s *Service) Logout(ctx context.Context, userID id.ID) error {
	return s.tokenRepo.RevokeAllUserTokens(ctx, userID)
}

// Me returns the profile of the authenticated user.
func (s *Service) Me(ctx context.Context) (*User, error) {
	user := appctx.GetUser(ctx)
	if user == nil {
		return nil, apperror.NewUnauthorized("authentication required")
	}
	uid, err := id.Parse(user.UserID)
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid user identity")
	}
	return s.userRepo.GetByID(ctx, uid)
}

// ChangePassword verifies the current password and sets a new one.
func (s *Service) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	user, err := s.Me(ctx)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return apperror.NewUnauthorized("current password is incorrect")
	}
	if len(newPassword) < s.config.PasswordMinLength {
		return apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "newPassword")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()

	err = s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.Update(txCtx, user); err != nil {
			return err
		}
		// All sessions are invalidated after a password change.
		return s.tokenRepo.RevokeAllUserTokens(txCtx, user.ID)
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, EntityName, user.ID.String(), activity.ActionUpdate,
		fmt.Sprintf("Password changed: %s", user.Email))
	return nil
}

// GetUser returns a user by ID.
func (s *Service) GetUser(ctx context.Context, uid id.ID) (*User, error) {
	return s.userRepo.GetByID(ctx, uid)
}

// ListUsers lists users with filtering.
func (s *Service) ListUsers(ctx context.Context, filter UserFilter) (domain.ListResult[User], error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.userRepo.List(ctx, filter)
}

// UpdateUser applies a partial update to a user account.
func (s *Service) UpdateUser(ctx context.Context, uid id.ID, patch Patch) (*User, error) {
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	patch.Apply(user)
	if err := user.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		return s.userRepo.Update(txCtx, user)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, EntityName, user.ID.String(), activity.ActionUpdate,
		fmt.Sprintf("Updated user: %s", user.Email))
	return user, nil
}

// DeleteUser removes a user account and revokes its sessions.
func (s *Service) DeleteUser(ctx context.Context, uid id.ID) error {
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		return err
	}
	if current := appctx.GetUser(ctx); current != nil && current.UserID == uid.String() {
		return apperror.NewValidation("cannot delete own account")
	}

	err = s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := s.tokenRepo.RevokeAllUserTokens(txCtx, uid); err != nil {
			return err
		}
		return s.userRepo.Delete(txCtx, uid)
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, EntityName, uid.String(), activity.ActionDelete,
		fmt.Sprintf("Deleted user: %s", user.Email))
	return nil
}

// generateTokenPair creates an access token plus a stored refresh token.
func (s *Service) generateTokenPair(ctx context.Context, user *User) (*TokenPair, error) {
	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshTokenRaw, err := generateRandomToken(32)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	refreshToken := &RefreshToken{
		ID:        id.New(),
		UserID:    user.ID,
		TokenHash: hashToken(refreshTokenRaw),
		ExpiresAt: time.Now().Add(s.config.RefreshTokenExpiry),
		CreatedAt: time.Now(),
	}
	if err := s.tokenRepo.SaveRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("save refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenRaw,
		ExpiresAt:    expiresAt,
		TokenType:    "Bearer",
	}, nil
}

// hashToken creates a SHA-256 hash of the token.
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// generateRandomToken generates a random token string.
func generateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

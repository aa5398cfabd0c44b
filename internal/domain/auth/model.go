// Package auth provides users, authentication and session management.
package auth

import (
	"context"
	"regexp"
	"strings"
	"time"

	"quotify/internal/core/apperror"
	"quotify/internal/core/id"
)

// EntityName is the audit trail identifier for users.
const EntityName = "User"

// Roles. Stored with the canonical casing below; comparisons are
// case-insensitive.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

var emailRE = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User represents a system user with profile and notification settings.
type User struct {
	ID           id.ID  `db:"id" json:"id"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
	Name         string `db:"name" json:"name"`
	Role         string `db:"role" json:"role"`
	IsActive     bool   `db:"is_active" json:"isActive"`

	Phone    string `db:"phone" json:"phone,omitempty"`
	Company  string `db:"company" json:"company,omitempty"`
	Position string `db:"position" json:"position,omitempty"`
	Address  string `db:"address" json:"address,omitempty"`
	City     string `db:"city" json:"city,omitempty"`
	Country  string `db:"country" json:"country,omitempty"`

	EmailNotifications bool `db:"email_notifications" json:"emailNotifications"`
	QuoteNotifications bool `db:"quote_notifications" json:"quoteNotifications"`

	AcceptedTerms bool       `db:"accepted_terms" json:"acceptedTerms"`
	LastLoginAt   *time.Time `db:"last_login_at" json:"lastLoginAt,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewUser creates a user with generated ID and default settings.
func NewUser(email, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:                 id.New(),
		Email:              strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:       passwordHash,
		Role:               RoleUser,
		IsActive:           true,
		EmailNotifications: true,
		QuoteNotifications: true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// Validate checks user invariants.
func (u *User) Validate(ctx context.Context) error {
	if u.Email == "" {
		return apperror.NewValidation("email is required").WithDetail("field", "email")
	}
	if !emailRE.MatchString(u.Email) {
		return apperror.NewValidation("invalid email format").WithDetail("field", "email")
	}
	if strings.TrimSpace(u.Name) == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	return nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return strings.EqualFold(u.Role, RoleAdmin)
}

// CanLogin checks the account is usable.
func (u *User) CanLogin() error {
	if !u.IsActive {
		return apperror.NewForbidden("account is disabled")
	}
	return nil
}

// RecordLogin stamps the last successful login time.
func (u *User) RecordLogin() {
	now := time.Now().UTC()
	u.LastLoginAt = &now
}

// Patch describes a partial user update. Nil fields are left unchanged.
type Patch struct {
	Name               *string
	Role               *string
	IsActive           *bool
	Phone              *string
	Company            *string
	Position           *string
	Address            *string
	City               *string
	Country            *string
	EmailNotifications *bool
	QuoteNotifications *bool
}

// Apply copies the patch onto the user.
func (p Patch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Role != nil && *p.Role != "" {
		u.Role = *p.Role
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Company != nil {
		u.Company = *p.Company
	}
	if p.Position != nil {
		u.Position = *p.Position
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	if p.City != nil {
		u.City = *p.City
	}
	if p.Country != nil {
		u.Country = *p.Country
	}
	if p.EmailNotifications != nil {
		u.EmailNotifications = *p.EmailNotifications
	}
	if p.QuoteNotifications != nil {
		u.QuoteNotifications = *p.QuoteNotifications
	}
	u.UpdatedAt = time.Now().UTC()
}

// RefreshToken is a stored refresh session token. Only the SHA-256
// hash of the raw token is persisted.
type RefreshToken struct {
	ID        id.ID      `db:"id" json:"id"`
	UserID    id.ID      `db:"user_id" json:"userId"`
	TokenHash string     `db:"token_hash" json:"-"`
	ExpiresAt time.Time  `db:"expires_at" json:"expiresAt"`
	RevokedAt *time.Time `db:"revoked_at" json:"-"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
}

// IsValid reports whether the token is still usable.
func (t *RefreshToken) IsValid() bool {
	if t.RevokedAt != nil {
		return false
	}
	return time.Now().Before(t.ExpiresAt)
}

// TokenPair is returned on successful login or refresh.
type TokenPair struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	TokenType    string    `json:"tokenType"`
}

// Credentials are login inputs.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest carries new account inputs.
type RegisterRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	Name          string `json:"name"`
	Company       string `json:"company"`
	AcceptedTerms bool   `json:"acceptedTerms"`
}

// UserFilter selects users in list queries.
type UserFilter struct {
	Search   string
	Role     string
	IsActive *bool
	Limit    int
	Offset   int
}

// Package client provides the client directory: companies quotations are
// issued to, together with their contact persons.
package client

import (
	"context"
	"regexp"
	"strings"
	"time"

	"quotify/internal/core/apperror"
	"quotify/internal/core/id"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// EntityName is the audit trail identifier for clients.
const EntityName = "Client"

// CodePrefix is the prefix of human-readable client codes (CLT-000042).
const CodePrefix = "CLT"

// Client represents a customer the quotations are issued to.
type Client struct {
	ID   id.ID  `db:"id" json:"id"`
	Code string `db:"code" json:"code"`

	Name      string `db:"name" json:"name"`
	Email     string `db:"email" json:"email"`
	Phone     string `db:"phone" json:"phone,omitempty"`
	Address   string `db:"address" json:"address,omitempty"`
	City      string `db:"city" json:"city,omitempty"`
	Country   string `db:"country" json:"country,omitempty"`
	VATNumber string `db:"vat_number" json:"vatNumber,omitempty"`
	Website   string `db:"website" json:"website,omitempty"`
	Notes     string `db:"notes" json:"notes,omitempty"`

	// AssignedUser is the email of the account manager responsible for
	// this client. Used for non-admin visibility scoping.
	AssignedUser string `db:"assigned_user" json:"assignedUser,omitempty"`

	Active bool `db:"active" json:"active"`

	CreatedByID    *id.ID `db:"created_by_id" json:"createdById,omitempty"`
	CreatedByEmail string `db:"created_by_email" json:"createdByEmail,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	Contacts []Contact `db:"-" json:"contacts"`
}

// Contact is a contact person attached to a client.
type Contact struct {
	ID       id.ID  `db:"id" json:"id"`
	ClientID id.ID  `db:"client_id" json:"clientId"`
	Name     string `db:"name" json:"name"`
	Email    string `db:"email" json:"email,omitempty"`
	Phone    string `db:"phone" json:"phone,omitempty"`
	Position string `db:"position" json:"position,omitempty"`
	Primary  bool   `db:"is_primary" json:"primary"`
}

// New creates a client with generated ID and defaults.
func New(name, email string) *Client {
	now := time.Now().UTC()
	return &Client{
		ID:        id.New(),
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
		Contacts:  make([]Contact, 0),
	}
}

// Validate checks client invariants.
func (c *Client) Validate(ctx context.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("client name is required").
			WithDetail("field", "name")
	}
	if strings.TrimSpace(c.Email) == "" {
		return apperror.NewValidation("client email is required").
			WithDetail("field", "email")
	}
	if !emailRE.MatchString(c.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}
	for i := range c.Contacts {
		if strings.TrimSpace(c.Contacts[i].Name) == "" {
			return apperror.NewValidation("contact name is required").
				WithDetail("field", "contacts").
				WithDetail("index", i)
		}
	}
	return nil
}

// Patch describes a partial update. Nil fields are left unchanged;
// a non-nil Contacts slice replaces all contacts.
type Patch struct {
	Name         *string
	Email        *string
	Phone        *string
	Address      *string
	City         *string
	Country      *string
	VATNumber    *string
	Website      *string
	Notes        *string
	AssignedUser *string
	Active       *bool
	Contacts     []Contact
}

// Apply copies the patch onto the client.
func (p Patch) Apply(c *Client) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.City != nil {
		c.City = *p.City
	}
	if p.Country != nil {
		c.Country = *p.Country
	}
	if p.VATNumber != nil {
		c.VATNumber = *p.VATNumber
	}
	if p.Website != nil {
		c.Website = *p.Website
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	if p.AssignedUser != nil {
		c.AssignedUser = *p.AssignedUser
	}
	if p.Active != nil {
		c.Active = *p.Active
	}
	if p.Contacts != nil {
		c.Contacts = p.Contacts
	}
	c.UpdatedAt = time.Now().UTC()
}

// Filter selects clients in list queries.
type Filter struct {
	// Search matches name or email substrings, case-insensitive.
	Search string
	Active *bool

	// ScopeAssignedUser restricts results to clients assigned to this
	// email. Empty means no scoping.
	ScopeAssignedUser string

	Limit  int
	Offset int
}

// Package item provides the product catalog used when composing
// quotation lines.
package item

import (
	"context"
	"strings"
	"time"

	"quotify/internal/core/apperror"
	"quotify/internal/core/id"
	"quotify/internal/core/types"
)

// EntityName is the audit trail identifier for catalog items.
const EntityName = "Item"

// Item is a sellable product or service.
type Item struct {
	ID          id.ID       `db:"id" json:"id"`
	Title       string      `db:"title" json:"title"`
	Description string      `db:"description" json:"description,omitempty"`
	Price       types.Money `db:"price" json:"price"`
	Quantity    int         `db:"quantity" json:"quantity"`
	Active      bool        `db:"active" json:"active"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"`
}

// New creates an item with generated ID and defaults.
func New(title string, price types.Money) *Item {
	now := time.Now().UTC()
	return &Item{
		ID:        id.New(),
		Title:     strings.TrimSpace(title),
		Price:     price,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks item invariants.
func (i *Item) Validate(ctx context.Context) error {
	if strings.TrimSpace(i.Title) == "" {
		return apperror.NewValidation("item title is required").
			WithDetail("field", "title")
	}
	if i.Price.IsNegative() {
		return apperror.NewValidation("item price cannot be negative").
			WithDetail("field", "price")
	}
	if i.Quantity < 0 {
		return apperror.NewValidation("item quantity cannot be negative").
			WithDetail("field", "quantity")
	}
	return nil
}

// Patch describes a partial update. Nil fields are left unchanged.
type Patch struct {
	Title       *string
	Description *string
	Price       *types.Money
	Quantity    *int
	Active      *bool
}

// Apply copies the patch onto the item.
func (p Patch) Apply(i *Item) {
	if p.Title != nil {
		i.Title = *p.Title
	}
	if p.Description != nil {
		i.Description = *p.Description
	}
	if p.Price != nil {
		i.Price = *p.Price
	}
	if p.Quantity != nil {
		i.Quantity = *p.Quantity
	}
	if p.Active != nil {
		i.Active = *p.Active
	}
	i.UpdatedAt = time.Now().UTC()
}

// Filter selects items in list queries.
type Filter struct {
	// Search matches title or description substrings, case-insensitive.
	Search string
	Active *bool

	Limit  int
	Offset int
}

package dto

import (
	"quotify/internal/core/types"
	"quotify/internal/domain/item"
)

// CreateItemRequest for catalog item creation.
type CreateItemRequest struct {
	Title       string      `json:"title" binding:"required"`
	Description string      `json:"description,omitempty"`
	Price       types.Money `json:"price"`
	Quantity    int         `json:"quantity"`
	Active      *bool       `json:"active"`
}

// ToItem converts to a domain item.
func (r *CreateItemRequest) ToItem() *item.Item {
	it := item.New(r.Title, r.Price)
	it.Description = r.Description
	it.Quantity = r.Quantity
	if r.Active != nil {
		it.Active = *r.Active
	}
	return it
}

// UpdateItemRequest for partial item updates.
type UpdateItemRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Price       *types.Money `json:"price"`
	Quantity    *int         `json:"quantity"`
	Active      *bool        `json:"active"`
}

// ToPatch converts to a domain patch.
func (r *UpdateItemRequest) ToPatch() item.Patch {
	return item.Patch{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Quantity:    r.Quantity,
		Active:      r.Active,
	}
}

package client

import (
	"context"

	"quotify/internal/core/id"
	"quotify/internal/domain"
)

// Repository persists clients and their contacts.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, clientID id.ID) (*Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, clientID id.ID) error
	List(ctx context.Context, filter Filter) (domain.ListResult[Client], error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ReplaceContacts deletes and re-inserts all contacts of a client.
	// Must run inside the caller's transaction.
	ReplaceContacts(ctx context.Context, clientID id.ID, contacts []Contact) error
}

package report

import (
	"context"

	"quotify/internal/domain/auth"
	"quotify/internal/domain/client"
	"quotify/internal/domain/item"
	"quotify/internal/domain/quotation"
)

// Repository loads the full record sets reports are built from.
// Inactive records are included; deletion classification happens in the
// generator.
type Repository interface {
	Clients(ctx context.Context) ([]client.Client, error)
	Items(ctx context.Context) ([]item.Item, error)
	Users(ctx context.Context) ([]auth.User, error)
	Quotations(ctx context.Context) ([]quotation.Quotation, error)
}

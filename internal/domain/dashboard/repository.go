package dashboard

import (
	"context"
	"time"

	"quotify/internal/domain/client"
	"quotify/internal/domain/quotation"
)

// Repository exposes the aggregate queries behind the dashboard.
type Repository interface {
	CountClients(ctx context.Context) (int, error)
	CountItems(ctx context.Context) (int, error)

	// QuotationStats returns slim quotation rows since the given time,
	// restricted by scope when it is non-empty.
	QuotationStats(ctx context.Context, since time.Time, scope Scope) ([]QuotationStat, error)

	RecentClients(ctx context.Context, scope Scope, limit int) ([]client.Client, error)
	RecentQuotations(ctx context.Context, scope Scope, limit int) ([]quotation.Quotation, error)
}

package activity

import (
	"context"

	"quotify/internal/core/id"
	"quotify/internal/domain"
)

// Repository persists and queries activity entries.
type Repository interface {
	Insert(ctx context.Context, entry *Entry) error
	List(ctx context.Context, filter Filter) (domain.ListResult[Entry], error)

	// RecentFor returns the latest entries attributable to a user,
	// matched by user ID or by email in performed_by columns.
	RecentFor(ctx context.Context, userID *id.ID, email string, limit int) ([]Entry, error)

	// DeletedRecordIDs returns record IDs of the given entity that have a
	// Delete entry. Used by reporting to classify removed rows.
	DeletedRecordIDs(ctx context.Context, entityName string) (map[string]bool, error)

	// ForEntity returns all entries for one entity type keyed by record ID.
	ForEntity(ctx context.Context, entityName string) (map[string][]Entry, error)
}

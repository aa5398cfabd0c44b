package quotation

import (
	"context"

	"quotify/internal/core/id"
	"quotify/internal/domain"
)

// Repository persists quotations together with their lines.
type Repository interface {
	Create(ctx context.Context, q *Quotation) error
	GetByID(ctx context.Context, qid id.ID) (*Quotation, error)
	Update(ctx context.Context, q *Quotation) error
	Delete(ctx context.Context, qid id.ID) error
	List(ctx context.Context, filter Filter) (domain.ListResult[Quotation], error)

	// ReplaceLines deletes and re-inserts all lines of a quotation.
	ReplaceLines(ctx context.Context, qid id.ID, lines []Line) error
}

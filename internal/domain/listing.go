// Package domain provides shared business-layer types.
package domain

// Page contains common pagination parameters for list operations.
type Page struct {
	Limit  int
	Offset int
}

// DefaultPage returns sensible defaults.
func DefaultPage() Page {
	return Page{Limit: 50}
}

// Normalize clamps pagination to safe bounds.
func (p *Page) Normalize() {
	if p.Limit <= 0 {
		p.Limit = 50
	}
	if p.Limit > 500 {
		p.Limit = 500
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ListResult contains paginated results.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

package dto

import (
	"time"

	"quotify/internal/domain/activity"
)

// ActivityFilterRequest contains audit log filter parameters.
type ActivityFilterRequest struct {
	EntityName  string     `json:"entityName,omitempty"`
	ActionType  string     `json:"actionType,omitempty"`
	PerformedBy string     `json:"performedBy,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Limit       int        `json:"limit"`
	Offset      int        `json:"offset"`
}

// ToFilter converts to a domain filter.
func (r *ActivityFilterRequest) ToFilter() activity.Filter {
	return activity.Filter{
		EntityName:  r.EntityName,
		ActionType:  r.ActionType,
		PerformedBy: r.PerformedBy,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Limit:       r.Limit,
		Offset:      r.Offset,
	}
}

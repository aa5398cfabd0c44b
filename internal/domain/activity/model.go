// Package activity provides the audit trail: every mutation in the system
// leaves an entry describing who did what to which record.
package activity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"quotify/internal/core/id"
)

// Action is the audited operation type.
type Action string

const (
	ActionCreate   Action = "Create"
	ActionUpdate   Action = "Update"
	ActionDelete   Action = "Delete"
	ActionLogin    Action = "Login"
	ActionRegister Action = "Register"
)

// Canonical lowercases an action for filter comparisons.
func (a Action) Canonical() string {
	return strings.ToLower(string(a))
}

// SystemActor is recorded when no authenticated user is attached to the
// request (seed scripts, registration before login).
const SystemActor = "System"

// Entry is a single activity log record.
type Entry struct {
	ID               id.ID           `db:"id" json:"id"`
	EntityName       string          `db:"entity_name" json:"entityName"`
	RecordID         string          `db:"record_id" json:"recordId"`
	ActionType       Action          `db:"action_type" json:"actionType"`
	Description      string          `db:"description" json:"description"`
	PerformedBy      string          `db:"performed_by" json:"performedBy"`
	PerformedByEmail string          `db:"performed_by_email" json:"performedByEmail,omitempty"`
	PerformedByRole  string          `db:"performed_by_role" json:"performedByRole,omitempty"`
	UserID           *id.ID          `db:"user_id" json:"userId,omitempty"`
	Changes          json.RawMessage `db:"-" json:"changes,omitempty"`
	Timestamp        time.Time       `db:"timestamp" json:"timestamp"`
}

// Defaults fills the fields callers usually leave blank.
func (e *Entry) Defaults() {
	if id.IsNil(e.ID) {
		e.ID = id.New()
	}
	if e.Description == "" {
		e.Description = fmt.Sprintf("%s %s", e.ActionType, e.EntityName)
	}
	if e.PerformedBy == "" {
		e.PerformedBy = SystemActor
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
}

// Filter selects entries for the query endpoints.
type Filter struct {
	EntityName  string
	ActionType  string
	PerformedBy string
	StartDate   *time.Time
	EndDate     *time.Time

	// Scope restricts results to entries produced by one user. Empty
	// values mean no scoping (admin view).
	ScopeUserID *id.ID
	ScopeEmail  string

	Limit  int
	Offset int
}

// Package security defines the visibility and status-classification policy
// applied to quotation data. The policy is configuration, not code scattered
// across services: scoping rules and status buckets are injected where needed.
package security

import (
	"strings"

	appctx "quotify/internal/core/context"
)

// VisibilityPolicy controls which records a user may see.
type VisibilityPolicy struct {
	// AdminSeesAll disables ownership scoping for admin users.
	AdminSeesAll bool
}

// DefaultVisibilityPolicy returns the standard policy: admins see
// everything, other users see only records they own or are assigned to.
func DefaultVisibilityPolicy() VisibilityPolicy {
	return VisibilityPolicy{AdminSeesAll: true}
}

// Scoped reports whether ownership scoping applies to the given user.
func (p VisibilityPolicy) Scoped(user *appctx.UserContext) bool {
	if user == nil {
		return true
	}
	if p.AdminSeesAll && user.IsAdmin() {
		return false
	}
	return true
}

// StatusBuckets maps raw quotation statuses into the summary buckets
// shown on the dashboard. Matching is case-insensitive.
type StatusBuckets struct {
	Pending  []string
	Approved []string
	Rejected []string
	Expired  []string
}

// DefaultStatusBuckets mirrors the status vocabulary used by the frontend:
// sent counts as pending, accepted as approved, declined and rejected both
// count as rejected.
func DefaultStatusBuckets() StatusBuckets {
	return StatusBuckets{
		Pending:  []string{"sent"},
		Approved: []string{"accepted"},
		Rejected: []string{"declined", "rejected"},
		Expired:  []string{"expired"},
	}
}

// InPending reports whether status belongs to the pending bucket.
func (b StatusBuckets) InPending(status string) bool { return contains(b.Pending, status) }

// InApproved reports whether status belongs to the approved bucket.
func (b StatusBuckets) InApproved(status string) bool { return contains(b.Approved, status) }

// InRejected reports whether status belongs to the rejected bucket.
func (b StatusBuckets) InRejected(status string) bool { return contains(b.Rejected, status) }

// InExpired reports whether status belongs to the expired bucket.
func (b StatusBuckets) InExpired(status string) bool { return contains(b.Expired, status) }

func contains(set []string, status string) bool {
	for _, s := range set {
		if strings.EqualFold(s, status) {
			return true
		}
	}
	return false
}

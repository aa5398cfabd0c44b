package activity

import (
	"context"
	"encoding/json"

	"quotify/internal/core/apperror"
	appctx "quotify/internal/core/context"
	"quotify/internal/core/id"
	"quotify/internal/domain"
	"quotify/pkg/logger"
)

// Logger records activity entries after mutations commit.
//
// Recording is strictly best-effort: a failed or panicking write must never
// fail the business operation it describes. Callers invoke Record AFTER
// their transaction has committed, so a rolled-back operation leaves no
// trail and a failed trail leaves the operation intact.
type Logger struct {
	repo Repository
	log  *logger.Logger
}

// NewLogger creates an activity logger.
func NewLogger(repo Repository, log *logger.Logger) *Logger {
	return &Logger{repo: repo, log: log.WithComponent("activity")}
}

// Record writes an entry, stamping actor identity from the context.
// Errors are logged and swallowed.
func (l *Logger) Record(ctx context.Context, entityName, recordID string, action Action, description string) {
	l.RecordChanges(ctx, entityName, recordID, action, description, nil)
}

// RecordChanges writes an entry with an attached change payload.
func (l *Logger) RecordChanges(ctx context.Context, entityName, recordID string, action Action, description string, changes map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Warnw("activity logging panicked", "entity", entityName, "record_id", recordID, "panic", r)
		}
	}()

	entry := &Entry{
		EntityName:  entityName,
		RecordID:    recordID,
		ActionType:  action,
		Description: description,
	}

	if user := appctx.GetUser(ctx); user != nil {
		entry.PerformedBy = user.DisplayName()
		entry.PerformedByEmail = user.Email
		entry.PerformedByRole = user.Role
		if uid, err := id.Parse(user.UserID); err == nil {
			entry.UserID = &uid
		}
	}

	if len(changes) > 0 {
		if raw, err := json.Marshal(changes); err == nil {
			entry.Changes = raw
		}
	}

	entry.Defaults()

	if err := l.repo.Insert(ctx, entry); err != nil {
		l.log.Warnw("failed to record activity",
			"entity", entityName,
			"record_id", recordID,
			"action", action,
			"error", err,
		)
	}
}

// Service answers the activity query endpoints.
type Service struct {
	repo Repository
}

// NewService creates an activity query service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// MyRecent returns the latest entries attributable to the calling user.
func (s *Service) MyRecent(ctx context.Context, limit int) ([]Entry, error) {
	user := appctx.GetUser(ctx)
	if user == nil {
		return nil, apperror.NewUnauthorized("authentication required")
	}
	if limit <= 0 {
		limit = 5
	}

	var uid *id.ID
	if parsed, err := id.Parse(user.UserID); err == nil {
		uid = &parsed
	}

	return s.repo.RecentFor(ctx, uid, user.NormalizedEmail(), limit)
}

// Filter returns entries matching the filter. Non-admin callers are
// scoped to their own entries regardless of the requested filter.
func (s *Service) Filter(ctx context.Context, filter Filter) (domain.ListResult[Entry], error) {
	user := appctx.GetUser(ctx)
	if user == nil {
		return domain.ListResult[Entry]{}, apperror.NewUnauthorized("authentication required")
	}

	if !user.IsAdmin() {
		if parsed, err := id.Parse(user.UserID); err == nil {
			filter.ScopeUserID = &parsed
		}
		filter.ScopeEmail = user.NormalizedEmail()
	}

	if filter.Limit <= 0 {
		filter.Limit = 50
	}

	return s.repo.List(ctx, filter)
}

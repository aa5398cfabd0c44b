package activity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "quotify/internal/core/context"
	"quotify/internal/core/id"
	"quotify/internal/domain"
	"quotify/pkg/logger"
)

type captureRepo struct {
	entries   []*Entry
	insertErr error
}

func (r *captureRepo) Insert(_ context.Context, entry *Entry) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *captureRepo) List(context.Context, Filter) (domain.ListResult[Entry], error) {
	return domain.ListResult[Entry]{}, nil
}

func (r *captureRepo) RecentFor(context.Context, *id.ID, string, int) ([]Entry, error) {
	return nil, nil
}

func (r *captureRepo) DeletedRecordIDs(context.Context, string) (map[string]bool, error) {
	return nil, nil
}

func (r *captureRepo) ForEntity(context.Context, string) (map[string][]Entry, error) {
	return nil, nil
}

func testLog(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "error"})
	require.NoError(t, err)
	return log
}

func TestLogger_RecordStampsActor(t *testing.T) {
	repo := &captureRepo{}
	l := NewLogger(repo, testLog(t))

	actor := id.New()
	ctx := appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID: actor.String(),
		Email:  "alice@example.com",
		Role:   "admin",
		Name:   "Alice",
	})

	l.Record(ctx, "Client", "c-1", ActionCreate, "created client Acme")

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.Equal(t, "Client", entry.EntityName)
	assert.Equal(t, "c-1", entry.RecordID)
	assert.Equal(t, ActionCreate, entry.ActionType)
	assert.Equal(t, "alice@example.com", entry.PerformedByEmail)
	assert.Equal(t, "admin", entry.PerformedByRole)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, actor, *entry.UserID)
	assert.False(t, id.IsNil(entry.ID))
	assert.False(t, entry.Timestamp.IsZero())
}

func TestLogger_RecordWithoutUser(t *testing.T) {
	repo := &captureRepo{}
	l := NewLogger(repo, testLog(t))

	l.Record(context.Background(), "Item", "i-1", ActionUpdate, "updated item")

	require.Len(t, repo.entries, 1)
	assert.Nil(t, repo.entries[0].UserID)
	assert.Equal(t, SystemActor, repo.entries[0].PerformedBy)
}

func TestLogger_RecordChangesPayload(t *testing.T) {
	repo := &captureRepo{}
	l := NewLogger(repo, testLog(t))

	l.RecordChanges(context.Background(), "Quotation", "q-1", ActionUpdate, "status changed",
		map[string]any{"status": "sent"})

	require.Len(t, repo.entries, 1)
	assert.JSONEq(t, `{"status":"sent"}`, string(repo.entries[0].Changes))
}

func TestLogger_InsertFailureIsSwallowed(t *testing.T) {
	repo := &captureRepo{insertErr: errors.New("db down")}
	l := NewLogger(repo, testLog(t))

	// must not panic or surface the error
	l.Record(context.Background(), "Client", "c-1", ActionDelete, "deleted client")

	assert.Empty(t, repo.entries)
}

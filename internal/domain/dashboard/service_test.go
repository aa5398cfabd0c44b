package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotify/internal/core/apperror"
	appctx "quotify/internal/core/context"
	"quotify/internal/core/id"
	"quotify/internal/core/security"
	"quotify/internal/domain"
	"quotify/internal/domain/activity"
	"quotify/internal/domain/client"
	"quotify/internal/domain/quotation"
)

type scopeRecordingRepo struct {
	lastScope Scope
}

func (r *scopeRecordingRepo) CountClients(context.Context) (int, error) { return 0, nil }
func (r *scopeRecordingRepo) CountItems(context.Context) (int, error)   { return 0, nil }

func (r *scopeRecordingRepo) QuotationStats(_ context.Context, _ time.Time, scope Scope) ([]QuotationStat, error) {
	r.lastScope = scope
	return nil, nil
}

func (r *scopeRecordingRepo) RecentClients(_ context.Context, scope Scope, _ int) ([]client.Client, error) {
	r.lastScope = scope
	return nil, nil
}

func (r *scopeRecordingRepo) RecentQuotations(_ context.Context, scope Scope, _ int) ([]quotation.Quotation, error) {
	r.lastScope = scope
	return nil, nil
}

type stubActivityRepo struct{}

func (stubActivityRepo) Insert(context.Context, *activity.Entry) error { return nil }

func (stubActivityRepo) List(context.Context, activity.Filter) (domain.ListResult[activity.Entry], error) {
	return domain.ListResult[activity.Entry]{}, nil
}

func (stubActivityRepo) RecentFor(context.Context, *id.ID, string, int) ([]activity.Entry, error) {
	return nil, nil
}

func (stubActivityRepo) DeletedRecordIDs(context.Context, string) (map[string]bool, error) {
	return nil, nil
}

func (stubActivityRepo) ForEntity(context.Context, string) (map[string][]activity.Entry, error) {
	return nil, nil
}

func newScopeService() (*Service, *scopeRecordingRepo) {
	repo := &scopeRecordingRepo{}
	svc := NewService(repo, activity.NewService(stubActivityRepo{}),
		security.DefaultVisibilityPolicy(), security.DefaultStatusBuckets())
	return svc, repo
}

func userCtx(role string) context.Context {
	return appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID: id.New().String(),
		Email:  "sales@quotify.local",
		Role:   role,
	})
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestDashboard_AnonymousCallerRejected(t *testing.T) {
	svc, _ := newScopeService()
	ctx := context.Background()

	_, err := svc.Overview(ctx, "month")
	assertUnauthorized(t, err)

	_, err = svc.Pipeline(ctx, "month")
	assertUnauthorized(t, err)

	_, err = svc.RecentClients(ctx, 5)
	assertUnauthorized(t, err)

	_, err = svc.RecentQuotations(ctx, 5)
	assertUnauthorized(t, err)
}

func TestDashboard_AdminSeesUnscoped(t *testing.T) {
	svc, repo := newScopeService()

	_, err := svc.RecentQuotations(userCtx("Admin"), 5)
	require.NoError(t, err)
	assert.True(t, repo.lastScope.Empty())
}

func TestDashboard_UserIsScoped(t *testing.T) {
	svc, repo := newScopeService()

	_, err := svc.RecentQuotations(userCtx("User"), 5)
	require.NoError(t, err)
	assert.False(t, repo.lastScope.Empty())
	assert.Equal(t, "sales@quotify.local", repo.lastScope.Email)
	require.NotNil(t, repo.lastScope.UserID)
}

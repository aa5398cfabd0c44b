package quotation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotify/internal/core/apperror"
	appctx "quotify/internal/core/context"
	"quotify/internal/core/id"
	"quotify/internal/core/security"
	"quotify/internal/domain"
)

// filterRecordingRepo captures the filter List receives after the
// service applied visibility scoping.
type filterRecordingRepo struct {
	lastFilter Filter
}

func (r *filterRecordingRepo) Create(context.Context, *Quotation) error { return nil }

func (r *filterRecordingRepo) GetByID(context.Context, id.ID) (*Quotation, error) {
	return nil, apperror.NewNotFound("quotation", "")
}

func (r *filterRecordingRepo) Update(context.Context, *Quotation) error { return nil }
func (r *filterRecordingRepo) Delete(context.Context, id.ID) error      { return nil }

func (r *filterRecordingRepo) List(_ context.Context, filter Filter) (domain.ListResult[Quotation], error) {
	r.lastFilter = filter
	return domain.ListResult[Quotation]{}, nil
}

func (r *filterRecordingRepo) ReplaceLines(context.Context, id.ID, []Line) error { return nil }

func newListService() (*Service, *filterRecordingRepo) {
	repo := &filterRecordingRepo{}
	return NewService(repo, nil, nil, nil, security.DefaultVisibilityPolicy()), repo
}

func userCtx(role string) (context.Context, id.ID) {
	uid := id.New()
	ctx := appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID: uid.String(),
		Email:  "Sales@quotify.local",
		Role:   role,
	})
	return ctx, uid
}

func TestList_AnonymousCallerRejected(t *testing.T) {
	svc, repo := newListService()

	_, err := svc.List(context.Background(), Filter{})

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
	assert.Empty(t, repo.lastFilter.ScopeEmail, "repository must not be reached")
}

func TestList_UserIsScoped(t *testing.T) {
	svc, repo := newListService()
	ctx, uid := userCtx("User")

	_, err := svc.List(ctx, Filter{})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter.ScopeUserID)
	assert.Equal(t, uid, *repo.lastFilter.ScopeUserID)
	assert.Equal(t, "sales@quotify.local", repo.lastFilter.ScopeEmail)
}

func TestList_AdminSeesUnscoped(t *testing.T) {
	svc, repo := newListService()
	ctx, _ := userCtx("Admin")

	_, err := svc.List(ctx, Filter{Status: "All"})
	require.NoError(t, err)

	assert.Nil(t, repo.lastFilter.ScopeUserID)
	assert.Empty(t, repo.lastFilter.ScopeEmail)
	assert.Empty(t, repo.lastFilter.Status, "status \"all\" disables the filter")
}

package client

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

func (r *filterRecordingRepo) Create(context.Context, *Client) error { return nil }

func (r *filterRecordingRepo) GetByID(context.Context, id.ID) (*Client, error) {
	return nil, apperror.NewNotFound("client", "")
}

func (r *filterRecordingRepo) Update(context.Context, *Client) error { return nil }
func (r *filterRecordingRepo) Delete(context.Context, id.ID) error   { return nil }

func (r *filterRecordingRepo) List(_ context.Context, filter Filter) (domain.ListResult[Client], error) {
	r.lastFilter = filter
	return domain.ListResult[Client]{}, nil
}

func (r *filterRecordingRepo) ExistsByEmail(context.Context, string) (bool, error) {
	return false, nil
}

func (r *filterRecordingRepo) ReplaceContacts(context.Context, id.ID, []Contact) error {
	return nil
}

func newListService() (*Service, *filterRecordingRepo) {
	repo := &filterRecordingRepo{}
	return NewService(repo, nil, nil, nil, security.DefaultVisibilityPolicy()), repo
}

func userCtx(role string) context.Context {
	return appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID: id.New().String(),
		Email:  "Sales@quotify.local",
		Role:   role,
	})
}

func TestList_AnonymousCallerRejected(t *testing.T) {
	svc, repo := newListService()

	_, err := svc.List(context.Background(), Filter{})

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
	assert.Empty(t, repo.lastFilter.ScopeAssignedUser, "repository must not be reached")
}

func TestList_UserIsScopedToAssignedClients(t *testing.T) {
	svc, repo := newListService()

	_, err := svc.List(userCtx("User"), Filter{})
	require.NoError(t, err)

	assert.Equal(t, "sales@quotify.local", repo.lastFilter.ScopeAssignedUser)
	assert.Equal(t, 50, repo.lastFilter.Limit, "default page size applies")
}

func TestList_AdminSeesUnscoped(t *testing.T) {
	svc, repo := newListService()

	_, err := svc.List(userCtx("Admin"), Filter{})
	require.NoError(t, err)

	assert.Empty(t, repo.lastFilter.ScopeAssignedUser)
}

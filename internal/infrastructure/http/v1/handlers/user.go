package handlers

import (
	"github.com/gin-gonic/gin"

	"quotify/internal/core/apperror"
	"quotify/internal/core/id"
	"quotify/internal/domain/auth"
	"quotify/internal/infrastructure/http/v1/dto"
	"quotify/internal/infrastructure/http/v1/middleware"
)

// UserHandler handles user management endpoints. Listing and deleting
// are admin-only; users may read and update their own profile.
type UserHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewUserHandler creates a new user handler.
func NewUserHandler(base *BaseHandler, service *auth.Service) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /users
func (h *UserHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.UserListQuery
	if !h.BindQuery(c, &query) {
		return
	}
	if query.Limit == 0 {
		query.Limit = h.ParseIntQuery(c, "limit", 50)
	}

	result, err := h.service.ListUsers(ctx, query.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      dto.FromUsers(result.Items),
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	uid, ok := h.targetUser(c)
	if !ok {
		return
	}

	user, err := h.service.GetUser(ctx, uid)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromUser(user))
}

// Update handles PUT /users/:id
func (h *UserHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	uid, ok := h.targetUser(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	patch := req.ToPatch()
	if user := h.CurrentUser(c); user != nil && !user.IsAdmin() {
		// Non-admins cannot change role or active state.
		patch.Role = nil
		patch.IsActive = nil
	}

	updated, err := h.service.UpdateUser(ctx, uid, patch)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromUser(updated))
}

// Delete handles DELETE /users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	uid, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.DeleteUser(ctx, uid); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// targetUser parses the path ID and checks that the caller is an admin
// or is addressing their own record.
func (h *UserHandler) targetUser(c *gin.Context) (id.ID, bool) {
	uid, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return id.Nil(), false
	}

	user := h.CurrentUser(c)
	if user == nil {
		h.Error(c, apperror.NewUnauthorized("not authenticated"))
		return id.Nil(), false
	}
	if !user.IsAdmin() && user.UserID != uid.String() {
		h.Error(c, apperror.NewForbidden("admin role required"))
		return id.Nil(), false
	}
	return uid, true
}

// RegisterRoutes registers user management routes.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.GET("", middleware.RequireAdmin(), h.List)
	users.GET("/:id", h.Get)
	users.PUT("/:id", h.Update)
	users.DELETE("/:id", middleware.RequireAdmin(), h.Delete)
}

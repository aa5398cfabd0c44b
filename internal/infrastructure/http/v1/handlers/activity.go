package handlers

import (
	"github.com/gin-gonic/gin"

	"quotify/internal/domain/activity"
	"quotify/internal/infrastructure/http/v1/dto"
)

// ActivityHandler handles audit log endpoints.
type ActivityHandler struct {
	*BaseHandler
	service *activity.Service
}

// NewActivityHandler creates a new activity handler.
func NewActivityHandler(base *BaseHandler, service *activity.Service) *ActivityHandler {
	return &ActivityHandler{
		BaseHandler: base,
		service:     service,
	}
}

// MyRecent handles GET /activities/my-recent
func (h *ActivityHandler) MyRecent(c *gin.Context) {
	ctx := c.Request.Context()

	limit := h.ParseIntQuery(c, "limit", 10)

	entries, err := h.service.MyRecent(ctx, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": entries})
}

// Filter handles POST /activities/filter
func (h *ActivityHandler) Filter(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ActivityFilterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Filter(ctx, req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// RegisterRoutes registers activity routes.
func (h *ActivityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	activities := rg.Group("/activities")
	activities.GET("/my-recent", h.MyRecent)
	activities.POST("/filter", h.Filter)
}

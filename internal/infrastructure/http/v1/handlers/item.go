package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quotify/internal/core/apperror"
	"quotify/internal/core/id"
	"quotify/internal/domain/item"
	"quotify/internal/infrastructure/http/v1/dto"
)

// ItemHandler handles catalog item endpoints.
type ItemHandler struct {
	*BaseHandler
	service *item.Service
}

// NewItemHandler creates a new item handler.
func NewItemHandler(base *BaseHandler, service *item.Service) *ItemHandler {
	return &ItemHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /items
func (h *ItemHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := item.Filter{
		Search: c.Query("search"),
		Limit:  h.ParseIntQuery(c, "limit", 50),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}
	if active := c.Query("active"); active != "" {
		val := active == "true"
		filter.Active = &val
	}

	result, err := h.service.List(ctx, filter)
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

// Get handles GET /items/:id
func (h *ItemHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	found, err := h.service.Get(ctx, itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, found)
}

// Create handles POST /items
func (h *ItemHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	created, err := h.service.Create(ctx, req.ToItem())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /items/:id
func (h *ItemHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.Update(ctx, itemID, req.ToPatch())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, updated)
}

// Delete handles DELETE /items/:id
func (h *ItemHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(ctx, itemID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers item routes.
func (h *ItemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/items")
	items.GET("", h.List)
	items.GET("/:id", h.Get)
	items.POST("", h.Create)
	items.PUT("/:id", h.Update)
	items.DELETE("/:id", h.Delete)
}

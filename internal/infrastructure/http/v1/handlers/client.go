package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quotify/internal/core/apperror"
	"quotify/internal/core/id"
	"quotify/internal/domain/client"
	"quotify/internal/infrastructure/http/v1/dto"
)

// ClientHandler handles client endpoints.
type ClientHandler struct {
	*BaseHandler
	service *client.Service
}

// NewClientHandler creates a new client handler.
func NewClientHandler(base *BaseHandler, service *client.Service) *ClientHandler {
	return &ClientHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /clients - list with filtering and pagination.
func (h *ClientHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := client.Filter{
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

// Get handles GET /clients/:id
func (h *ClientHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	clientID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	found, err := h.service.Get(ctx, clientID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, found)
}

// Create handles POST /clients
func (h *ClientHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateClientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	created, err := h.service.Create(ctx, req.ToClient())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /clients/:id
func (h *ClientHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	clientID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateClientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.Update(ctx, clientID, req.ToPatch())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, updated)
}

// Delete handles DELETE /clients/:id
func (h *ClientHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	clientID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(ctx, clientID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// NextCode handles GET /clients/next-code
func (h *ClientHandler) NextCode(c *gin.Context) {
	ctx := c.Request.Context()

	code, err := h.service.NextCode(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NextCodeResponse{Code: code})
}

// RegisterRoutes registers client routes.
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	clients := rg.Group("/clients")
	clients.GET("", h.List)
	clients.GET("/next-code", h.NextCode)
	clients.GET("/:id", h.Get)
	clients.POST("", h.Create)
	clients.PUT("/:id", h.Update)
	clients.DELETE("/:id", h.Delete)
}

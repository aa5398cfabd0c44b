package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quotify/internal/core/apperror"
	"quotify/internal/core/id"
	"quotify/internal/domain/quotation"
	"quotify/internal/infrastructure/http/v1/dto"
)

// QuotationHandler handles quotation endpoints.
type QuotationHandler struct {
	*BaseHandler
	service *quotation.Service
}

// NewQuotationHandler creates a new quotation handler.
func NewQuotationHandler(base *BaseHandler, service *quotation.Service) *QuotationHandler {
	return &QuotationHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /quotations
func (h *QuotationHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.QuotationListQuery
	if !h.BindQuery(c, &query) {
		return
	}
	if query.Limit == 0 {
		query.Limit = h.ParseIntQuery(c, "limit", 50)
	}

	result, err := h.service.List(ctx, query.ToFilter())
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

// Get handles GET /quotations/:id
func (h *QuotationHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	qid, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	found, err := h.service.Get(ctx, qid)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, found)
}

// Create handles POST /quotations
func (h *QuotationHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateQuotationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	created, err := h.service.Create(ctx, req.ToQuotation())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /quotations/:id
func (h *QuotationHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	qid, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateQuotationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.Update(ctx, qid, req.ToPatch())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, updated)
}

// SetStatus handles PATCH /quotations/:id/status
func (h *QuotationHandler) SetStatus(c *gin.Context) {
	ctx := c.Request.Context()

	qid, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.SetStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.SetStatus(ctx, qid, req.Status)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, updated)
}

// Delete handles DELETE /quotations/:id
func (h *QuotationHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	qid, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(ctx, qid); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// NextNumber handles GET /quotations/next-number
func (h *QuotationHandler) NextNumber(c *gin.Context) {
	ctx := c.Request.Context()

	number, err := h.service.NextNumber(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NextNumberResponse{Number: number})
}

// RegisterRoutes registers quotation routes.
func (h *QuotationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	quotations := rg.Group("/quotations")
	quotations.GET("", h.List)
	quotations.GET("/next-number", h.NextNumber)
	quotations.GET("/:id", h.Get)
	quotations.POST("", h.Create)
	quotations.PUT("/:id", h.Update)
	quotations.PATCH("/:id/status", h.SetStatus)
	quotations.DELETE("/:id", h.Delete)
}

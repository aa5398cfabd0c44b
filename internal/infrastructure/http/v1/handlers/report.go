package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"quotify/internal/domain/report"
	"quotify/internal/export"
	"quotify/internal/infrastructure/http/v1/dto"
)

// ReportHandler handles report generation and export endpoints.
type ReportHandler struct {
	*BaseHandler
	service *report.Service
}

// NewReportHandler creates a new report handler.
func NewReportHandler(base *BaseHandler, service *report.Service) *ReportHandler {
	return &ReportHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Generate handles POST /reports/generate - on-screen report rows.
func (h *ReportHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	var req report.Request
	if !h.BindJSON(c, &req) {
		return
	}

	q := req.Normalize()
	table, err := h.service.Generate(ctx, q)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewGenerateReportResponse(q.ReportType, table))
}

// Export handles POST /reports/export - report as a downloadable file.
func (h *ReportHandler) Export(c *gin.Context) {
	ctx := c.Request.Context()

	var req report.Request
	if !h.BindJSON(c, &req) {
		return
	}

	q := req.Normalize()
	table, err := h.service.Generate(ctx, q)
	if err != nil {
		h.Error(c, err)
		return
	}

	file, err := export.Render(table, q.ReportType, q.Format)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.MIME, file.Content)
}

// RegisterRoutes registers report routes.
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	reports.POST("/generate", h.Generate)
	reports.POST("/export", h.Export)
}

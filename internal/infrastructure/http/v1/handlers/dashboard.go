package handlers

import (
	"github.com/gin-gonic/gin"

	"quotify/internal/domain/dashboard"
)

// DashboardHandler handles dashboard endpoints.
type DashboardHandler struct {
	*BaseHandler
	service *dashboard.Service
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(base *BaseHandler, service *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Data handles GET /dashboard/data - the combined dashboard payload.
func (h *DashboardHandler) Data(c *gin.Context) {
	ctx := c.Request.Context()

	data, err := h.service.Data(ctx, c.Query("period"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, data)
}

// Overview handles GET /dashboard/overview
func (h *DashboardHandler) Overview(c *gin.Context) {
	ctx := c.Request.Context()

	overview, err := h.service.Overview(ctx, c.Query("period"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, overview)
}

// Pipeline handles GET /dashboard/quotation-pipeline
func (h *DashboardHandler) Pipeline(c *gin.Context) {
	ctx := c.Request.Context()

	pipeline, err := h.service.Pipeline(ctx, c.Query("period"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, pipeline)
}

// RecentClients handles GET /dashboard/recent-clients
func (h *DashboardHandler) RecentClients(c *gin.Context) {
	ctx := c.Request.Context()

	clients, err := h.service.RecentClients(ctx, h.ParseIntQuery(c, "limit", 5))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": clients})
}

// RecentQuotations handles GET /dashboard/recent-quotations
func (h *DashboardHandler) RecentQuotations(c *gin.Context) {
	ctx := c.Request.Context()

	quotations, err := h.service.RecentQuotations(ctx, h.ParseIntQuery(c, "limit", 5))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": quotations})
}

// RecentActivities handles GET /dashboard/recent-activities
func (h *DashboardHandler) RecentActivities(c *gin.Context) {
	ctx := c.Request.Context()

	entries, err := h.service.RecentActivities(ctx, h.ParseIntQuery(c, "limit", 5))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": entries})
}

// RegisterRoutes registers dashboard routes.
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	dash := rg.Group("/dashboard")
	dash.GET("/data", h.Data)
	dash.GET("/overview", h.Overview)
	dash.GET("/quotation-pipeline", h.Pipeline)
	dash.GET("/recent-clients", h.RecentClients)
	dash.GET("/recent-quotations", h.RecentQuotations)
	dash.GET("/recent-activities", h.RecentActivities)
}

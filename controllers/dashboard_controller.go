package controllers

import (
	"net/http"

	apperrors "github.com/mohamedhosni23/apple-store-bi-project/common/errors"
	"github.com/mohamedhosni23/apple-store-bi-project/common/logger"
	"github.com/mohamedhosni23/apple-store-bi-project/services"

	"github.com/gin-gonic/gin"
)

// DashboardController serves the analytics page's backend.
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController.
func NewDashboardController(svc services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: svc}
}

// GetEmbed handles GET /api/bi/embed
func (dc *DashboardController) GetEmbed(ctx *gin.Context) {
	cfg, err := dc.dashboardService.Embed()
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, cfg)
}

// GetKPIs handles GET /api/bi/kpis
func (dc *DashboardController) GetKPIs(ctx *gin.Context) {
	summary, err := dc.dashboardService.KPIs(ctx.Request.Context())
	if err != nil {
		logger.Error(ctx, "Failed to compute KPIs", err)
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

// RefreshKPIs handles POST /api/bi/kpis/refresh
func (dc *DashboardController) RefreshKPIs(ctx *gin.Context) {
	summary, err := dc.dashboardService.RefreshKPIs(ctx.Request.Context())
	if err != nil {
		logger.Error(ctx, "Failed to refresh KPIs", err)
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

// Health handles GET /health
func Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "OK"})
}

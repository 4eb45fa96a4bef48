package routes

import (
	apperrors "github.com/mohamedhosni23/apple-store-bi-project/common/errors"
	"github.com/mohamedhosni23/apple-store-bi-project/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterDashboardRoutes sets up the health check and the analytics routes.
func RegisterDashboardRoutes(r *gin.Engine, dc *controllers.DashboardController) {
	r.GET("/health", controllers.Health)
	r.NoRoute(apperrors.NoRoute)

	bi := r.Group("/api/bi")
	bi.GET("/embed", dc.GetEmbed)
	bi.GET("/kpis", dc.GetKPIs)
	bi.POST("/kpis/refresh", dc.RefreshKPIs)
}

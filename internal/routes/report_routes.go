package routes

import (
	"fleet_board/internal/controllers"
	"fleet_board/internal/middleware"
	"fleet_board/internal/models"

	"github.com/gin-gonic/gin"
)

func ReportRoutes(r *gin.Engine) {
	reports := r.Group("/reports")
	reports.Use(middleware.RequireAuth(), middleware.ResolveSession(),
		middleware.RequireRole(models.RoleSuperAdmin, models.RoleAdmin, models.RoleTobAdmin))
	{
		reports.GET("/type-matrix", controllers.TypeMatrixReport)
		reports.GET("/location-pivot", controllers.LocationPivotReport)
	}

	remarks := r.Group("/tob-reports")
	remarks.Use(middleware.RequireAuth(), middleware.ResolveSession(),
		middleware.RequireRole(models.RoleSuperAdmin, models.RoleAdmin, models.RoleTobAdmin))
	{
		remarks.GET("", controllers.ListTobReports)
		remarks.PUT("/:location", controllers.UpsertTobReport)
	}
}

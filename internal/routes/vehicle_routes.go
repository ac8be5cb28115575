package routes

import (
	"fleet_board/internal/controllers"
	"fleet_board/internal/middleware"
	"fleet_board/internal/models"

	"github.com/gin-gonic/gin"
)

func VehicleRoutes(r *gin.Engine) {
	vehicles := r.Group("/vehicles")
	vehicles.Use(middleware.RequireAuth(), middleware.ResolveSession(),
		middleware.RequireRole(models.RoleSuperAdmin, models.RoleAdmin, models.RoleTobAdmin))
	{
		vehicles.GET("", controllers.ListVehicles)
		vehicles.GET("/:id", controllers.GetVehicle)
		vehicles.POST("", controllers.CreateVehicle)
		vehicles.PUT("/:id", controllers.UpdateVehicle)
	}

	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.RequireAuth(), middleware.ResolveSession(),
		middleware.RequireRole(models.RoleSuperAdmin, models.RoleAdmin, models.RoleTobAdmin))
	{
		dashboard.GET("/vehicles", controllers.DashboardVehicles)
	}
}

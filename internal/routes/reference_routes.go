package routes

import (
	"fleet_board/internal/controllers"
	"fleet_board/internal/middleware"
	"fleet_board/internal/models"

	"github.com/gin-gonic/gin"
)

func ReferenceRoutes(r *gin.Engine) {
	// Reads are open to every staff role; writes stay with admins.
	read := r.Group("/reference")
	read.Use(middleware.RequireAuth(), middleware.ResolveSession(),
		middleware.RequireRole(models.RoleSuperAdmin, models.RoleAdmin, models.RoleTobAdmin))
	{
		read.GET("/vehicle-types", controllers.ListVehicleTypes)
		read.GET("/locations", controllers.ListLocations)
		read.GET("/vehicle-statuses", controllers.ListVehicleStatuses)
		read.GET("/operational-categories", controllers.ListOperationalCategories)
	}

	write := r.Group("/reference")
	write.Use(middleware.RequireAuth(), middleware.ResolveSession(),
		middleware.RequireRole(models.RoleSuperAdmin, models.RoleAdmin))
	{
		write.POST("/vehicle-types", controllers.CreateVehicleType)
		write.PUT("/vehicle-types/:id", controllers.UpdateVehicleType)
		write.DELETE("/vehicle-types/:id", controllers.DeleteVehicleType)

		write.POST("/locations", controllers.CreateLocation)
		write.PUT("/locations/:id", controllers.UpdateLocation)
		write.DELETE("/locations/:id", controllers.DeleteLocation)

		write.POST("/vehicle-statuses", controllers.CreateVehicleStatus)
		write.PUT("/vehicle-statuses/:id", controllers.UpdateVehicleStatus)
		write.DELETE("/vehicle-statuses/:id", controllers.DeleteVehicleStatus)

		write.POST("/operational-categories", controllers.CreateOperationalCategory)
		write.PUT("/operational-categories/:id", controllers.UpdateOperationalCategory)
		write.DELETE("/operational-categories/:id", controllers.DeleteOperationalCategory)
	}
}

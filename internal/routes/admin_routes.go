package routes

import (
	"fleet_board/internal/controllers"
	"fleet_board/internal/middleware"
	"fleet_board/internal/models"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuth(), middleware.ResolveSession(),
		middleware.RequireRole(models.RoleSuperAdmin, models.RoleAdmin))
	{
		admin.GET("/users", controllers.ListManagedUsers)
		admin.POST("/users", controllers.CreateManagedUser)
		admin.POST("/users/:id/password", controllers.ResetUserPassword)
		admin.DELETE("/users/:id", controllers.DeleteManagedUser)

		admin.POST("/vehicles/provision", controllers.ProvisionVehicle)
		admin.POST("/vehicles/:id/device-token", controllers.MintDeviceToken)
		admin.DELETE("/vehicles/:id", controllers.DeleteVehicleCascade)
	}
}

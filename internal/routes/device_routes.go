package routes

import (
	"fleet_board/internal/controllers"
	"fleet_board/internal/middleware"
	"fleet_board/internal/models"

	"github.com/gin-gonic/gin"
)

func DeviceRoutes(r *gin.Engine) {
	device := r.Group("/device")
	device.Use(middleware.RequireAuth(), middleware.ResolveSession(),
		middleware.RequireRole(models.RoleVehicleUser))
	{
		device.GET("/vehicle", controllers.GetDeviceVehicle)
		device.PUT("/vehicle/mileage", controllers.UpdateDeviceMileage)
	}
}

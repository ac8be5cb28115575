package routes

import (
	"fleet_board/internal/controllers"
	"fleet_board/internal/middleware"
	"fleet_board/internal/models"

	"github.com/gin-gonic/gin"
)

func MaintenanceRoutes(r *gin.Engine) {
	board := r.Group("/")
	board.Use(middleware.RequireAuth(), middleware.ResolveSession(),
		middleware.RequireRole(models.RoleSuperAdmin, models.RoleAdmin, models.RoleTobAdmin))
	{
		board.GET("/workshop/feed", controllers.WorkshopFeed)
		board.POST("/maintenance", controllers.CreateTicket)
		board.POST("/maintenance/:id/advance", controllers.AdvanceTicket)
	}
}

package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	AuthRoutes(r)
	ReferenceRoutes(r)
	VehicleRoutes(r)
	MaintenanceRoutes(r)
	ReportRoutes(r)
	AdminRoutes(r)
	DeviceRoutes(r)

	return r
}

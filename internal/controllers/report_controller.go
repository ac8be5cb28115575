package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet_board/internal/config"
	"fleet_board/internal/middleware"
	"fleet_board/internal/models"
	"fleet_board/internal/report"
)

// loadReportInput fetches the resolved vehicle rows plus the curated
// dimension orders the report package needs. tob_admin sees only its TOB.
func loadReportInput(sess *middleware.Session) ([]report.VehicleRow, []report.DimOrder, []report.DimOrder, error) {
	q := config.DB.Model(&models.Vehicle{}).
		Select(`COALESCE(vehicle_types.name, '') AS type_name, COALESCE(locations.name, '') AS location_name,
			COALESCE(vehicle_statuses.name, '') AS status, COALESCE(operational_categories.name, '') AS category`).
		Joins("LEFT JOIN vehicle_types ON vehicle_types.id = vehicles.vehicle_type_id").
		Joins("LEFT JOIN locations ON locations.id = vehicles.location_id").
		Joins("LEFT JOIN vehicle_statuses ON vehicle_statuses.id = vehicles.vehicle_status_id").
		Joins("LEFT JOIN operational_categories ON operational_categories.id = vehicles.operational_category_id")
	if sess.Role == models.RoleTobAdmin {
		q = q.Where("locations.name = ?", sess.AssignedTOB)
	}

	var rows []report.VehicleRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, nil, nil, err
	}

	var types []models.VehicleType
	if err := config.DB.Order("sort_order ASC").Find(&types).Error; err != nil {
		return nil, nil, nil, err
	}
	var locs []models.Location
	if err := config.DB.Order("sort_order ASC").Find(&locs).Error; err != nil {
		return nil, nil, nil, err
	}

	typeOrder := make([]report.DimOrder, 0, len(types))
	for _, t := range types {
		typeOrder = append(typeOrder, report.DimOrder{Name: t.Name, SortOrder: t.SortOrder})
	}
	locOrder := make([]report.DimOrder, 0, len(locs))
	for _, l := range locs {
		locOrder = append(locOrder, report.DimOrder{Name: l.Name, SortOrder: l.SortOrder})
	}
	return rows, typeOrder, locOrder, nil
}

// TypeMatrixReport serves the nested type -> location -> status/category
// count matrix.
func TypeMatrixReport(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	rows, typeOrder, locOrder, err := loadReportInput(sess)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load report data: " + err.Error()})
		return
	}

	groups := report.TypeMatrix(rows, typeOrder, locOrder)
	grand := 0
	for _, g := range groups {
		grand += g.Total
	}
	c.JSON(http.StatusOK, gin.H{
		"data":        groups,
		"grand_total": grand,
	})
}

// LocationPivotReport serves the location x type count pivot.
func LocationPivotReport(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	rows, typeOrder, locOrder, err := loadReportInput(sess)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load report data: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": report.LocationPivot(rows, typeOrder, locOrder)})
}

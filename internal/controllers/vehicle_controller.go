package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fleet_board/internal/config"
	"fleet_board/internal/middleware"
	"fleet_board/internal/models"
)

// scopedVehicleQuery narrows a vehicles query to what the session is
// allowed to see: tob_admin only its TOB, vehicle_user only its vehicle.
func scopedVehicleQuery(sess *middleware.Session) *gorm.DB {
	q := config.DB.Model(&models.Vehicle{})
	switch sess.Role {
	case models.RoleTobAdmin:
		q = q.Joins("JOIN locations ON locations.id = vehicles.location_id").
			Where("locations.name = ?", sess.AssignedTOB)
	case models.RoleVehicleUser:
		if sess.AssignedVehicleID == nil {
			q = q.Where("1 = 0")
		} else {
			q = q.Where("vehicles.id = ?", *sess.AssignedVehicleID)
		}
	}
	return q
}

func ListVehicles(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	var vehicles []models.Vehicle
	err := scopedVehicleQuery(sess).
		Preload("VehicleType").Preload("Location").
		Preload("VehicleStatus").Preload("OperationalCategory").
		Joins("JOIN vehicle_types ON vehicle_types.id = vehicles.vehicle_type_id").
		Order("vehicle_types.sort_order ASC, vehicles.uid ASC").
		Find(&vehicles).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing vehicles: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": vehicles})
}

func GetVehicle(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	id := c.Param("id")

	var vehicle models.Vehicle
	err := scopedVehicleQuery(sess).
		Preload("VehicleType").Preload("Location").
		Preload("VehicleStatus").Preload("OperationalCategory").
		Where("vehicles.id = ?", id).
		First(&vehicle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

func CreateVehicle(c *gin.Context) {
	var input struct {
		UID                   string `json:"uid" binding:"required"`
		VehicleTypeID         uint   `json:"vehicle_type_id" binding:"required"`
		LocationID            uint   `json:"location_id" binding:"required"`
		VehicleStatusID       uint   `json:"vehicle_status_id" binding:"required"`
		OperationalCategoryID uint   `json:"operational_category_id" binding:"required"`
		Mileage               int    `json:"mileage"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle input: " + err.Error()})
		return
	}

	vehicle := models.Vehicle{
		UID:                   input.UID,
		VehicleTypeID:         input.VehicleTypeID,
		LocationID:            input.LocationID,
		VehicleStatusID:       input.VehicleStatusID,
		OperationalCategoryID: input.OperationalCategoryID,
		Mileage:               input.Mileage,
		StatusChangedAt:       time.Now(),
	}
	if err := config.DB.Create(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"vehicle": vehicle})
}

// updateVehicleInput lists the fields an editor can change. Pointers so
// absent fields stay untouched.
type updateVehicleInput struct {
	UID                   *string `json:"uid"`
	VehicleTypeID         *uint   `json:"vehicle_type_id"`
	LocationID            *uint   `json:"location_id"`
	VehicleStatusID       *uint   `json:"vehicle_status_id"`
	OperationalCategoryID *uint   `json:"operational_category_id"`
	Mileage               *int    `json:"mileage"`
}

func UpdateVehicle(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	id := c.Param("id")

	var vehicle models.Vehicle
	if err := scopedVehicleQuery(sess).Where("vehicles.id = ?", id).First(&vehicle).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	var input updateVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update: " + err.Error()})
		return
	}

	if input.UID != nil {
		vehicle.UID = *input.UID
	}
	if input.VehicleTypeID != nil {
		vehicle.VehicleTypeID = *input.VehicleTypeID
	}
	if input.LocationID != nil {
		vehicle.LocationID = *input.LocationID
	}
	if input.VehicleStatusID != nil && *input.VehicleStatusID != vehicle.VehicleStatusID {
		vehicle.VehicleStatusID = *input.VehicleStatusID
		vehicle.StatusChangedAt = time.Now()
	}
	if input.OperationalCategoryID != nil {
		vehicle.OperationalCategoryID = *input.OperationalCategoryID
	}
	if input.Mileage != nil {
		vehicle.Mileage = *input.Mileage
	}

	if err := config.DB.Save(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

// DashboardRow is the typed read row behind the dashboard: vehicle joined
// with its reference names plus the two derived columns.
type DashboardRow struct {
	VehicleID        uint      `json:"vehicle_id"`
	UID              string    `json:"uid"`
	TypeName         string    `json:"type_name"`
	TypeSortOrder    int       `json:"type_sort_order"`
	LocationName     string    `json:"location_name"`
	Status           string    `json:"status"`
	Category         string    `json:"category"`
	Mileage          int       `json:"mileage"`
	StatusChangedAt  time.Time `json:"status_changed_at"`
	HasCriticalFault bool      `json:"has_critical_fault"`
	DaysInactive     int       `json:"days_inactive"`
}

// DashboardVehicles returns the joined dashboard rows, ordered by the
// curated type sort_order. The critical-fault flag is true while the
// vehicle has an unresolved Critical ticket; days-inactive counts from
// the last status change for Inactive vehicles.
func DashboardVehicles(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	var rows []DashboardRow
	q := scopedVehicleQuery(sess).
		Select(`vehicles.id AS vehicle_id, vehicles.uid, vehicles.mileage, vehicles.status_changed_at,
			vehicle_types.name AS type_name, vehicle_types.sort_order AS type_sort_order,
			loc.name AS location_name, vehicle_statuses.name AS status, operational_categories.name AS category,
			EXISTS (
				SELECT 1 FROM maintenance_logs m
				WHERE m.vehicle_id = vehicles.id AND m.deleted_at IS NULL
					AND m.priority = ? AND m.status <> ?
			) AS has_critical_fault`, models.PriorityCritical, models.TicketResolved).
		Joins("JOIN vehicle_types ON vehicle_types.id = vehicles.vehicle_type_id").
		Joins("JOIN locations loc ON loc.id = vehicles.location_id").
		Joins("JOIN vehicle_statuses ON vehicle_statuses.id = vehicles.vehicle_status_id").
		Joins("JOIN operational_categories ON operational_categories.id = vehicles.operational_category_id").
		Order("vehicle_types.sort_order ASC, vehicles.uid ASC")

	if err := q.Scan(&rows).Error; err != nil {
		logrus.WithError(err).Error("dashboard query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard: " + err.Error()})
		return
	}

	now := time.Now()
	for i := range rows {
		if rows[i].Status == models.StatusInactive && !rows[i].StatusChangedAt.IsZero() {
			rows[i].DaysInactive = int(now.Sub(rows[i].StatusChangedAt).Hours() / 24)
		}
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// --- Vehicle device self-service ---

// GetDeviceVehicle returns the vehicle bound to the authenticated
// vehicle_user account.
func GetDeviceVehicle(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if sess.AssignedVehicleID == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No vehicle assigned to this account."})
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.
		Preload("VehicleType").Preload("Location").
		Preload("VehicleStatus").Preload("OperationalCategory").
		First(&vehicle, *sess.AssignedVehicleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Assigned vehicle no longer exists."})
			return
		}
		logrus.WithError(err).Error("Error fetching vehicle for device account")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicle data."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

// deviceMileagePayload uses a pointer so a reported mileage of zero is
// distinguishable from a missing field.
type deviceMileagePayload struct {
	Mileage *int `json:"mileage" binding:"required"`
}

// UpdateDeviceMileage lets the device account report its own mileage.
// Mileage only moves forward.
func UpdateDeviceMileage(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if sess.AssignedVehicleID == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No vehicle assigned to this account."})
		return
	}

	var payload deviceMileagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body format: " + err.Error()})
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, *sess.AssignedVehicleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assigned vehicle no longer exists."})
		return
	}
	if *payload.Mileage < vehicle.Mileage {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mileage cannot decrease"})
		return
	}

	vehicle.Mileage = *payload.Mileage
	if err := config.DB.Save(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update mileage: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Mileage updated successfully.",
		"vehicle": vehicle,
	})
}

// parseIDParam parses a numeric :id path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format."})
		return 0, false
	}
	return uint(id), true
}

package controllers

import (
	"encoding/binary"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"

	"fleet_board/internal/config"
	"fleet_board/internal/models"
)

// referenceInput is the shared create/update payload for the four
// reference lists. SortOrder is the manually curated display rank.
type referenceInput struct {
	Name      string `json:"name" binding:"required"`
	SortOrder *int   `json:"sort_order"`
}

type referenceUpdateInput struct {
	Name      *string `json:"name"`
	SortOrder *int    `json:"sort_order"`
}

// referenceDeleteOutcome maps a delete result onto the HTTP response. The
// Postgres foreign-key violation becomes a user-facing conflict: a row
// still referenced by a vehicle must not disappear.
func referenceDeleteOutcome(err error, rowsAffected int64, label string) (int, gin.H) {
	if err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23503" {
			return http.StatusConflict, gin.H{"error": "This " + label + " is still assigned to one or more vehicles and cannot be deleted"}
		}
		return http.StatusInternalServerError, gin.H{"error": "Failed to delete " + label + ": " + err.Error()}
	}
	if rowsAffected == 0 {
		return http.StatusNotFound, gin.H{"error": label + " not found"}
	}
	return http.StatusOK, gin.H{"message": label + " deleted"}
}

func deleteReferenceRow(c *gin.Context, model interface{}, label string) {
	result := config.DB.Unscoped().Delete(model, c.Param("id"))
	status, body := referenceDeleteOutcome(result.Error, result.RowsAffected, label)
	c.JSON(status, body)
}

// --- Vehicle types ---

func ListVehicleTypes(c *gin.Context) {
	var rows []models.VehicleType
	if err := config.DB.Order("sort_order ASC, name ASC").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch vehicle types: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func CreateVehicleType(c *gin.Context) {
	var input referenceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row := models.VehicleType{Name: input.Name, SortOrder: models.DefaultSortOrder}
	if input.SortOrder != nil {
		row.SortOrder = *input.SortOrder
	}
	if err := config.DB.Create(&row).Error; err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "A vehicle type with this name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create vehicle type: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"vehicle_type": row})
}

func UpdateVehicleType(c *gin.Context) {
	var row models.VehicleType
	if err := config.DB.First(&row, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle type not found"})
		return
	}
	var input referenceUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Name != nil {
		row.Name = *input.Name
	}
	if input.SortOrder != nil {
		row.SortOrder = *input.SortOrder
	}
	if err := config.DB.Save(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update vehicle type: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle_type": row})
}

func DeleteVehicleType(c *gin.Context) {
	deleteReferenceRow(c, &models.VehicleType{}, "vehicle type")
}

// --- Locations (TOBs) ---

// locationResponse mirrors models.Location with Position as GeoJSON.
type locationResponse struct {
	models.Location
	Position string `json:"position,omitempty"`
}

func toLocationResponse(loc models.Location) locationResponse {
	jsonGeom, err := convertWKBToGeoJSON(loc.Position)
	if err != nil {
		logrus.WithError(err).Warnf("location %d carries unreadable position bytes", loc.ID)
	}
	return locationResponse{Location: loc, Position: jsonGeom}
}

// parseAndConvertPosition parses a GeoJSON point into WKB bytes.
func parseAndConvertPosition(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	var g geom.T
	if err := gjson.Unmarshal([]byte(raw), &g); err != nil {
		return nil, err
	}
	return wkb.Marshal(g, binary.LittleEndian)
}

// convertWKBToGeoJSON converts WKB bytes into a GeoJSON string.
func convertWKBToGeoJSON(wkbBytes []byte) (string, error) {
	if len(wkbBytes) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", err
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func ListLocations(c *gin.Context) {
	var rows []models.Location
	if err := config.DB.Order("sort_order ASC, name ASC").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch locations: " + err.Error()})
		return
	}
	out := make([]locationResponse, 0, len(rows))
	for _, loc := range rows {
		out = append(out, toLocationResponse(loc))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func CreateLocation(c *gin.Context) {
	var input struct {
		referenceInput
		Position string `json:"position"` // GeoJSON point
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pos, err := parseAndConvertPosition(input.Position)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid position GeoJSON: " + err.Error()})
		return
	}
	row := models.Location{Name: input.Name, SortOrder: models.DefaultSortOrder, Position: pos}
	if input.SortOrder != nil {
		row.SortOrder = *input.SortOrder
	}
	if err := config.DB.Create(&row).Error; err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "A location with this name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create location: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"location": toLocationResponse(row)})
}

func UpdateLocation(c *gin.Context) {
	var row models.Location
	if err := config.DB.First(&row, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}
	var input struct {
		referenceUpdateInput
		Position *string `json:"position"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Name != nil {
		row.Name = *input.Name
	}
	if input.SortOrder != nil {
		row.SortOrder = *input.SortOrder
	}
	if input.Position != nil {
		pos, err := parseAndConvertPosition(*input.Position)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid position GeoJSON: " + err.Error()})
			return
		}
		row.Position = pos
	}
	if err := config.DB.Save(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update location: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"location": toLocationResponse(row)})
}

func DeleteLocation(c *gin.Context) {
	deleteReferenceRow(c, &models.Location{}, "location")
}

// --- Vehicle statuses ---

func ListVehicleStatuses(c *gin.Context) {
	var rows []models.VehicleStatus
	if err := config.DB.Order("sort_order ASC, name ASC").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch vehicle statuses: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func CreateVehicleStatus(c *gin.Context) {
	var input referenceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row := models.VehicleStatus{Name: input.Name, SortOrder: models.DefaultSortOrder}
	if input.SortOrder != nil {
		row.SortOrder = *input.SortOrder
	}
	if err := config.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create vehicle status: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"vehicle_status": row})
}

func UpdateVehicleStatus(c *gin.Context) {
	var row models.VehicleStatus
	if err := config.DB.First(&row, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle status not found"})
		return
	}
	var input referenceUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Name != nil {
		row.Name = *input.Name
	}
	if input.SortOrder != nil {
		row.SortOrder = *input.SortOrder
	}
	if err := config.DB.Save(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update vehicle status: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle_status": row})
}

func DeleteVehicleStatus(c *gin.Context) {
	deleteReferenceRow(c, &models.VehicleStatus{}, "vehicle status")
}

// --- Operational categories ---

func ListOperationalCategories(c *gin.Context) {
	var rows []models.OperationalCategory
	if err := config.DB.Order("sort_order ASC, name ASC").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch operational categories: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func CreateOperationalCategory(c *gin.Context) {
	var input referenceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row := models.OperationalCategory{Name: input.Name, SortOrder: models.DefaultSortOrder}
	if input.SortOrder != nil {
		row.SortOrder = *input.SortOrder
	}
	if err := config.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create operational category: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"operational_category": row})
}

func UpdateOperationalCategory(c *gin.Context) {
	var row models.OperationalCategory
	if err := config.DB.First(&row, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Operational category not found"})
		return
	}
	var input referenceUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Name != nil {
		row.Name = *input.Name
	}
	if input.SortOrder != nil {
		row.SortOrder = *input.SortOrder
	}
	if err := config.DB.Save(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update operational category: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"operational_category": row})
}

func DeleteOperationalCategory(c *gin.Context) {
	deleteReferenceRow(c, &models.OperationalCategory{}, "operational category")
}

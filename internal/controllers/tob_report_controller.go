package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"

	"fleet_board/internal/config"
	"fleet_board/internal/middleware"
	"fleet_board/internal/models"
)

// ListTobReports returns every location remark. tob_admin sees only its
// own TOB's remark.
func ListTobReports(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	q := config.DB.Model(&models.TobReport{}).Order("location_name ASC")
	if sess.Role == models.RoleTobAdmin {
		q = q.Where("location_name = ?", sess.AssignedTOB)
	}

	var rows []models.TobReport
	if err := q.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch remarks: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// UpsertTobReport writes the remark for one location, inserting or
// overwriting in a single statement.
func UpsertTobReport(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	location := c.Param("location")

	if sess.Role == models.RoleTobAdmin && sess.AssignedTOB != location {
		c.JSON(http.StatusForbidden, gin.H{"error": "You may only edit the remark for your own TOB"})
		return
	}

	var body struct {
		Remark string `json:"remark"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	row := models.TobReport{LocationName: location, Remark: body.Remark}
	err := config.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "location_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"remark", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save remark: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tob_report": row})
}

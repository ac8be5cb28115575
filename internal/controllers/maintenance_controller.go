package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fleet_board/internal/config"
	"fleet_board/internal/middleware"
	"fleet_board/internal/models"
)

// WorkshopFeedRow is the typed workshop view row: a ticket joined with
// its vehicle's uid and location name.
type WorkshopFeedRow struct {
	TicketID          uint      `json:"ticket_id"`
	VehicleID         uint      `json:"vehicle_id"`
	VehicleUID        string    `json:"vehicle_uid"`
	LocationName      string    `json:"location_name"`
	Description       string    `json:"description"`
	Priority          string    `json:"priority"`
	ResponsiblePerson string    `json:"responsible_person"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}

// workshopBoard is the three fixed board columns.
type workshopBoard struct {
	Pending    []WorkshopFeedRow `json:"pending"`
	InProgress []WorkshopFeedRow `json:"in_progress"`
	Resolved   []WorkshopFeedRow `json:"resolved"`
}

// WorkshopFeed returns all tickets grouped into the three board columns,
// oldest first within each column.
func WorkshopFeed(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	q := config.DB.Model(&models.MaintenanceLog{}).
		Select(`maintenance_logs.id AS ticket_id, maintenance_logs.vehicle_id,
			vehicles.uid AS vehicle_uid, locations.name AS location_name,
			maintenance_logs.description, maintenance_logs.priority,
			maintenance_logs.responsible_person, maintenance_logs.status,
			maintenance_logs.created_at`).
		Joins("JOIN vehicles ON vehicles.id = maintenance_logs.vehicle_id").
		Joins("JOIN locations ON locations.id = vehicles.location_id").
		Order("maintenance_logs.created_at ASC")
	if sess.Role == models.RoleTobAdmin {
		q = q.Where("locations.name = ?", sess.AssignedTOB)
	}

	var rows []WorkshopFeedRow
	if err := q.Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load workshop feed: " + err.Error()})
		return
	}

	board := workshopBoard{
		Pending:    []WorkshopFeedRow{},
		InProgress: []WorkshopFeedRow{},
		Resolved:   []WorkshopFeedRow{},
	}
	for _, row := range rows {
		switch row.Status {
		case models.TicketPending:
			board.Pending = append(board.Pending, row)
		case models.TicketInProgress:
			board.InProgress = append(board.InProgress, row)
		case models.TicketResolved:
			board.Resolved = append(board.Resolved, row)
		}
	}
	c.JSON(http.StatusOK, gin.H{"data": board})
}

// CreateTicket opens a new maintenance ticket. Status always starts at
// Pending regardless of input.
func CreateTicket(c *gin.Context) {
	var input struct {
		VehicleID         uint   `json:"vehicle_id" binding:"required"`
		Description       string `json:"description" binding:"required"`
		Priority          string `json:"priority"`
		ResponsiblePerson string `json:"responsible_person"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket input: " + err.Error()})
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, input.VehicleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Vehicle does not exist"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	ticket := models.MaintenanceLog{
		VehicleID:         input.VehicleID,
		Description:       input.Description,
		Priority:          input.Priority,
		ResponsiblePerson: input.ResponsiblePerson,
		Status:            models.TicketPending,
	}
	if err := config.DB.Create(&ticket).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ticket: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ticket": ticket})
}

// AdvanceTicket moves a ticket one step forward on the board. With an
// explicit status in the body the move is validated against the forward
// graph; without one the single next state is taken. The refreshed ticket
// comes back so the client reconciles this one entity instead of
// reloading the whole board.
func AdvanceTicket(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	// Body is optional; ignore bind errors on an empty payload.
	_ = c.ShouldBindJSON(&body)

	var ticket models.MaintenanceLog
	if err := config.DB.First(&ticket, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	target := body.Status
	if target == "" {
		next, err := models.NextTicketStatus(ticket.Status)
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		target = next
	} else if !models.CanTransitionTicket(ticket.Status, target) {
		c.JSON(http.StatusConflict, gin.H{"error": "Invalid ticket transition: " + ticket.Status + " -> " + target})
		return
	}

	// Single-field update; descriptive fields never change here.
	if err := config.DB.Model(&ticket).Update("status", target).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update ticket: " + err.Error()})
		return
	}
	ticket.Status = target

	c.JSON(http.StatusOK, gin.H{"ticket": ticket})
}

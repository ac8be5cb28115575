// internal/models/maintenance_log.go
package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Maintenance ticket lifecycle. Linear and forward-only: no edge ever
// returns a ticket to an earlier state.
const (
	TicketPending    = "Pending"
	TicketInProgress = "In Progress"
	TicketResolved   = "Resolved"
)

// PriorityCritical marks a fault that flags its vehicle on the dashboard.
const PriorityCritical = "Critical"

// ticketTransitions is the allowed flow as a directed graph.
var ticketTransitions = map[string][]string{
	TicketPending:    {TicketInProgress},
	TicketInProgress: {TicketResolved},
	TicketResolved:   {},
}

// CanTransitionTicket reports whether from -> to is an allowed move.
func CanTransitionTicket(from, to string) bool {
	for _, s := range ticketTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// NextTicketStatus returns the single forward state from cur, or an error
// when cur is terminal or unknown.
func NextTicketStatus(cur string) (string, error) {
	next, ok := ticketTransitions[cur]
	if !ok {
		return "", fmt.Errorf("unknown ticket status %q", cur)
	}
	if len(next) == 0 {
		return "", fmt.Errorf("ticket status %q is terminal", cur)
	}
	return next[0], nil
}

// MaintenanceLog is one workshop ticket. Descriptive fields are immutable
// through the board; only Status moves, and only forward.
type MaintenanceLog struct {
	gorm.Model
	VehicleID         uint   `json:"vehicle_id"`
	Description       string `json:"description" binding:"required"`
	Priority          string `json:"priority"`
	ResponsiblePerson string `json:"responsible_person"`
	Status            string `json:"status" gorm:"default:Pending"`
}

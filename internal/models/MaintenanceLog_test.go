package models

import "testing"

func TestTicketForwardTransitions(t *testing.T) {
	if !CanTransitionTicket(TicketPending, TicketInProgress) {
		t.Fatalf("expected Pending -> In Progress allowed")
	}
	if !CanTransitionTicket(TicketInProgress, TicketResolved) {
		t.Fatalf("expected In Progress -> Resolved allowed")
	}
	if CanTransitionTicket(TicketPending, TicketResolved) {
		t.Fatalf("expected Pending -> Resolved shortcut not allowed")
	}
	if CanTransitionTicket(TicketInProgress, TicketPending) {
		t.Fatalf("expected no backward edge to Pending")
	}
	if CanTransitionTicket(TicketResolved, TicketInProgress) {
		t.Fatalf("expected Resolved to be terminal")
	}
}

func TestNextTicketStatus(t *testing.T) {
	next, err := NextTicketStatus(TicketPending)
	if err != nil || next != TicketInProgress {
		t.Fatalf("NextTicketStatus(Pending) = %q, %v", next, err)
	}
	next, err = NextTicketStatus(TicketInProgress)
	if err != nil || next != TicketResolved {
		t.Fatalf("NextTicketStatus(In Progress) = %q, %v", next, err)
	}
	if _, err := NextTicketStatus(TicketResolved); err == nil {
		t.Fatalf("expected Resolved to have no next status")
	}
	if _, err := NextTicketStatus("Archived"); err == nil {
		t.Fatalf("expected unknown status to error")
	}
}

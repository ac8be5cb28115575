package controllers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
)

func TestReferenceDeleteRejectedWhileReferenced(t *testing.T) {
	status, body := referenceDeleteOutcome(&pq.Error{Code: "23503"}, 0, "vehicle type")
	if status != http.StatusConflict {
		t.Fatalf("expected 409 for a referenced row, got %d", status)
	}
	msg, _ := body["error"].(string)
	if msg == "" {
		t.Fatalf("expected a user-facing error message, got %v", body)
	}
}

func TestReferenceDeleteRemovesExactlyOneRow(t *testing.T) {
	status, body := referenceDeleteOutcome(nil, 1, "location")
	if status != http.StatusOK {
		t.Fatalf("expected 200 for an unreferenced row, got %d", status)
	}
	if _, ok := body["message"]; !ok {
		t.Fatalf("expected a confirmation message, got %v", body)
	}
}

func TestReferenceDeleteMissingRow(t *testing.T) {
	status, _ := referenceDeleteOutcome(nil, 0, "location")
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 when no row was removed, got %d", status)
	}
}

func TestReferenceDeleteOtherErrorsSurfaced(t *testing.T) {
	status, body := referenceDeleteOutcome(errors.New("connection reset"), 0, "vehicle status")
	if status != http.StatusInternalServerError {
		t.Fatalf("expected 500 for an unclassified error, got %d", status)
	}
	msg, _ := body["error"].(string)
	if msg == "" {
		t.Fatalf("expected the backend error surfaced, got %v", body)
	}
}

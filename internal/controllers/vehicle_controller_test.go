package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func bindMileage(t *testing.T, body string) (deviceMileagePayload, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPut, "/device/vehicle/mileage", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var p deviceMileagePayload
	err := c.ShouldBindJSON(&p)
	return p, err
}

func TestDeviceMileagePayloadAcceptsZero(t *testing.T) {
	p, err := bindMileage(t, `{"mileage":0}`)
	if err != nil {
		t.Fatalf("mileage 0 must bind, got error: %v", err)
	}
	if p.Mileage == nil || *p.Mileage != 0 {
		t.Fatalf("expected mileage pointer to 0, got %v", p.Mileage)
	}
}

func TestDeviceMileagePayloadRequiresField(t *testing.T) {
	if _, err := bindMileage(t, `{}`); err == nil {
		t.Fatalf("expected a missing mileage field to be rejected")
	}
}

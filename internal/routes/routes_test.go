package routes

import (
	"testing"

	"github.com/gin-gonic/gin"
)

// Every reference list must expose the full curation surface, update
// included: sort_order re-ranking works through PUT.
func TestReferenceRoutesRegistered(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := SetupRouter()

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, list := range []string{"vehicle-types", "locations", "vehicle-statuses", "operational-categories"} {
		for _, key := range []string{
			"GET /reference/" + list,
			"POST /reference/" + list,
			"PUT /reference/" + list + "/:id",
			"DELETE /reference/" + list + "/:id",
		} {
			if !registered[key] {
				t.Errorf("route %s is not registered", key)
			}
		}
	}
}

package maintenance

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Mwangea/RentalApartmentsBackend/models"
)

type stubNotifier struct{}

func (stubNotifier) Notify(_ context.Context, _, _, _, _ string) error { return nil }

func maintenanceRouter(user models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user", user)
		c.Next()
	})
	NewAPI(stubNotifier{}).RegisterRoutes(&r.RouterGroup)
	return r
}

// Listing is gated on the maintenance view capability, which no unknown role
// carries.
func TestGetRequestsForbiddenForUnknownRole(t *testing.T) {
	router := maintenanceRouter(models.User{ID: "v1", Role: "Visitor", Approved: true})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/maintenance-requests", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateRequestForbiddenForLandlords(t *testing.T) {
	router := maintenanceRouter(models.User{ID: "l1", Role: models.RoleLandlord, Approved: true})

	body, _ := json.Marshal(map[string]interface{}{
		"property_id": 1,
		"title":       "Leaking tap",
		"description": "The kitchen tap is leaking.",
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/maintenance-requests", bytes.NewBuffer(body))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}

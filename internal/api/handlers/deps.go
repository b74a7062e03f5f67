package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"safemap/internal/events"
	"safemap/internal/geocode"
	"safemap/internal/model"
	"safemap/internal/service/approval"
	"safemap/internal/service/auth"
	"safemap/internal/service/coordinator"
	"safemap/internal/service/zoneindex"
	"safemap/internal/store/pgstore"
)

// Deps carries everything the handlers need. The router wires it once at
// startup.
type Deps struct {
	Hazard   *coordinator.Coordinator
	Safety   *coordinator.Coordinator
	Approval *approval.Service
	Auth     *auth.Service
	Users    *pgstore.UserStore
	Alerts   *pgstore.AlertStore
	Logs     *pgstore.ActivityLogStore
	Bus      *events.Bus
	Index    *zoneindex.Index
	Geocoder *geocode.Client
}

// coordinatorFor maps a kind to its coordinator.
func (d Deps) coordinatorFor(kind model.Kind) *coordinator.Coordinator {
	if kind == model.KindHazard {
		return d.Hazard
	}
	return d.Safety
}

// respondError translates domain errors to HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidMarkerCount),
		errors.Is(err, model.ErrMalformedCoordinates):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrZoneNotFound),
		errors.Is(err, model.ErrMarkerNotFound),
		errors.Is(err, model.ErrAlertNotFound),
		errors.Is(err, model.ErrActivityLogNotFound),
		errors.Is(err, model.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, model.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

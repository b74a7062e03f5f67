package api

import (
	routes "safemap/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupRouter initializes all application routes
func SetupRouter(r *gin.Engine, deps routes.Deps) {
	// Setup main handlers
	routes.SetupMainHandlers(r.Group(""))

	// Auth endpoints live at the root, like the rest of the surface
	routes.SetupAuthHandlers(r.Group(""), deps)
	routes.SetupUserHandlers(r.Group(""), deps)

	// Zone and marker endpoints, one set per domain
	routes.SetupZoneHandlers(r.Group(""), deps)
	routes.SetupMarkerHandlers(r.Group(""), deps)

	// Plain per-entity CRUD
	routes.SetupAlertHandlers(r.Group(""), deps)
	routes.SetupActivityLogHandlers(r.Group(""), deps)

	// Live event stream and geocoding proxy
	routes.SetupEventHandlers(r.Group(""), deps)
	routes.SetupGeocodeHandlers(r.Group(""), deps)
}

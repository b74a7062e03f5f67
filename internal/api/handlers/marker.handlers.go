package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"safemap/internal/model"
)

// defaultNearRadiusMeters bounds proximity queries that omit a radius.
const defaultNearRadiusMeters = 1000.0

// SetupMarkerHandlers registers the direct marker endpoints for both
// domains. These never imply zone linkage; zone membership changes only go
// through the zone endpoints.
func SetupMarkerHandlers(router *gin.RouterGroup, deps Deps) {
	registerMarkerRoutes(router.Group("/dangermarkers"), model.KindHazard, deps)
	registerMarkerRoutes(router.Group("/safetymarkers"), model.KindSafety, deps)
}

func registerMarkerRoutes(group *gin.RouterGroup, kind model.Kind, deps Deps) {
	group.GET("", ListMarkers(deps, kind))
	group.GET("/near", MarkersNear(deps, kind))
	group.POST("", CreateMarker(deps, kind))
	group.GET("/:id", GetMarker(deps, kind))
	group.PUT("/:id", UpdateMarker(deps, kind))
	group.DELETE("/:id", RequireAuth(deps), DeleteMarker(deps, kind))
}

// ListMarkers returns all markers of the domain
func ListMarkers(deps Deps, kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		markers, err := deps.coordinatorFor(kind).ListMarkers(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, markers)
	}
}

// CreateMarker creates a zoneless marker
func CreateMarker(deps Deps, kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload model.MarkerPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		marker, err := deps.coordinatorFor(kind).CreateMarker(c.Request.Context(), payload)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, marker)
	}
}

// GetMarker returns one marker
func GetMarker(deps Deps, kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		marker, err := deps.coordinatorFor(kind).GetMarker(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, marker)
	}
}

// UpdateMarker rewrites a marker's coordinates and metadata
func UpdateMarker(deps Deps, kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload model.MarkerPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		marker, err := deps.coordinatorFor(kind).UpdateMarker(c.Request.Context(), c.Param("id"), payload)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, marker)
	}
}

// DeleteMarker removes a marker; when it drops an owning zone below ten
// members, the zone auto-dissolves with its remaining markers.
func DeleteMarker(deps Deps, kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := deps.coordinatorFor(kind).DeleteMarker(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}

		recordActivity(c, deps, "marker deleted: "+id)
		c.JSON(http.StatusOK, gin.H{"message": "Marker deleted successfully"})
	}
}

// MarkersNear returns markers within a radius of a point
func MarkersNear(deps Deps, kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
		lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
		if err1 != nil || err2 != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
			return
		}

		radius := defaultNearRadiusMeters
		if raw := c.Query("radius"); raw != "" {
			r, err := strconv.ParseFloat(raw, 64)
			if err != nil || r <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid radius"})
				return
			}
			radius = r
		}

		markers, err := deps.coordinatorFor(kind).MarkersNear(c.Request.Context(), lat, lng, radius)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, markers)
	}
}

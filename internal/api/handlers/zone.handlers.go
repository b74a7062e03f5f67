package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"safemap/internal/model"
)

type createZoneRequest struct {
	Markers []model.MarkerPayload `json:"markers" binding:"required"`
}

// SetupZoneHandlers registers the zone endpoints for both domains
func SetupZoneHandlers(router *gin.RouterGroup, deps Deps) {
	registerZoneRoutes(router.Group("/dangerzones"), model.KindHazard, deps)
	registerZoneRoutes(router.Group("/safezones"), model.KindSafety, deps)
}

func registerZoneRoutes(group *gin.RouterGroup, kind model.Kind, deps Deps) {
	group.GET("", ListZones(deps, kind))
	group.POST("/add", CreateZone(deps, kind))
	group.GET("/near", ZonesNear(deps, kind))
	group.GET("/:id", GetZone(deps, kind))
	group.PUT("/:id/markers", ReplaceZoneMarkers(deps, kind))
	group.DELETE("/:id", RequireAdmin(deps), DeleteZone(deps, kind))
	group.POST("/:id/approve", RequireAdmin(deps), ApproveZone(deps, kind))
	group.POST("/:id/disapprove", RequireAdmin(deps), DisapproveZone(deps, kind))
}

// ListZones returns all zones of the domain, markers unresolved
func ListZones(deps Deps, kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		zones, err := deps.coordinatorFor(kind).ListZones(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, zones)
	}
}

// CreateZone accepts exactly ten marker payloads and creates the zone
func CreateZone(deps Deps, kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createZoneRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		zone, err := deps.coordinatorFor(kind).CreateZone(c.Request.Context(), req.Markers)
		if err != nil {
			respondError(c, err)
			return
		}

		recordActivity(c, deps, "zone created: "+zone.ID)
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Zone added successfully",
			"data":    zone,
		})
	}
}

// GetZone returns one zone with its markers resolved
func GetZone(deps Deps, kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		zone, err := deps.coordinatorFor(kind).GetZone(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, zone)
	}
}

// ReplaceZoneMarkers swaps the zone's full marker set
func ReplaceZoneMarkers(deps Deps, kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createZoneRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		zone, err := deps.coordinatorFor(kind).ReplaceZoneMarkers(c.Request.Context(), c.Param("id"), req.Markers)
		if err != nil {
			respondError(c, err)
			return
		}

		recordActivity(c, deps, "zone markers replaced: "+zone.ID)
		c.JSON(http.StatusOK, zone)
	}
}

// DeleteZone removes the zone and cascades to its markers
func DeleteZone(deps Deps, kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := deps.coordinatorFor(kind).DeleteZone(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}

		recordActivity(c, deps, "zone deleted: "+id)
		c.JSON(http.StatusOK, gin.H{"message": "Zone deleted successfully"})
	}
}

// ApproveZone marks the zone approved
func ApproveZone(deps Deps, kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		zone, err := deps.Approval.Approve(c.Request.Context(), kind, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, zone)
	}
}

// DisapproveZone marks the zone disapproved
func DisapproveZone(deps Deps, kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		zone, err := deps.Approval.Disapprove(c.Request.Context(), kind, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, zone)
	}
}

// ZonesNear serves map viewport queries from the spatial index. Accepts
// either a point (lat, lng) or a viewport (minLat, minLng, maxLat, maxLng).
func ZonesNear(deps Deps, kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("minLat") != "" {
			minLat, err1 := strconv.ParseFloat(c.Query("minLat"), 64)
			minLng, err2 := strconv.ParseFloat(c.Query("minLng"), 64)
			maxLat, err3 := strconv.ParseFloat(c.Query("maxLat"), 64)
			maxLng, err4 := strconv.ParseFloat(c.Query("maxLng"), 64)
			if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid viewport"})
				return
			}
			c.JSON(http.StatusOK, filterKind(deps.Index.ZonesInBounds(minLat, minLng, maxLat, maxLng), kind))
			return
		}

		lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
		lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
		if err1 != nil || err2 != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
			return
		}
		c.JSON(http.StatusOK, filterKind(deps.Index.ZonesAtPoint(lat, lng), kind))
	}
}

func filterKind(zones []model.Zone, kind model.Kind) []model.Zone {
	result := make([]model.Zone, 0, len(zones))
	for _, z := range zones {
		if z.Kind == kind {
			result = append(result, z)
		}
	}
	return result
}

// recordActivity writes an audit entry; failures are logged by gorm and
// never fail the request.
func recordActivity(c *gin.Context, deps Deps, action string) {
	if deps.Logs == nil {
		return
	}
	claims := claimsFrom(c)
	_ = deps.Logs.Create(c.Request.Context(), &model.ActivityLog{
		UserID: claims.UserID,
		Action: action,
	})
}

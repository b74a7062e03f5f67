package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"safemap/internal/model"
)

type alertRequest struct {
	Type     string     `json:"type" binding:"required"`
	Message  string     `json:"message" binding:"required"`
	ZoneID   string     `json:"zoneId"`
	ZoneKind model.Kind `json:"zoneKind"`
}

// SetupAlertHandlers registers the alert endpoints
func SetupAlertHandlers(router *gin.RouterGroup, deps Deps) {
	group := router.Group("/alerts")
	group.GET("", ListAlerts(deps))
	group.POST("", RequireAuth(deps), CreateAlert(deps))
	group.GET("/:id", GetAlert(deps))
	group.GET("/:id/pendingzone", GetAlertPendingZone(deps))
	group.PUT("/:id", RequireAdmin(deps), UpdateAlert(deps))
	group.DELETE("/:id", RequireAdmin(deps), DeleteAlert(deps))
}

// ListAlerts returns all alerts
func ListAlerts(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		alerts, err := deps.Alerts.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, alerts)
	}
}

// CreateAlert stores a new advisory, optionally referencing a pending zone
func CreateAlert(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req alertRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		alert := &model.Alert{
			Type:     req.Type,
			Message:  req.Message,
			ZoneID:   req.ZoneID,
			ZoneKind: req.ZoneKind,
		}
		if err := deps.Alerts.Create(c.Request.Context(), alert); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, alert)
	}
}

// GetAlert returns one alert
func GetAlert(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		alert, err := deps.Alerts.GetAlert(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, alert)
	}
}

// GetAlertPendingZone resolves the alert's zone reference. A stale reference
// to a dissolved or already-reviewed zone answers 404.
func GetAlertPendingZone(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		zone, err := deps.Approval.PendingZoneForAlert(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, zone)
	}
}

// UpdateAlert rewrites an alert
func UpdateAlert(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req alertRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		alert := &model.Alert{
			ID:       c.Param("id"),
			Type:     req.Type,
			Message:  req.Message,
			ZoneID:   req.ZoneID,
			ZoneKind: req.ZoneKind,
		}
		if err := deps.Alerts.Update(c.Request.Context(), alert); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, alert)
	}
}

// DeleteAlert removes an alert
func DeleteAlert(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := deps.Alerts.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}

		recordActivity(c, deps, "alert deleted: "+id)
		c.JSON(http.StatusOK, gin.H{"message": "Alert deleted successfully"})
	}
}

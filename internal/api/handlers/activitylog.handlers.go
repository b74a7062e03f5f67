package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"safemap/internal/model"
)

type activityLogRequest struct {
	Action string `json:"action" binding:"required"`
}

// SetupActivityLogHandlers registers the audit trail endpoints
func SetupActivityLogHandlers(router *gin.RouterGroup, deps Deps) {
	group := router.Group("/activityLogs", RequireAuth(deps))
	group.GET("", ListActivityLogs(deps))
	group.POST("", CreateActivityLog(deps))
	group.GET("/:id", GetActivityLog(deps))
	group.DELETE("/:id", RequireAdmin(deps), DeleteActivityLog(deps))
}

// ListActivityLogs returns the audit trail, newest first
func ListActivityLogs(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := deps.Logs.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

// CreateActivityLog stores an entry attributed to the caller
func CreateActivityLog(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req activityLogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		entry := &model.ActivityLog{
			UserID: claimsFrom(c).UserID,
			Action: req.Action,
		}
		if err := deps.Logs.Create(c.Request.Context(), entry); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, entry)
	}
}

// GetActivityLog returns one entry
func GetActivityLog(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		entry, err := deps.Logs.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, entry)
	}
}

// DeleteActivityLog removes an entry
func DeleteActivityLog(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.Logs.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Activity log deleted successfully"})
	}
}

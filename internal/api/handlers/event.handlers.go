package routes

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"safemap/internal/events"
)

type publishRequest struct {
	Event   events.EventKind `json:"event" binding:"required"`
	Payload any              `json:"payload"`
}

// SetupEventHandlers registers the live event stream and the manual publish
// endpoint used by map clients that created an entity out of band.
func SetupEventHandlers(router *gin.RouterGroup, deps Deps) {
	router.GET("/events", StreamEvents(deps))
	router.POST("/events/publish", RequireAuth(deps), PublishEvent(deps))
}

// StreamEvents holds the connection open and relays bus events as
// server-sent events. Clients connected at publication time receive the
// event; there is no replay for late joiners.
func StreamEvents(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ch := deps.Bus.Subscribe()
		defer deps.Bus.Unsubscribe(id)

		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Stream(func(w io.Writer) bool {
			select {
			case evt, ok := <-ch:
				if !ok {
					return false
				}
				c.SSEvent(string(evt.Kind), evt.Payload)
				return true
			case <-c.Request.Context().Done():
				return false
			}
		})
	}
}

// PublishEvent re-broadcasts a client-originated event to every connected
// observer
func PublishEvent(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req publishRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if req.Event != events.MarkerAdded && req.Event != events.ZoneAdded {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown event kind"})
			return
		}

		deps.Bus.Publish(events.Event{Kind: req.Event, Payload: req.Payload})
		c.JSON(http.StatusOK, gin.H{
			"delivered": deps.Bus.SubscriberCount(),
		})
	}
}

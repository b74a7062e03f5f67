package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"safemap/internal/geocode"
)

type routeRequest struct {
	Profile   string       `json:"profile"`
	Waypoints [][2]float64 `json:"coordinates" binding:"required,min=2"`
}

// SetupGeocodeHandlers registers the geocoding proxy endpoints
func SetupGeocodeHandlers(router *gin.RouterGroup, deps Deps) {
	group := router.Group("/geocode")
	group.GET("/search", GeocodeSearch(deps))
	group.GET("/reverse", GeocodeReverse(deps))
	group.GET("/categories", GeocodeCategories(deps))
	group.POST("/route", GeocodeRoute(deps))
}

// GeocodeSearch forward-geocodes a free-text query
func GeocodeSearch(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("text")
		if query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter text is required"})
			return
		}

		result, err := deps.Geocoder.Forward(c.Request.Context(), query)
		if err != nil {
			respondGeocodeError(c, err)
			return
		}
		c.Data(http.StatusOK, "application/json", result)
	}
}

// GeocodeReverse resolves coordinates to nearby places
func GeocodeReverse(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
		lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
		if err1 != nil || err2 != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
			return
		}

		result, err := deps.Geocoder.Reverse(c.Request.Context(), lat, lng)
		if err != nil {
			respondGeocodeError(c, err)
			return
		}
		c.Data(http.StatusOK, "application/json", result)
	}
}

// GeocodeCategories lists the provider's place categories
func GeocodeCategories(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := deps.Geocoder.Categories(c.Request.Context())
		if err != nil {
			respondGeocodeError(c, err)
			return
		}
		c.Data(http.StatusOK, "application/json", result)
	}
}

// GeocodeRoute calculates a route through the given waypoints
func GeocodeRoute(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req routeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Profile == "" {
			req.Profile = "foot-walking"
		}

		result, err := deps.Geocoder.Route(c.Request.Context(), req.Profile, req.Waypoints)
		if err != nil {
			respondGeocodeError(c, err)
			return
		}
		c.Data(http.StatusOK, "application/json", result)
	}
}

// respondGeocodeError passes the provider's own status through when the
// provider answered, and 502 when it was unreachable.
func respondGeocodeError(c *gin.Context, err error) {
	var provErr *geocode.ProviderError
	if errors.As(err, &provErr) {
		c.JSON(provErr.Status, gin.H{"error": provErr.Body})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": "geocoding provider unreachable"})
}

package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type updateUserRequest struct {
	Username string `json:"username"`
	IsAdmin  *bool  `json:"isAdmin"`
}

// SetupUserHandlers registers the account management endpoints. All of them
// require an authenticated caller; mutations require admin.
func SetupUserHandlers(router *gin.RouterGroup, deps Deps) {
	group := router.Group("/users", RequireAuth(deps))
	group.GET("", ListUsers(deps))
	group.GET("/search", SearchUsers(deps))
	group.GET("/username/:username", GetUserByUsername(deps))
	group.GET("/:id", GetUser(deps))
	group.PUT("/:id", RequireAdmin(deps), UpdateUser(deps))
	group.DELETE("/:id", RequireAdmin(deps), DeleteUser(deps))
}

// ListUsers returns all accounts
func ListUsers(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := deps.Users.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// SearchUsers matches usernames against a substring query
func SearchUsers(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
			return
		}

		users, err := deps.Users.Search(c.Request.Context(), query)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// GetUser returns one account by id
func GetUser(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := deps.Users.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// GetUserByUsername returns one account by exact username
func GetUserByUsername(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := deps.Users.GetByUsername(c.Request.Context(), c.Param("username"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// UpdateUser rewrites username and admin flag
func UpdateUser(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		user, err := deps.Users.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}

		if req.Username != "" {
			user.Username = req.Username
		}
		if req.IsAdmin != nil {
			user.IsAdmin = *req.IsAdmin
		}

		if err := deps.Users.Update(c.Request.Context(), user); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// DeleteUser removes an account
func DeleteUser(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := deps.Users.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}

		recordActivity(c, deps, "user deleted: "+id)
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}

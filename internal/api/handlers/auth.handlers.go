package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"safemap/internal/model"
	"safemap/internal/service/auth"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	IsAdmin  bool   `json:"isAdmin"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SetupAuthHandlers registers the register/login/role endpoints
func SetupAuthHandlers(router *gin.RouterGroup, deps Deps) {
	router.POST("/register", Register(deps))
	router.POST("/login", Login(deps))
	router.GET("/user/role", RequireAuth(deps), UserRole(deps))
}

// Register creates a new account with a bcrypt-hashed password
func Register(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required"})
			return
		}

		if _, err := deps.Users.GetByUsername(c.Request.Context(), req.Username); err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists. Try another username."})
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		user := &model.User{
			Username:     req.Username,
			PasswordHash: hash,
			IsAdmin:      req.IsAdmin,
		}
		if err := deps.Users.Create(c.Request.Context(), user); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

// Login verifies credentials and issues a session token
func Login(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
			return
		}

		user, err := deps.Users.GetByUsername(c.Request.Context(), req.Username)
		if err != nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
			return
		}

		token, err := deps.Auth.IssueToken(c.Request.Context(), auth.Claims{
			UserID: user.ID,
			Role:   user.Role(),
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// UserRole returns the authenticated user's role
func UserRole(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := claimsFrom(c)
		c.JSON(http.StatusOK, gin.H{"role": claims.Role})
	}
}

const claimsContextKey = "authClaims"

// RequireAuth verifies the bearer token and stores the claims on the
// request context
func RequireAuth(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authenticate(c, deps); !ok {
			return
		}
		c.Next()
	}
}

// RequireAdmin gates reviewer and destructive endpoints. The role check
// runs before the chain advances so a non-admin request never reaches the
// protected handler.
func RequireAdmin(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c, deps)
		if !ok {
			return
		}
		if claims.Role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Admin role required"})
			return
		}
		c.Next()
	}
}

// authenticate verifies the bearer token and stores the claims on the
// request context. Aborts with 401 and returns false on failure.
func authenticate(c *gin.Context, deps Deps) (auth.Claims, bool) {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		token = ""
	}

	claims, err := deps.Auth.VerifyToken(c.Request.Context(), token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": model.ErrInvalidToken.Error()})
		return auth.Claims{}, false
	}

	c.Set(claimsContextKey, claims)
	return claims, true
}

func claimsFrom(c *gin.Context) auth.Claims {
	if v, ok := c.Get(claimsContextKey); ok {
		if claims, ok := v.(auth.Claims); ok {
			return claims
		}
	}
	return auth.Claims{}
}

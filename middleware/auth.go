package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"blogaulas/apperr"
	"blogaulas/models"
	"blogaulas/utils"
)

const callerKey = "caller"

func bearerToken(c *gin.Context) string {
	if websocket.IsWebSocketUpgrade(c.Request) {
		if token := c.Query("token"); token != "" {
			return token
		}
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

// AuthRequired rejects requests without a valid bearer token and stores the
// caller identity on the context.
func AuthRequired(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abort(c, apperr.New(apperr.Unauthenticated, "no token provided"))
			return
		}

		caller, err := tokens.ValidateJWT(token)
		if err != nil {
			abort(c, apperr.Wrap(apperr.Unauthenticated, "invalid token", err))
			return
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// OptionalAuth attaches the caller when a valid token is present. Requests
// without one, or with an expired or invalid one, continue as anonymous.
func OptionalAuth(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if caller, err := tokens.ValidateJWT(token); err == nil {
				c.Set(callerKey, caller)
			}
		}
		c.Next()
	}
}

// RequireRole must run after AuthRequired.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := Caller(c)
		if !ok {
			abort(c, apperr.New(apperr.Unauthenticated, "authentication required"))
			return
		}
		if caller.Role != role {
			abort(c, apperr.E(apperr.Forbidden, "%s role required", role))
			return
		}
		c.Next()
	}
}

// Caller returns the identity set by AuthRequired or OptionalAuth.
func Caller(c *gin.Context) (*models.Identity, bool) {
	v, exists := c.Get(callerKey)
	if !exists {
		return nil, false
	}
	caller, ok := v.(*models.Identity)
	return caller, ok && caller != nil
}

func abort(c *gin.Context, err *apperr.Error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(err.Kind.Status(), gin.H{"error": err.Message})
}

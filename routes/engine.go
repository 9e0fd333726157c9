package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"blogaulas/middleware"
)

// NewEngine returns a gin engine with the shared middleware chain installed.
func NewEngine(log *zap.Logger, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(allowedOrigins))
	r.Use(middleware.ErrorHandler(log))
	return r
}

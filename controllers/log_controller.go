package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"blogaulas/apperr"
)

// LogLevel is the body of the log-level endpoints.
type LogLevel struct {
	Level string `json:"level" example:"info"`
}

type LogController struct {
	level zap.AtomicLevel
}

func NewLogController(level zap.AtomicLevel) *LogController {
	return &LogController{level: level}
}

// GetLevel godoc
// @Summary Current log level
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} LogLevel
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/log-level [get]
func (lc *LogController) GetLevel(c *gin.Context) {
	c.JSON(http.StatusOK, LogLevel{Level: lc.level.String()})
}

// SetLevel godoc
// @Summary Change the log level without a restart
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body LogLevel true "New level: debug, info, warn or error"
// @Success 200 {object} LogLevel
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/log-level [put]
func (lc *LogController) SetLevel(c *gin.Context) {
	var req LogLevel
	if !bindJSON(c, &req) {
		return
	}
	lvl, err := zapcore.ParseLevel(req.Level)
	if err != nil {
		fail(c, apperr.New(apperr.Validation, "unknown log level"))
		return
	}
	lc.level.SetLevel(lvl)
	c.JSON(http.StatusOK, LogLevel{Level: lc.level.String()})
}

package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"blogaulas/apperr"
)

// fail hands err to middleware.ErrorHandler, which writes the response.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, apperr.Wrap(apperr.Validation, "invalid request body", err))
		return false
	}
	return true
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		fail(c, apperr.E(apperr.Validation, "invalid %s", param))
		return 0, false
	}
	return uint(id), true
}

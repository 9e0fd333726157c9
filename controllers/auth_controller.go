package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blogaulas/apperr"
	"blogaulas/middleware"
	"blogaulas/models"
	"blogaulas/services"
)

type AuthController struct {
	authService *services.AuthService
}

func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login godoc
// @Summary Exchange username and password for a token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, user, err := ac.authService.Login(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user.Identity(),
	})
}

// Me godoc
// @Summary Identity carried by the caller's token
// @Description The store is not read, so a role changed after login shows up only with a new token.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Identity
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func (ac *AuthController) Me(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		fail(c, apperr.New(apperr.Unauthenticated, "authentication required"))
		return
	}
	c.JSON(http.StatusOK, caller)
}

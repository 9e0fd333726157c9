package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blogaulas/middleware"
	"blogaulas/models"
	"blogaulas/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type UserController struct {
	userService *services.UserService
}

func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// GetUsers godoc
// @Summary List all users (teachers only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /users [get]
func (uc *UserController) GetUsers(c *gin.Context) {
	uc.listByRole(c, "")
}

// GetTeachers godoc
// @Summary List teachers (teachers only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /users/teachers [get]
func (uc *UserController) GetTeachers(c *gin.Context) {
	uc.listByRole(c, models.RoleTeacher)
}

// GetStudents godoc
// @Summary List students (teachers only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /users/students [get]
func (uc *UserController) GetStudents(c *gin.Context) {
	uc.listByRole(c, models.RoleStudent)
}

func (uc *UserController) listByRole(c *gin.Context, role models.Role) {
	caller, _ := middleware.Caller(c)
	users, err := uc.userService.GetUsers(c.Request.Context(), caller, role)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser godoc
// @Summary Get a user (teachers only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/{id} [get]
func (uc *UserController) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	caller, _ := middleware.Caller(c)
	user, err := uc.userService.GetUser(c.Request.Context(), caller, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser godoc
// @Summary Create a student or teacher account (teachers only)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.CreateUserRequest true "Account"
// @Success 201 {object} models.User
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /users [post]
func (uc *UserController) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	caller, _ := middleware.Caller(c)
	user, err := uc.userService.CreateUser(c.Request.Context(), caller, &req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// UpdateUser godoc
// @Summary Change a user's username or password (teachers only)
// @Description Empty fields are left unchanged. The role cannot be changed.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body models.UpdateUserRequest true "Changes"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /users/{id} [put]
func (uc *UserController) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	caller, _ := middleware.Caller(c)
	user, err := uc.userService.UpdateUser(c.Request.Context(), caller, id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete a student or teacher account (teachers only)
// @Description Admin accounts report not found.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/{id} [delete]
func (uc *UserController) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	caller, _ := middleware.Caller(c)
	if err := uc.userService.DeleteUser(c.Request.Context(), caller, id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// ExportUsers godoc
// @Summary Download teachers and students as an xlsx workbook (teachers only)
// @Tags users
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /users/export [get]
func (uc *UserController) ExportUsers(c *gin.Context) {
	caller, _ := middleware.Caller(c)
	data, err := uc.userService.ExportUsers(c.Request.Context(), caller)
	if err != nil {
		fail(c, err)
		return
	}
	name := fmt.Sprintf("users_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, xlsxContentType, data)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blogaulas/middleware"
	"blogaulas/models"
	"blogaulas/services"
)

type PostController struct {
	postService *services.PostService
}

func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

// GetPosts godoc
// @Summary List posts, newest first
// @Tags posts
// @Produce json
// @Param q query string false "Case-insensitive search over title and content"
// @Success 200 {array} models.Post
// @Failure 500 {object} map[string]string
// @Router /posts [get]
func (pc *PostController) GetPosts(c *gin.Context) {
	posts, err := pc.postService.ListPosts(c.Request.Context(), c.Query("q"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GetPost godoc
// @Summary Get a post with its comments
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /posts/{id} [get]
func (pc *PostController) GetPost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	post, err := pc.postService.GetPost(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// CreatePost godoc
// @Summary Create a post (teachers only)
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.CreatePostRequest true "Post"
// @Success 201 {object} models.Post
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /posts [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	var req models.CreatePostRequest
	if !bindJSON(c, &req) {
		return
	}
	caller, _ := middleware.Caller(c)
	post, err := pc.postService.CreatePost(c.Request.Context(), caller, &req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// UpdatePost godoc
// @Summary Replace a post's title and content
// @Description Open to any signed-in user unless strict post ownership is on, in which case only teachers and the author may edit.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param body body models.UpdatePostRequest true "Post"
// @Success 200 {object} models.Post
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /posts/{id} [put]
func (pc *PostController) UpdatePost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.UpdatePostRequest
	if !bindJSON(c, &req) {
		return
	}
	caller, _ := middleware.Caller(c)
	post, err := pc.postService.UpdatePost(c.Request.Context(), caller, id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary Delete a post and its comments
// @Description Same ownership rule as UpdatePost.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /posts/{id} [delete]
func (pc *PostController) DeletePost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	caller, _ := middleware.Caller(c)
	if err := pc.postService.DeletePost(c.Request.Context(), caller, id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blogaulas/middleware"
	"blogaulas/models"
	"blogaulas/services"
)

type CommentController struct {
	commentService *services.CommentService
}

func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

// CreateComment godoc
// @Summary Comment on a post
// @Description Public. A valid token is optional; when present and no author is sent, the caller's username is used. Expired or invalid tokens are treated as anonymous.
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param body body models.CreateCommentRequest true "Comment"
// @Success 201 {object} models.Comment
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /posts/{id}/comments [post]
func (cc *CommentController) CreateComment(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}
	caller, _ := middleware.Caller(c)
	comment, err := cc.commentService.CreateComment(c.Request.Context(), caller, postID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// UpdateComment godoc
// @Summary Edit a comment
// @Description Only the comment's author, matched by username, may edit it.
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param commentId path int true "Comment ID"
// @Param body body models.UpdateCommentRequest true "Comment"
// @Success 200 {object} models.Comment
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /posts/{id}/comments/{commentId} [put]
// @Router /comments/{commentId} [put]
func (cc *CommentController) UpdateComment(c *gin.Context) {
	postID, id, ok := commentIDs(c)
	if !ok {
		return
	}
	var req models.UpdateCommentRequest
	if !bindJSON(c, &req) {
		return
	}
	caller, _ := middleware.Caller(c)
	comment, err := cc.commentService.UpdateComment(c.Request.Context(), caller, postID, id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Allowed for the comment's author and for teachers.
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param commentId path int true "Comment ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /posts/{id}/comments/{commentId} [delete]
// @Router /comments/{commentId} [delete]
func (cc *CommentController) DeleteComment(c *gin.Context) {
	postID, id, ok := commentIDs(c)
	if !ok {
		return
	}
	caller, _ := middleware.Caller(c)
	if err := cc.commentService.DeleteComment(c.Request.Context(), caller, postID, id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// commentIDs serves both /comments/:commentId and /posts/:id/comments/:commentId.
// postID is zero on the flat route.
func commentIDs(c *gin.Context) (postID, id uint, ok bool) {
	if c.Param("id") != "" {
		if postID, ok = parseID(c, "id"); !ok {
			return 0, 0, false
		}
	}
	id, ok = parseID(c, "commentId")
	return postID, id, ok
}

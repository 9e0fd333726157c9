package routes

import (
	"github.com/gin-gonic/gin"

	"blogaulas/controllers"
	"blogaulas/handlers"
	"blogaulas/metrics"
	"blogaulas/middleware"
	"blogaulas/models"
	"blogaulas/utils"
)

func SetupRoutes(
	r *gin.Engine,
	tokens *utils.TokenManager,
	authController *controllers.AuthController,
	postController *controllers.PostController,
	commentController *controllers.CommentController,
	userController *controllers.UserController,
	healthController *controllers.HealthController,
	logController *controllers.LogController,
	w *handlers.WebSocketHandler,
) {
	r.GET("/health", healthController.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	authRequired := middleware.AuthRequired(tokens)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authController.Login)
			auth.GET("/me", authRequired, authController.Me)
		}

		posts := api.Group("/posts")
		{
			posts.GET("", postController.GetPosts)
			posts.GET("/:id", postController.GetPost)
			posts.POST("", authRequired, postController.CreatePost)
			posts.PUT("/:id", authRequired, postController.UpdatePost)
			posts.DELETE("/:id", authRequired, postController.DeletePost)

			posts.POST("/:id/comments", middleware.OptionalAuth(tokens), commentController.CreateComment)
			posts.PUT("/:id/comments/:commentId", authRequired, commentController.UpdateComment)
			posts.DELETE("/:id/comments/:commentId", authRequired, commentController.DeleteComment)
		}

		comments := api.Group("/comments")
		comments.Use(authRequired)
		{
			comments.PUT("/:commentId", commentController.UpdateComment)
			comments.DELETE("/:commentId", commentController.DeleteComment)
		}

		users := api.Group("/users")
		users.Use(authRequired, middleware.RequireRole(models.RoleTeacher))
		{
			users.GET("", userController.GetUsers)
			users.GET("/teachers", userController.GetTeachers)
			users.GET("/students", userController.GetStudents)
			users.GET("/export", userController.ExportUsers)
			users.GET("/:id", userController.GetUser)
			users.POST("", userController.CreateUser)
			users.PUT("/:id", userController.UpdateUser)
			users.DELETE("/:id", userController.DeleteUser)
		}

		admin := api.Group("/admin")
		admin.Use(authRequired, middleware.RequireRole(models.RoleTeacher))
		{
			admin.GET("/log-level", logController.GetLevel)
			admin.PUT("/log-level", logController.SetLevel)
		}

		api.GET("/ws", authRequired, w.HandleWebSocket)
	}
}

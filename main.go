package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"blogaulas/config"
	"blogaulas/controllers"
	"blogaulas/database"
	"blogaulas/handlers"
	"blogaulas/logging"
	"blogaulas/observability"
	"blogaulas/policy"
	"blogaulas/routes"
	"blogaulas/services"
	"blogaulas/utils"

	_ "blogaulas/docs"
)

// @title Blog Aulas API
// @version 1.0
// @description Classroom blog: posts, comments and users with teacher/student roles

// @host localhost:4000
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

var release = "dev"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.Env)
	defer logger.Close()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *logging.Logger) error {
	lg := logger.Logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	flushSentry, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, release)
	if err != nil {
		lg.Warn("sentry disabled", zap.Error(err))
	}
	defer flushSentry()

	db, err := database.Connect(cfg, lg)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, lg); err != nil {
		return err
	}

	userStore := database.NewUserStore(db)
	postStore := database.NewPostStore(db)
	commentStore := database.NewCommentStore(db)

	if cfg.SeedDefaultUsers {
		if err := database.Seed(ctx, userStore, database.DefaultAccounts, lg); err != nil {
			return err
		}
	}

	var relay services.Relay
	if cfg.RedisAddr != "" {
		redisRelay, err := services.NewRedisRelay(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return err
		}
		defer redisRelay.Close()
		relay = redisRelay
		lg.Info("feed relay enabled", zap.String("redis", cfg.RedisAddr))
	}
	hubService := services.NewHubService(relay, lg)
	hubService.Start(ctx)

	pol := policy.New(cfg.StrictPostOwnership)
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	authService, err := services.NewAuthService(userStore, tokens)
	if err != nil {
		return err
	}
	postService := services.NewPostService(postStore, pol, hubService)
	commentService := services.NewCommentService(postStore, commentStore, pol, hubService)
	userService := services.NewUserService(userStore, pol)

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := routes.NewEngine(lg, cfg.CORSAllowedOrigins)

	routes.SetupRoutes(r, tokens,
		controllers.NewAuthController(authService),
		controllers.NewPostController(postService),
		controllers.NewCommentController(commentService),
		controllers.NewUserController(userService),
		controllers.NewHealthController(func(ctx context.Context) error { return database.Ping(ctx, db) }),
		controllers.NewLogController(logger.Level()),
		handlers.NewWebSocketHandler(hubService, cfg.CORSAllowedOrigins, lg),
	)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	errCh := make(chan error, 1)
	go func() {
		lg.Info("server starting", zap.String("port", cfg.Port), zap.Bool("strict_post_ownership", cfg.StrictPostOwnership))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	lg.Info("shutting down")
	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shCtx)
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/learnhub/learnhub-api/config"
	"github.com/learnhub/learnhub-api/internal/database/postgres"
	"github.com/learnhub/learnhub-api/internal/handlers"
	"github.com/learnhub/learnhub-api/internal/middleware"
	"github.com/learnhub/learnhub-api/internal/repository"
	"github.com/learnhub/learnhub-api/internal/services"
	"github.com/learnhub/learnhub-api/pkg/db"
	"github.com/learnhub/learnhub-api/pkg/jwt"
	"github.com/learnhub/learnhub-api/pkg/logger"
	"github.com/learnhub/learnhub-api/pkg/metrics"
	"github.com/learnhub/learnhub-api/pkg/profiling"
	"github.com/learnhub/learnhub-api/pkg/storage"
	"github.com/learnhub/learnhub-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// registerCourseRoutes registers the public and admin course API
func registerCourseRoutes(
	router *gin.Engine,
	generalRateLimiter, loginRateLimiter, mutationRateLimiter *middleware.RateLimiter,
	authHandler *handlers.AuthHandler,
	courseHandler *handlers.CourseHandler,
	tokenManager *jwt.TokenManager,
) {
	v1 := router.Group("/api/v1")

	// Public routes
	v1.POST("/admin/login", loginRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024), authHandler.Login)
	public := v1.Group("/public")
	public.GET("/courses", generalRateLimiter.Middleware(), courseHandler.GetPublicCourses)
	public.GET("/courses/:slug", generalRateLimiter.Middleware(), courseHandler.GetCourseBySlug)

	// Admin routes (protected)
	courses := v1.Group("/courses")
	courses.Use(middleware.AdminAuthMiddleware(tokenManager))
	courses.GET("", generalRateLimiter.Middleware(), courseHandler.GetCourses)
	courses.POST("", mutationRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024*1024), courseHandler.CreateCourse)
	courses.PUT("/:id", mutationRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024*1024), courseHandler.UpdateCourse)
	courses.DELETE("/:id", mutationRateLimiter.Middleware(), courseHandler.DeleteCourse)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting LearnHub API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceVersion,
		cfg.Server.AppEnv,
		cfg.Observability.ExporterEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Initialize continuous profiling (opt-in)
	stopProfiler, err := profiling.InitProfiler(profiling.Config{
		Enabled:               cfg.Profiling.Enabled,
		Endpoint:              cfg.Profiling.Endpoint,
		AppName:               cfg.Profiling.AppName,
		SampleTypes:           cfg.Profiling.SampleTypes,
		UploadIntervalSeconds: cfg.Profiling.UploadIntervalSeconds,
	}, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer stopProfiler()

	// Initialize metrics
	metrics.Init()

	// Initialize PostgreSQL connection pool
	pool, err := db.NewPool(context.Background(), db.PoolConfig{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
	}
	defer pool.Close()

	// NOTE: Database migrations are run separately via the migrate command

	dbClient := postgres.NewClient(pool)

	// Initialize image storage backend
	var imageStorage storage.ImageStorage
	if cfg.UseS3() {
		imageStorage, err = storage.NewS3Storage(
			cfg.S3.AccessKeyID,
			cfg.S3.SecretAccessKey,
			cfg.S3.BucketName,
			cfg.S3.Endpoint,
			cfg.S3.Region,
		)
		if err != nil {
			logger.Fatal("Failed to initialize S3 storage client", zap.Error(err))
		}
		logger.Info("Using S3 image storage", zap.String("bucket", cfg.S3.BucketName))
	} else {
		imageStorage, err = storage.NewLocalStorage(cfg.Upload.Dir, cfg.Upload.BaseURL)
		if err != nil {
			logger.Fatal("Failed to initialize local image storage", zap.Error(err))
		}
	}

	// Initialize repositories
	courseRepo := repository.NewCourseRepository(dbClient, cfg.Catalog.PublicCoursesLimit, cfg.Cache.CourseTTLSeconds, cfg.Cache.DisableCourseCache)
	adminRepo := repository.NewAdminRepository(dbClient)

	if cfg.Cache.DisableCourseCache {
		logger.Warn("Course cache is DISABLED - reading from database on every public request")
	}

	// Initialize services
	authService := services.NewAuthService(adminRepo, cfg)
	courseService := services.NewCourseService(courseRepo, imageStorage)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	courseHandler := handlers.NewCourseHandler(courseService)
	healthHandler := handlers.NewHealthHandler(dbClient)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS configuration - only allow specific origins
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiters per endpoint class
	generalRateLimiter := middleware.NewRateLimiter(100, 200) // 100 req/sec, burst of 200
	loginRateLimiter := middleware.NewRateLimiter(1, 5)       // 1 req/sec, burst of 5 (login abuse prevention)
	mutationRateLimiter := middleware.NewRateLimiter(10, 20)  // 10 req/sec, burst of 20

	// Utility endpoints (not versioned - operational endpoints)
	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// Course API routes
	registerCourseRoutes(router, generalRateLimiter, loginRateLimiter, mutationRateLimiter,
		authHandler, courseHandler, authService.GetTokenManager())

	// Uploaded images are served from the local upload directory when the
	// local storage backend is active; with S3 the image URLs are absolute.
	if !cfg.UseS3() {
		router.Static(cfg.Upload.BaseURL, cfg.Upload.Dir)
	}

	// SPA frontend shell: static assets plus an index fallback so client-side
	// routes like /course/:slug resolve on hard refresh.
	router.Static("/js", "./web/js")
	router.StaticFile("/", "./web/index.html")
	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method == http.MethodGet && !strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.File("./web/index.html")
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

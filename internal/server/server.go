// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"hiresynapse/internal/bootstrap"
	"hiresynapse/internal/config"
	"hiresynapse/internal/database"
	"hiresynapse/internal/middleware"
	"hiresynapse/internal/models"
	"hiresynapse/internal/service"
	"hiresynapse/internal/tasks"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// IngestQueue hands catalog ingestion to the background worker.
type IngestQueue interface {
	EnqueueIngest(ctx context.Context, postings []service.IngestPosting, requestedBy uint) (string, error)
}

// Server holds all dependencies and provides handlers
type Server struct {
	config             *config.Config
	db                 *gorm.DB
	redis              *redis.Client
	app                *fiber.App
	promMiddleware     *fiberprometheus.FiberPrometheus
	ingestQueue        IngestQueue
	userService        *service.UserService
	profileService     *service.ProfileService
	applicationService *service.ApplicationService
	coverLetterService *service.CoverLetterService
	jobService         *service.JobService
	interviewService   *service.InterviewService
}

// NewServer connects the runtime dependencies and creates a server over them.
func NewServer(ctx context.Context, cfg *config.Config, opts bootstrap.Options) (*Server, error) {
	db, redisClient, err := bootstrap.InitRuntime(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}

	server, err := NewServerWithDeps(cfg, db, redisClient)
	if err != nil {
		return nil, err
	}

	// Without Redis there is no queue; ingestion then runs inside the request.
	if redisClient != nil {
		queue, err := tasks.NewQueue(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		server.ingestQueue = queue
	}
	return server, nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and optionally
// performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	svc := bootstrap.Services(cfg, db)
	return &Server{
		config:             cfg,
		db:                 db,
		redis:              redisClient,
		promMiddleware:     middleware.InitMetrics("hiresynapse-api"),
		userService:        svc.Users,
		profileService:     svc.Profiles,
		applicationService: svc.Applications,
		coverLetterService: svc.CoverLetters,
		jobService:         svc.Jobs,
		interviewService:   svc.Interview,
	}, nil
}

// SetIngestQueue replaces the queue used by the admin ingest endpoint.
func (s *Server) SetIngestQueue(q IngestQueue) {
	s.ingestQueue = q
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS before the limiter so rejected requests still carry CORS headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", s.AuthRequired(), s.Logout)

	// Public catalog
	jobs := api.Group("/jobs")
	jobs.Get("/", middleware.RateLimit(s.redis, 30, time.Minute, "job_search"), s.SearchJobs)
	jobs.Get("/:id", s.GetJob)
	api.Get("/interview-questions", s.GetInterviewQuestions)

	protected := api.Group("", s.AuthRequired())

	users := protected.Group("/users")
	users.Get("/me", s.GetMe)
	users.Delete("/me", s.DeleteMe)

	profile := protected.Group("/profile")
	profile.Get("/", s.GetProfile)
	profile.Put("/", s.UpdateProfile)
	profile.Get("/:kind", s.ListProfileChildren)
	profile.Post("/:kind", s.AddProfileChild)
	profile.Get("/:kind/:id", s.GetProfileChild)
	profile.Put("/:kind/:id", s.EditProfileChild)
	profile.Delete("/:kind/:id", s.DeleteProfileChild)

	applications := protected.Group("/applications")
	applications.Get("/", s.ListApplications)
	applications.Post("/", s.CreateApplication)
	applications.Get("/:id", s.GetApplication)
	applications.Put("/:id", s.UpdateApplication)
	applications.Delete("/:id", s.DeleteApplication)

	letters := protected.Group("/cover-letters")
	letters.Get("/", s.ListCoverLetters)
	letters.Post("/", s.CreateCoverLetter)
	letters.Get("/:id", s.GetCoverLetter)
	letters.Put("/:id", s.UpdateCoverLetter)
	letters.Delete("/:id", s.DeleteCoverLetter)

	admin := protected.Group("/admin", s.AdminRequired())
	admin.Post("/jobs/ingest", s.IngestJobs)
	admin.Delete("/jobs/:id", s.DeleteJob)
	admin.Post("/users/:id/promote-admin", s.PromoteToAdmin)
}

// NewApp builds the Fiber app with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "HireSynapse API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
		},
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports database and Redis health. Redis is optional: its absence degrades
// caching but does not make the API unready.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	s.app = s.NewApp()
	middleware.Logger.Info("server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if q, ok := s.ingestQueue.(interface{ Close() error }); ok {
		if err := q.Close(); err != nil {
			middleware.Logger.Error("error closing task queue", slog.String("error", err.Error()))
		}
	}

	if err := database.Close(s.db); err != nil {
		middleware.Logger.Error("error closing database", slog.String("error", err.Error()))
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", err.Error()))
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}

func bearerToken(c *fiber.Ctx) string {
	scheme, token, ok := strings.Cut(c.Get(fiber.HeaderAuthorization), " ")
	if !ok || scheme != "Bearer" {
		return ""
	}
	return strings.TrimSpace(token)
}

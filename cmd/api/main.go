package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"volunteer-hub/internal/config"
	"volunteer-hub/internal/domain"
	"volunteer-hub/internal/handler"
	"volunteer-hub/internal/middleware"
	"volunteer-hub/internal/repository"
	"volunteer-hub/internal/service"
	"volunteer-hub/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (attachment upload will not work)", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, cfg)
	handlers := handler.NewHandlers(services, cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)
	authGroup.Post("/forgot-password", h.Auth.ForgotPassword)
	authGroup.Post("/reset-password", h.Auth.ResetPassword)
	authGroup.Get("/verify-email", h.Auth.VerifyEmail)

	// Browsing requests and platform stats needs no account.
	v1.Get("/requests", h.Request.List)
	v1.Get("/requests/:requestId", h.Request.Get)
	v1.Get("/requests/:requestId/attachments", h.Attachment.ListByRequest)
	v1.Get("/stats", h.Dashboard.GetStats)

	protected := v1.Group("", middleware.AuthRequired(authService))

	protected.Post("/auth/logout", h.Auth.Logout)

	users := protected.Group("/users")
	users.Get("/me", h.User.GetProfile)
	users.Put("/me", h.User.UpdateProfile)
	users.Get("/me/requests", h.Request.ListMine)
	users.Get("/me/responses", middleware.RequireRole(domain.RoleVolunteer), h.Response.ListMine)

	requests := protected.Group("/requests")
	requests.Post("/", middleware.RequireRole(domain.RoleUser), h.Request.Create)
	requests.Put("/:requestId", h.Request.Update)
	requests.Patch("/:requestId/status", h.Request.UpdateStatus)
	requests.Delete("/:requestId", h.Request.Delete)
	requests.Get("/:requestId/responses", h.Response.ListByRequest)
	requests.Post("/:requestId/responses", middleware.RequireRole(domain.RoleVolunteer), h.Response.Accept)
	requests.Delete("/:requestId/responses", middleware.RequireRole(domain.RoleVolunteer), h.Response.Withdraw)
	requests.Post("/:requestId/attachments", h.Attachment.Upload)

	attachments := protected.Group("/attachments")
	attachments.Delete("/:attachmentId", h.Attachment.Delete)
}

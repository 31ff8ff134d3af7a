package api

import (
	"eduagent/docs"
	"eduagent/internal/api/handlers"
	"eduagent/pkg/auth"
	"eduagent/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	chatHandler *handlers.ChatHandler,
	docHandler *handlers.DocumentHandler,
	authHandler *handlers.AuthHandler,
	adminHandler *handlers.AdminHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Swagger; importing docs registers the generated document via init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Staff auth (public)
	authGroup := app.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Student-facing API
	v1 := app.Group("/api/v1")
	v1.Post("/chat", chatHandler.Chat)
	v1.Get("/documents/:filename", docHandler.Download)

	// Staff review surface
	admin := v1.Group("/admin", middleware.AuthMiddleware(jwtManager, appLogger))
	admin.Get("/escalations", adminHandler.ListEscalations)
	admin.Patch("/escalations/:id", adminHandler.UpdateEscalation)
	admin.Get("/faqs", adminHandler.ListFAQs)
	admin.Get("/stats", adminHandler.Stats)
	admin.Post("/documents", docHandler.Upload)

	return app
}

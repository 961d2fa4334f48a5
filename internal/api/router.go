package api

import (
	"donorlink/docs"
	"donorlink/internal/api/handlers"
	"donorlink/internal/models"
	"donorlink/pkg/auth"
	"donorlink/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	chatHandler *handlers.ChatHandler,
	donationHandler *handlers.DonationHandler,
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
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Importing the docs package registers the swagger spec via init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	requireAuth := middleware.AuthMiddleware(jwtManager, appLogger)
	optionalAuth := middleware.OptionalAuthMiddleware(jwtManager, appLogger)
	adminOnly := middleware.RequireRole(string(models.RoleAdmin), string(models.RoleSuperadmin))

	// Auth routes (public)
	userAuth := app.Group("/user/auth")
	userAuth.Post("/register", authHandler.Register)
	userAuth.Post("/login", authHandler.Login)
	userAuth.Post("/refresh", authHandler.RefreshToken)

	v1 := app.Group("/api/v1")

	// Chat routes
	v1.Post("/chat", optionalAuth, chatHandler.Chat)
	v1.Get("/chat/history", requireAuth, chatHandler.History)
	v1.Get("/chat/suggestions", optionalAuth, chatHandler.Suggestions)
	v1.Get("/chat/analytics", requireAuth, adminOnly, chatHandler.Analytics)

	// Donation routes
	v1.Post("/donations", requireAuth, adminOnly, donationHandler.Create)
	v1.Get("/donations/mine", requireAuth, donationHandler.ListMine)

	return app
}

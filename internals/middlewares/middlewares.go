package middlewares

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"profilku_backend/internals/middlewares/logger"
)

// SetupMiddlewares wires the base middleware chain. Order matters:
// recovery first so panics in anything below become 500s.
func SetupMiddlewares(app *fiber.App) {
	log.Println("[INFO] Setting up middlewares...")
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}

// middlewares/cors.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"profilku_backend/internals/configs"
)

// CorsMiddleware allows the web app plus every username subdomain.
// Fiber's cors config takes a static origin list, so subdomains go
// through AllowOriginsFunc.
func CorsMiddleware() fiber.Handler {
	domain := strings.TrimPrefix(configs.GetEnv("COOKIE_DOMAIN", ".profilku.app"), ".")
	return cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			if strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:") {
				return true
			}
			return strings.HasSuffix(origin, "."+domain) || strings.HasSuffix(origin, "//"+domain)
		},
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	})
}

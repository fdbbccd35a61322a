// file: internals/features/profiles/followers/route/follower_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"profilku_backend/internals/features/profiles/followers/controller"
	"profilku_backend/internals/middlewares"
)

func FollowerPublicRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewFollowerController(db)

	api.Get("/profiles/:username/followers/count", ctl.PublicCount)
	api.Post("/profiles/:username/followers",
		middlewares.VisitorWriteRateLimiter(), ctl.Follow)
}

func FollowerUserRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewFollowerController(db)
	api.Get("/followers", ctl.ListMyFollowers)
}

// file: internals/features/profiles/profile/route/profile_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"profilku_backend/internals/cache"
	"profilku_backend/internals/features/profiles/profile/controller"
)

// ProfilePublicRoutes: visitor-facing reads, no auth.
func ProfilePublicRoutes(api fiber.Router, db *gorm.DB, pc *cache.ProfileCache) {
	ctl := controller.NewProfileController(db, pc)
	api.Get("/profiles/:username", ctl.GetPublicProfile)
}

// ProfileUserRoutes: owner endpoints, mounted behind auth.
func ProfileUserRoutes(api fiber.Router, db *gorm.DB, pc *cache.ProfileCache) {
	ctl := controller.NewProfileController(db, pc)

	profile := api.Group("/profile")
	profile.Get("/", ctl.GetMyProfile)
	profile.Post("/", ctl.CreateProfile)
	profile.Patch("/", ctl.UpdateMyProfile)
	profile.Post("/avatar", ctl.UploadAvatar)
	profile.Post("/background", ctl.UploadBackground)
}

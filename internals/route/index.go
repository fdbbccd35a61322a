// file: internals/route/index.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"profilku_backend/internals/cache"
	followerroute "profilku_backend/internals/features/profiles/followers/route"
	profileroute "profilku_backend/internals/features/profiles/profile/route"
	recommendationroute "profilku_backend/internals/features/profiles/recommendations/route"
	sectionroute "profilku_backend/internals/features/profiles/sections/route"
	"profilku_backend/internals/middlewares/auth"
)

// SetupRoutes mounts the whole API surface:
//
//	/api/public/... visitor reads and writes, no auth
//	/api/u/...      owner endpoints behind JWT
func SetupRoutes(app *fiber.App, db *gorm.DB, pc *cache.ProfileCache) {
	var inv cache.Invalidator = cache.NoopInvalidator{}
	if pc != nil {
		inv = pc
	}

	public := app.Group("/api/public")
	profileroute.ProfilePublicRoutes(public, db, pc)
	recommendationroute.RecommendationPublicRoutes(public, db)
	followerroute.FollowerPublicRoutes(public, db)

	user := app.Group("/api/u", auth.AuthJWT(auth.AuthJWTOpts{AllowCookieFallback: true}))
	profileroute.ProfileUserRoutes(user, db, pc)
	sectionroute.SectionUserRoutes(user, db, inv)
	recommendationroute.RecommendationUserRoutes(user, db)
	followerroute.FollowerUserRoutes(user, db)
}

// file: internals/features/profiles/recommendations/route/recommendation_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"profilku_backend/internals/features/profiles/recommendations/controller"
	"profilku_backend/internals/middlewares"
)

// RecommendationPublicRoutes: visitor submit + approved list. The write
// endpoint sits behind the stricter visitor rate limit.
func RecommendationPublicRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewRecommendationController(db)

	api.Get("/profiles/:username/recommendations", ctl.ListPublicRecommendations)
	api.Post("/profiles/:username/recommendations",
		middlewares.VisitorWriteRateLimiter(), ctl.CreateRecommendation)
}

// RecommendationUserRoutes: owner moderation, mounted behind auth.
func RecommendationUserRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewRecommendationController(db)

	recs := api.Group("/recommendations")
	recs.Get("/", ctl.ListMyRecommendations)
	recs.Patch("/:id", ctl.ModerateRecommendation)
	recs.Delete("/:id", ctl.DeleteRecommendation)
}

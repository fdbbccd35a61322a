// file: internals/features/profiles/sections/route/section_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"profilku_backend/internals/cache"
	"profilku_backend/internals/features/profiles/sections/controller"
	"profilku_backend/internals/features/profiles/sections/repository"
	"profilku_backend/internals/features/profiles/sections/service"
)

// SectionUserRoutes mounts the owner-side section endpoints. The caller
// already wrapped the group with auth middleware.
func SectionUserRoutes(api fiber.Router, db *gorm.DB, inv cache.Invalidator) {
	repo := repository.NewSectionRepository(db)
	orch := service.NewUpdateOrchestrator(db, repo, inv)
	ctl := controller.NewSectionController(db, repo, orch)

	sections := api.Group("/sections")
	sections.Get("/templates", ctl.ListTemplates)
	sections.Get("/check-duplicate", ctl.CheckDuplicate)
	sections.Get("/", ctl.ListMySections)
	sections.Post("/", ctl.CreateSection)
	sections.Put("/reorder", ctl.ReorderSections)
	sections.Get("/:id", ctl.GetSection)
	sections.Put("/:id", ctl.UpdateSection)
	sections.Delete("/:id", ctl.DeleteSection)
	sections.Put("/:id/fields/reorder", ctl.ReorderFields)
	sections.Delete("/:id/fields/:fieldID", ctl.DeleteField)

	// every editor modal saves through this one endpoint
	api.Post("/profile/updates", ctl.ApplyProfileUpdate)
}

// file: internals/features/profiles/sections/controller/section_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	profilemodel "profilku_backend/internals/features/profiles/profile/model"
	"profilku_backend/internals/features/profiles/sections/dto"
	"profilku_backend/internals/features/profiles/sections/repository"
	"profilku_backend/internals/features/profiles/sections/service"
	helper "profilku_backend/internals/helpers"
	"profilku_backend/internals/helpers/apperror"
)

type SectionController struct {
	DB           *gorm.DB
	Repo         *repository.SectionRepository
	Orchestrator *service.UpdateOrchestrator
	Guard        *service.DuplicateSectionGuard
}

func NewSectionController(db *gorm.DB, repo *repository.SectionRepository, orch *service.UpdateOrchestrator) *SectionController {
	return &SectionController{
		DB:           db,
		Repo:         repo,
		Orchestrator: orch,
		Guard:        service.NewDuplicateSectionGuard(repo),
	}
}

// myProfile resolves the actor's profile row from the token.
func (ctl *SectionController) myProfile(c *fiber.Ctx) (*profilemodel.ProfileModel, error) {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}
	var profile profilemodel.ProfileModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("profile_user_id = ?", userID).
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "you have no profile yet")
		}
		return nil, apperror.Store("myProfile", err)
	}
	return &profile, nil
}

// ownedSection loads the section and rejects when it does not belong to
// the actor's profile. The ownership check runs before any write.
func (ctl *SectionController) ownedSection(c *fiber.Ctx, profile *profilemodel.ProfileModel, param string) (*repository.SectionWithFields, error) {
	sectionID, err := uuid.Parse(c.Params(param))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid section id")
	}
	sw, err := ctl.Repo.GetSection(c.Context(), sectionID)
	if err != nil {
		return nil, err
	}
	if sw.Section.ProfileSectionProfileID != profile.ProfileID {
		return nil, apperror.Authorization("section belongs to another profile")
	}
	return sw, nil
}

func (ctl *SectionController) writeErr(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrSaveInFlight) {
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	}
	if fe, ok := err.(*fiber.Error); ok {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	status := apperror.StatusOf(err)
	if status >= 500 {
		log.Printf("[ERROR] sections: %v", err)
	}
	return helper.JsonError(c, status, err.Error())
}

// afterRowWrite rebuilds the denormalized cache and fires invalidation;
// failures here are logged, not returned, the rows already committed.
func (ctl *SectionController) afterRowWrite(c *fiber.Ctx, profile *profilemodel.ProfileModel) {
	if err := ctl.Orchestrator.RebuildSectionsCache(c.Context(), profile.ProfileID); err != nil {
		log.Printf("[ERROR] sections cache rebuild for %s: %v", profile.ProfileID, err)
		return
	}
	username := ""
	if profile.ProfileUsername != nil {
		username = *profile.ProfileUsername
	}
	ctl.Orchestrator.Inv.InvalidateProfile(c.Context(), profile.ProfileID, username)
}

/* =========================
   Reads
   ========================= */

// GET /api/u/sections
func (ctl *SectionController) ListMySections(c *fiber.Ctx) error {
	profile, err := ctl.myProfile(c)
	if err != nil {
		return ctl.writeErr(c, err)
	}
	rows, err := ctl.Repo.ListSectionsWithFields(c.Context(), profile.ProfileID)
	if err != nil {
		return ctl.writeErr(c, err)
	}
	return helper.JsonOK(c, "sections fetched", dto.ToSectionDTOs(rows))
}

// GET /api/u/sections/:id
func (ctl *SectionController) GetSection(c *fiber.Ctx) error {
	profile, err := ctl.myProfile(c)
	if err != nil {
		return ctl.writeErr(c, err)
	}
	sw, err := ctl.ownedSection(c, profile, "id")
	if err != nil {
		return ctl.writeErr(c, err)
	}
	return helper.JsonOK(c, "section fetched", dto.ToSectionDTO(*sw))
}

// GET /api/u/sections/templates
func (ctl *SectionController) ListTemplates(c *fiber.Ctx) error {
	return helper.JsonOK(c, "templates fetched", service.TemplateCatalog())
}

// GET /api/u/sections/check-duplicate?section_key=work_experience
func (ctl *SectionController) CheckDuplicate(c *fiber.Ctx) error {
	key := strings.TrimSpace(c.Query("section_key"))
	if key == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "section_key query param is required")
	}
	profile, err := ctl.myProfile(c)
	if err != nil {
		return ctl.writeErr(c, err)
	}
	check, err := ctl.Guard.Check(c.Context(), profile.ProfileID, key)
	if err != nil {
		return ctl.writeErr(c, err)
	}
	return helper.JsonOK(c, "duplicate check done", check)
}

/* =========================
   Writes
   ========================= */

// POST /api/u/sections
// Free-form: title (+ optional fields). Template: template_key; the
// duplicate guard then disambiguates the title and the response carries
// a notice so the client can surface it.
func (ctl *SectionController) CreateSection(c *fiber.Ctx) error {
	var req dto.CreateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}
	profile, err := ctl.myProfile(c)
	if err != nil {
		return ctl.writeErr(c, err)
	}

	in := repository.CreateSectionInput{
		Title:  strings.TrimSpace(req.Title),
		Fields: dto.ToFieldWrites(req.Fields),
	}
	if req.SectionKey != nil {
		in.SectionKey = strings.TrimSpace(*req.SectionKey)
	}

	notice := ""
	if req.TemplateKey != nil {
		tpl := service.FindTemplate(strings.TrimSpace(*req.TemplateKey))
		if tpl == nil {
			return helper.JsonError(c, fiber.StatusNotFound, "unknown section template")
		}
		in.SectionKey = tpl.SectionKey
		if in.Title == "" {
			in.Title = tpl.Title
		}
		if len(in.Fields) == 0 {
			for _, ft := range tpl.Fields {
				in.Fields = append(in.Fields, repository.FieldWrite{
					FieldKey:   ft.FieldKey,
					FieldLabel: ft.FieldLabel,
					FieldType:  string(ft.FieldType),
				})
			}
		}
		title, changed, err := ctl.Guard.ResolveTitle(c.Context(), profile.ProfileID, tpl.SectionKey, in.Title)
		if err != nil {
			return ctl.writeErr(c, err)
		}
		if changed {
			notice = "you already have a \"" + in.Title + "\" section, this one was named \"" + title + "\""
		}
		in.Title = title
	}
	if in.Title == "" {
		return helper.JsonValidationError(c, map[string][]string{"title": {"is required"}})
	}

	sec, fields, err := ctl.Repo.CreateSection(c.Context(), profile.ProfileID, in)
	if err != nil {
		return ctl.writeErr(c, err)
	}
	ctl.afterRowWrite(c, profile)

	data := fiber.Map{
		"section": dto.ToSectionDTO(repository.SectionWithFields{Section: *sec, Fields: fields}),
	}
	if notice != "" {
		data["notice"] = notice
	}
	return helper.JsonCreated(c, "section created", data)
}

// PUT /api/u/sections/:id
func (ctl *SectionController) UpdateSection(c *fiber.Ctx) error {
	var req dto.UpdateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}
	profile, err := ctl.myProfile(c)
	if err != nil {
		return ctl.writeErr(c, err)
	}
	sw, err := ctl.ownedSection(c, profile, "id")
	if err != nil {
		return ctl.writeErr(c, err)
	}

	patch := repository.SectionPatch{Title: req.Title, SectionKey: req.SectionKey}
	updated, err := ctl.Repo.UpdateSection(c.Context(), sw.Section.ProfileSectionID, patch, dto.ToFieldWrites(req.Fields))
	if err != nil {
		return ctl.writeErr(c, err)
	}
	ctl.afterRowWrite(c, profile)
	return helper.JsonUpdated(c, "section updated", dto.ToSectionDTO(*updated))
}

// DELETE /api/u/sections/:id
func (ctl *SectionController) DeleteSection(c *fiber.Ctx) error {
	profile, err := ctl.myProfile(c)
	if err != nil {
		return ctl.writeErr(c, err)
	}
	sectionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid section id")
	}
	// a second delete of the same id should still be a 200, so the
	// ownership check tolerates the row being gone already
	sw, err := ctl.Repo.GetSection(c.Context(), sectionID)
	if err == nil && sw.Section.ProfileSectionProfileID != profile.ProfileID {
		return ctl.writeErr(c, apperror.Authorization("section belongs to another profile"))
	}
	if err != nil && apperror.KindOf(err) != apperror.KindNotFound {
		return ctl.writeErr(c, err)
	}

	if err := ctl.Repo.DeleteSection(c.Context(), sectionID); err != nil {
		return ctl.writeErr(c, err)
	}
	ctl.afterRowWrite(c, profile)
	return helper.JsonDeleted(c, "section deleted", fiber.Map{"profile_section_id": sectionID})
}

// DELETE /api/u/sections/:id/fields/:fieldID
func (ctl *SectionController) DeleteField(c *fiber.Ctx) error {
	profile, err := ctl.myProfile(c)
	if err != nil {
		return ctl.writeErr(c, err)
	}
	sw, err := ctl.ownedSection(c, profile, "id")
	if err != nil {
		return ctl.writeErr(c, err)
	}
	fieldID, err := uuid.Parse(c.Params("fieldID"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid field id")
	}
	for _, f := range sw.Fields {
		if f.ProfileSectionFieldID == fieldID {
			if err := ctl.Repo.DeleteField(c.Context(), fieldID); err != nil {
				return ctl.writeErr(c, err)
			}
			ctl.afterRowWrite(c, profile)
			return helper.JsonDeleted(c, "field deleted", fiber.Map{"profile_section_field_id": fieldID})
		}
	}
	// deleting a field that is already gone is fine (idempotent delete)
	return helper.JsonDeleted(c, "field deleted", fiber.Map{"profile_section_field_id": fieldID})
}

// PUT /api/u/sections/reorder
func (ctl *SectionController) ReorderSections(c *fiber.Ctx) error {
	var req dto.ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}
	profile, err := ctl.myProfile(c)
	if err != nil {
		return ctl.writeErr(c, err)
	}
	if err := ctl.Repo.ReorderSections(c.Context(), profile.ProfileID, req.OrderedIDs); err != nil {
		return ctl.writeErr(c, err)
	}
	ctl.afterRowWrite(c, profile)
	rows, err := ctl.Repo.ListSectionsWithFields(c.Context(), profile.ProfileID)
	if err != nil {
		return ctl.writeErr(c, err)
	}
	return helper.JsonUpdated(c, "sections reordered", dto.ToSectionDTOs(rows))
}

// PUT /api/u/sections/:id/fields/reorder
func (ctl *SectionController) ReorderFields(c *fiber.Ctx) error {
	var req dto.ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}
	profile, err := ctl.myProfile(c)
	if err != nil {
		return ctl.writeErr(c, err)
	}
	sw, err := ctl.ownedSection(c, profile, "id")
	if err != nil {
		return ctl.writeErr(c, err)
	}
	if err := ctl.Repo.ReorderFields(c.Context(), sw.Section.ProfileSectionID, req.OrderedIDs); err != nil {
		return ctl.writeErr(c, err)
	}
	ctl.afterRowWrite(c, profile)
	updated, err := ctl.Repo.GetSection(c.Context(), sw.Section.ProfileSectionID)
	if err != nil {
		return ctl.writeErr(c, err)
	}
	return helper.JsonUpdated(c, "fields reordered", dto.ToSectionDTO(*updated))
}

/* =========================
   Orchestrated save
   ========================= */

// POST /api/u/profile/updates
// The one endpoint every editor modal saves through.
func (ctl *SectionController) ApplyProfileUpdate(c *fiber.Ctx) error {
	var req dto.ApplyProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return ctl.writeErr(c, err)
	}
	profile, err := ctl.myProfile(c)
	if err != nil {
		return ctl.writeErr(c, err)
	}

	updated, err := ctl.Orchestrator.ApplyProfileUpdate(c.Context(), userID, profile.ProfileID, req)
	if err != nil {
		return ctl.writeErr(c, err)
	}
	return helper.JsonUpdated(c, "profile saved", fiber.Map{
		"profile_id":       updated.ProfileID,
		"profile_sections": updated.ProfileSections,
	})
}

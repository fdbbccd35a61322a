// file: internals/features/profiles/recommendations/controller/recommendation_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	profilemodel "profilku_backend/internals/features/profiles/profile/model"
	"profilku_backend/internals/features/profiles/recommendations/dto"
	"profilku_backend/internals/features/profiles/recommendations/model"
	helper "profilku_backend/internals/helpers"
	"profilku_backend/internals/helpers/apperror"
)

type RecommendationController struct {
	DB *gorm.DB
}

func NewRecommendationController(db *gorm.DB) *RecommendationController {
	return &RecommendationController{DB: db}
}

func (ctl *RecommendationController) writeErr(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	status := apperror.StatusOf(err)
	if status >= 500 {
		log.Printf("[ERROR] recommendations: %v", err)
	}
	return helper.JsonError(c, status, err.Error())
}

func (ctl *RecommendationController) profileByUsername(c *fiber.Ctx) (*profilemodel.ProfileModel, error) {
	username := strings.ToLower(strings.TrimSpace(c.Params("username")))
	if username == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "username is required")
	}
	var profile profilemodel.ProfileModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("profile_username = ?", username).
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "profile not found")
		}
		return nil, apperror.Store("profileByUsername", err)
	}
	return &profile, nil
}

func (ctl *RecommendationController) myProfile(c *fiber.Ctx) (*profilemodel.ProfileModel, error) {
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

/* =========================
   Visitor side
   ========================= */

// POST /api/public/profiles/:username/recommendations
// Always lands in pending; nothing a visitor writes is visible until
// the owner approves it.
func (ctl *RecommendationController) CreateRecommendation(c *fiber.Ctx) error {
	var req dto.CreateRecommendationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}
	profile, err := ctl.profileByUsername(c)
	if err != nil {
		return ctl.writeErr(c, err)
	}

	m := req.ToModel(profile.ProfileID)
	if err := ctl.DB.WithContext(c.Context()).Create(&m).Error; err != nil {
		return ctl.writeErr(c, apperror.Store("createRecommendation", err))
	}
	return helper.JsonCreated(c, "recommendation submitted, waiting for approval", dto.ToPublicRecommendationDTO(m))
}

// GET /api/public/profiles/:username/recommendations
func (ctl *RecommendationController) ListPublicRecommendations(c *fiber.Ctx) error {
	profile, err := ctl.profileByUsername(c)
	if err != nil {
		return ctl.writeErr(c, err)
	}
	p := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.Context()).
		Model(&model.RecommendationModel{}).
		Where("recommendation_profile_id = ?", profile.ProfileID).
		Where("recommendation_status = ?", model.RecommendationStatusApproved).
		Where("recommendation_is_public = ?", true)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return ctl.writeErr(c, apperror.Store("listPublicRecommendations", err))
	}
	var rows []model.RecommendationModel
	if err := q.Order("recommendation_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return ctl.writeErr(c, apperror.Store("listPublicRecommendations", err))
	}
	return helper.JsonList(c, "recommendations fetched",
		dto.ToPublicRecommendationDTOs(rows),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

/* =========================
   Owner side
   ========================= */

// GET /api/u/recommendations?status=pending
func (ctl *RecommendationController) ListMyRecommendations(c *fiber.Ctx) error {
	profile, err := ctl.myProfile(c)
	if err != nil {
		return ctl.writeErr(c, err)
	}
	p := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.Context()).
		Model(&model.RecommendationModel{}).
		Where("recommendation_profile_id = ?", profile.ProfileID)
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		if !model.RecommendationStatus(status).Valid() {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid status filter")
		}
		q = q.Where("recommendation_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return ctl.writeErr(c, apperror.Store("listMyRecommendations", err))
	}
	var rows []model.RecommendationModel
	if err := q.Order("recommendation_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return ctl.writeErr(c, apperror.Store("listMyRecommendations", err))
	}
	return helper.JsonList(c, "recommendations fetched",
		dto.ToRecommendationDTOs(rows),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// PATCH /api/u/recommendations/:id
func (ctl *RecommendationController) ModerateRecommendation(c *fiber.Ctx) error {
	var req dto.ModerateRecommendationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}
	if req.Status == nil && req.IsPublic == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "nothing to update")
	}
	profile, err := ctl.myProfile(c)
	if err != nil {
		return ctl.writeErr(c, err)
	}
	recID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid recommendation id")
	}

	var rec model.RecommendationModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("recommendation_id = ?", recID).
		First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "recommendation not found")
		}
		return ctl.writeErr(c, apperror.Store("moderateRecommendation", err))
	}
	if rec.RecommendationProfileID != profile.ProfileID {
		return ctl.writeErr(c, apperror.Authorization("recommendation belongs to another profile"))
	}

	updates := map[string]any{}
	if req.Status != nil {
		updates["recommendation_status"] = *req.Status
	}
	if req.IsPublic != nil {
		updates["recommendation_is_public"] = *req.IsPublic
	}
	if err := ctl.DB.WithContext(c.Context()).
		Model(&model.RecommendationModel{}).
		Where("recommendation_id = ?", recID).
		Updates(updates).Error; err != nil {
		return ctl.writeErr(c, apperror.Store("moderateRecommendation", err))
	}

	if err := ctl.DB.WithContext(c.Context()).
		Where("recommendation_id = ?", recID).
		First(&rec).Error; err != nil {
		return ctl.writeErr(c, apperror.Store("moderateRecommendation reload", err))
	}
	return helper.JsonUpdated(c, "recommendation updated", dto.ToRecommendationDTO(rec))
}

// DELETE /api/u/recommendations/:id
func (ctl *RecommendationController) DeleteRecommendation(c *fiber.Ctx) error {
	profile, err := ctl.myProfile(c)
	if err != nil {
		return ctl.writeErr(c, err)
	}
	recID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid recommendation id")
	}
	res := ctl.DB.WithContext(c.Context()).
		Where("recommendation_id = ? AND recommendation_profile_id = ?", recID, profile.ProfileID).
		Delete(&model.RecommendationModel{})
	if res.Error != nil {
		return ctl.writeErr(c, apperror.Store("deleteRecommendation", res.Error))
	}
	return helper.JsonDeleted(c, "recommendation deleted", fiber.Map{"recommendation_id": recID})
}

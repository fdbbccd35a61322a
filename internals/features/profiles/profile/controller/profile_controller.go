// file: internals/features/profiles/profile/controller/profile_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"profilku_backend/internals/cache"
	"profilku_backend/internals/features/profiles/profile/dto"
	profilemodel "profilku_backend/internals/features/profiles/profile/model"
	helper "profilku_backend/internals/helpers"
	"profilku_backend/internals/helpers/apperror"
	helperOSS "profilku_backend/internals/helpers/oss"
)

type ProfileController struct {
	DB    *gorm.DB
	Cache *cache.ProfileCache // nil when redis is not configured
	Inv   cache.Invalidator
	OSS   *helperOSS.OSSService // nil until first upload, lazy
}

func NewProfileController(db *gorm.DB, pc *cache.ProfileCache) *ProfileController {
	var inv cache.Invalidator = cache.NoopInvalidator{}
	if pc != nil {
		inv = pc
	}
	return &ProfileController{DB: db, Cache: pc, Inv: inv}
}

func (ctl *ProfileController) writeErr(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	status := apperror.StatusOf(err)
	if status >= 500 {
		log.Printf("[ERROR] profiles: %v", err)
	}
	return helper.JsonError(c, status, err.Error())
}

func (ctl *ProfileController) invalidate(c *fiber.Ctx, p *profilemodel.ProfileModel) {
	username := ""
	if p.ProfileUsername != nil {
		username = *p.ProfileUsername
	}
	ctl.Inv.InvalidateProfile(c.Context(), p.ProfileID, username)
}

/* =========================
   Public reads
   ========================= */

// GET /api/public/profiles/:username
// Read-through: the whole response body is cached per username, so a hot
// profile page is one redis GET.
func (ctl *ProfileController) GetPublicProfile(c *fiber.Ctx) error {
	username := strings.ToLower(strings.TrimSpace(c.Params("username")))
	if username == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "username is required")
	}

	if ctl.Cache != nil {
		if body := ctl.Cache.GetProfileByUsername(c.Context(), username); body != "" {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.SendString(body)
		}
	}

	var profile profilemodel.ProfileModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("profile_username = ?", username).
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "profile not found")
		}
		return ctl.writeErr(c, apperror.Store("getPublicProfile", err))
	}

	body, err := json.Marshal(fiber.Map{
		"success": true,
		"message": "profile fetched",
		"data":    dto.ToPublicProfileDTO(profile),
	})
	if err != nil {
		return ctl.writeErr(c, err)
	}
	if ctl.Cache != nil {
		ctl.Cache.SetProfileByUsername(c.Context(), username, string(body))
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

/* =========================
   Owner endpoints
   ========================= */

func (ctl *ProfileController) myProfile(c *fiber.Ctx) (*profilemodel.ProfileModel, error) {
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

// GET /api/u/profile
func (ctl *ProfileController) GetMyProfile(c *fiber.Ctx) error {
	profile, err := ctl.myProfile(c)
	if err != nil {
		return ctl.writeErr(c, err)
	}
	return helper.JsonOK(c, "profile fetched", dto.ToProfileDTO(*profile))
}

// POST /api/u/profile
func (ctl *ProfileController) CreateProfile(c *fiber.Ctx) error {
	var req dto.CreateProfileRequest
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

	var count int64
	if err := ctl.DB.WithContext(c.Context()).
		Model(&profilemodel.ProfileModel{}).
		Where("profile_user_id = ?", userID).
		Count(&count).Error; err != nil {
		return ctl.writeErr(c, apperror.Store("createProfile", err))
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "you already have a profile")
	}

	m := req.ToModel(userID)
	if err := ctl.DB.WithContext(c.Context()).Create(&m).Error; err != nil {
		return ctl.writeErr(c, apperror.Store("createProfile", err))
	}
	return helper.JsonCreated(c, "profile created", dto.ToProfileDTO(m))
}

// PATCH /api/u/profile
func (ctl *ProfileController) UpdateMyProfile(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
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

	updates := req.ToUpdateMap()
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "nothing to update")
	}
	if err := ctl.DB.WithContext(c.Context()).
		Model(&profilemodel.ProfileModel{}).
		Where("profile_id = ?", profile.ProfileID).
		Updates(updates).Error; err != nil {
		return ctl.writeErr(c, apperror.Store("updateMyProfile", err))
	}

	// both the old and the new username key must drop
	ctl.invalidate(c, profile)
	if err := ctl.DB.WithContext(c.Context()).
		Where("profile_id = ?", profile.ProfileID).
		First(profile).Error; err != nil {
		return ctl.writeErr(c, apperror.Store("updateMyProfile reload", err))
	}
	ctl.invalidate(c, profile)
	return helper.JsonUpdated(c, "profile updated", dto.ToProfileDTO(*profile))
}

/* =========================
   Image uploads
   ========================= */

func (ctl *ProfileController) ossService() (*helperOSS.OSSService, error) {
	if ctl.OSS != nil {
		return ctl.OSS, nil
	}
	svc, err := helperOSS.NewOSSServiceFromEnv("profilku")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "image storage is not configured")
	}
	ctl.OSS = svc
	return svc, nil
}

// uploadImage handles avatar and cover alike; only the slot and the
// target column differ.
func (ctl *ProfileController) uploadImage(c *fiber.Ctx, slot, column string, current func(*profilemodel.ProfileModel) *string) error {
	profile, err := ctl.myProfile(c)
	if err != nil {
		return ctl.writeErr(c, err)
	}
	svc, err := ctl.ossService()
	if err != nil {
		return ctl.writeErr(c, err)
	}

	fh, err := c.FormFile("image")
	if err != nil {
		fh, err = c.FormFile("file")
	}
	if err != nil || fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "image file is required (field \"image\")")
	}

	url, err := svc.UploadProfileImage(c.Context(), profile.ProfileID, slot, fh)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctl.DB.WithContext(c.Context()).
		Model(&profilemodel.ProfileModel{}).
		Where("profile_id = ?", profile.ProfileID).
		Update(column, url).Error; err != nil {
		return ctl.writeErr(c, apperror.Store("uploadImage", err))
	}

	// best effort: the replaced object is garbage now
	if old := current(profile); old != nil && *old != "" {
		if key, err := helperOSS.ExtractKeyFromPublicURL(*old); err == nil {
			if err := svc.DeleteObject(c.Context(), key); err != nil {
				log.Printf("[WARN] delete old %s object: %v", slot, err)
			}
		}
	}

	ctl.invalidate(c, profile)
	return helper.JsonUpdated(c, slot+" updated", fiber.Map{column: url})
}

// POST /api/u/profile/avatar
func (ctl *ProfileController) UploadAvatar(c *fiber.Ctx) error {
	return ctl.uploadImage(c, "avatar", "profile_avatar_url",
		func(p *profilemodel.ProfileModel) *string { return p.ProfileAvatarURL })
}

// POST /api/u/profile/background
func (ctl *ProfileController) UploadBackground(c *fiber.Ctx) error {
	return ctl.uploadImage(c, "cover", "profile_background_url",
		func(p *profilemodel.ProfileModel) *string { return p.ProfileBackgroundURL })
}

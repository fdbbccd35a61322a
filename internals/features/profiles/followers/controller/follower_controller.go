// file: internals/features/profiles/followers/controller/follower_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"profilku_backend/internals/features/profiles/followers/dto"
	"profilku_backend/internals/features/profiles/followers/model"
	profilemodel "profilku_backend/internals/features/profiles/profile/model"
	helper "profilku_backend/internals/helpers"
	"profilku_backend/internals/helpers/apperror"
)

type FollowerController struct {
	DB *gorm.DB
}

func NewFollowerController(db *gorm.DB) *FollowerController {
	return &FollowerController{DB: db}
}

func (ctl *FollowerController) writeErr(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	status := apperror.StatusOf(err)
	if status >= 500 {
		log.Printf("[ERROR] followers: %v", err)
	}
	return helper.JsonError(c, status, err.Error())
}

func (ctl *FollowerController) profileByUsername(c *fiber.Ctx) (*profilemodel.ProfileModel, error) {
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

// POST /api/public/profiles/:username/followers
// Write-once: a repeat follow from the same email is swallowed by
// DoNothing on the unique index and still answers 201, so the form
// never leaks whether an email already followed.
func (ctl *FollowerController) Follow(c *fiber.Ctx) error {
	var req dto.FollowRequest
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
	if err := ctl.DB.WithContext(c.Context()).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&m).Error; err != nil {
		return ctl.writeErr(c, apperror.Store("follow", err))
	}
	return helper.JsonCreated(c, "you are now following this profile", fiber.Map{
		"follower_name": m.FollowerName,
	})
}

// GET /api/public/profiles/:username/followers/count
func (ctl *FollowerController) PublicCount(c *fiber.Ctx) error {
	profile, err := ctl.profileByUsername(c)
	if err != nil {
		return ctl.writeErr(c, err)
	}
	var count int64
	if err := ctl.DB.WithContext(c.Context()).
		Model(&model.FollowerModel{}).
		Where("follower_profile_id = ?", profile.ProfileID).
		Count(&count).Error; err != nil {
		return ctl.writeErr(c, apperror.Store("publicCount", err))
	}
	return helper.JsonOK(c, "follower count fetched", fiber.Map{"count": count})
}

// GET /api/u/followers
func (ctl *FollowerController) ListMyFollowers(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return ctl.writeErr(c, err)
	}
	var profile profilemodel.ProfileModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("profile_user_id = ?", userID).
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "you have no profile yet")
		}
		return ctl.writeErr(c, apperror.Store("listMyFollowers", err))
	}
	p := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.Context()).
		Model(&model.FollowerModel{}).
		Where("follower_profile_id = ?", profile.ProfileID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return ctl.writeErr(c, apperror.Store("listMyFollowers", err))
	}
	var rows []model.FollowerModel
	if err := q.Order("follower_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return ctl.writeErr(c, apperror.Store("listMyFollowers", err))
	}
	return helper.JsonList(c, "followers fetched",
		dto.ToFollowerDTOs(rows),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

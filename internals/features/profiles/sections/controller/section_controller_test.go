// file: internals/features/profiles/sections/controller/section_controller_test.go
package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"profilku_backend/internals/cache"
	profilemodel "profilku_backend/internals/features/profiles/profile/model"
	"profilku_backend/internals/features/profiles/sections/model"
	"profilku_backend/internals/features/profiles/sections/repository"
	"profilku_backend/internals/features/profiles/sections/service"
)

type sectionTestEnv struct {
	app     *fiber.App
	db      *gorm.DB
	repo    *repository.SectionRepository
	profile profilemodel.ProfileModel
}

func newSectionTestEnv(t *testing.T) *sectionTestEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&profilemodel.ProfileModel{},
		&model.ProfileSectionModel{},
		&model.ProfileSectionFieldModel{},
	))

	username := "sari"
	profile := profilemodel.ProfileModel{
		ProfileUserID:      uuid.New(),
		ProfileUsername:    &username,
		ProfileDisplayName: "Sari",
		ProfileSections:    []byte("{}"),
	}
	require.NoError(t, db.Create(&profile).Error)

	repo := repository.NewSectionRepository(db)
	orch := service.NewUpdateOrchestrator(db, repo, cache.NoopInvalidator{})
	ctl := NewSectionController(db, repo, orch)

	app := fiber.New()
	authed := app.Group("/api/u", func(c *fiber.Ctx) error {
		c.Locals("user_id", profile.ProfileUserID.String())
		return c.Next()
	})
	authed.Get("/sections/templates", ctl.ListTemplates)
	authed.Get("/sections/check-duplicate", ctl.CheckDuplicate)
	authed.Get("/sections/", ctl.ListMySections)
	authed.Post("/sections/", ctl.CreateSection)
	authed.Delete("/sections/:id", ctl.DeleteSection)
	authed.Post("/profile/updates", ctl.ApplyProfileUpdate)

	return &sectionTestEnv{app: app, db: db, repo: repo, profile: profile}
}

func (e *sectionTestEnv) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var data []byte
	if body != nil {
		var err error
		data, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCreateSectionFromTemplateWithDuplicateNotice(t *testing.T) {
	env := newSectionTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/u/sections/", fiber.Map{
		"template_key": "work_experience",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var first struct {
		Data struct {
			Notice  string `json:"notice"`
			Section struct {
				ProfileSectionTitle string `json:"profile_section_title"`
				ProfileSectionKey   string `json:"profile_section_key"`
			} `json:"section"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&first))
	assert.Equal(t, "Work Experience", first.Data.Section.ProfileSectionTitle)
	assert.Equal(t, "work_experience", first.Data.Section.ProfileSectionKey)
	assert.Empty(t, first.Data.Notice)

	// the duplicate creates too, with a renamed title and a notice
	resp = env.do(t, http.MethodPost, "/api/u/sections/", fiber.Map{
		"template_key": "work_experience",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var second struct {
		Data struct {
			Notice  string `json:"notice"`
			Section struct {
				ProfileSectionTitle string `json:"profile_section_title"`
			} `json:"section"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&second))
	assert.Equal(t, "Work Experience 2", second.Data.Section.ProfileSectionTitle)
	assert.NotEmpty(t, second.Data.Notice)
}

func TestCreateSectionUnknownTemplate(t *testing.T) {
	env := newSectionTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/u/sections/", fiber.Map{
		"template_key": "hobbies-deluxe",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateSectionRequiresTitleOrTemplate(t *testing.T) {
	env := newSectionTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/u/sections/", fiber.Map{})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestDeleteSectionForeignOwnerForbidden(t *testing.T) {
	env := newSectionTestEnv(t)

	otherUsername := "other"
	other := profilemodel.ProfileModel{
		ProfileUserID:      uuid.New(),
		ProfileUsername:    &otherUsername,
		ProfileDisplayName: "Other",
		ProfileSections:    []byte("{}"),
	}
	require.NoError(t, env.db.Create(&other).Error)
	sec, _, err := env.repo.CreateSection(context.Background(), other.ProfileID, repository.CreateSectionInput{Title: "Theirs"})
	require.NoError(t, err)

	resp := env.do(t, http.MethodDelete, "/api/u/sections/"+sec.ProfileSectionID.String(), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// the row is untouched
	var count int64
	require.NoError(t, env.db.Model(&model.ProfileSectionModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteSectionIdempotentOverHTTP(t *testing.T) {
	env := newSectionTestEnv(t)

	sec, _, err := env.repo.CreateSection(context.Background(), env.profile.ProfileID, repository.CreateSectionInput{Title: "Mine"})
	require.NoError(t, err)

	resp := env.do(t, http.MethodDelete, "/api/u/sections/"+sec.ProfileSectionID.String(), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, "/api/u/sections/"+sec.ProfileSectionID.String(), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "double delete still succeeds")
}

func TestCheckDuplicateEndpoint(t *testing.T) {
	env := newSectionTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/u/sections/check-duplicate?section_key=work_experience", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Data service.DuplicateCheck `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.False(t, out.Data.Exists)

	resp = env.do(t, http.MethodGet, "/api/u/sections/check-duplicate", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestApplyProfileUpdateEndpointValidatesModalType(t *testing.T) {
	env := newSectionTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/u/profile/updates", fiber.Map{
		"modal_type": "wardrobe",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/u/profile/updates", fiber.Map{
		"modal_type": "bio",
		"bio":        "hello world",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var row profilemodel.ProfileModel
	require.NoError(t, env.db.Where("profile_id = ?", env.profile.ProfileID).First(&row).Error)
	require.NotNil(t, row.ProfileBio)
	assert.Equal(t, "hello world", *row.ProfileBio)
}

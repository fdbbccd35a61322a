// file: internals/features/profiles/profile/controller/profile_controller_test.go
package controller

import (
	"bytes"
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

	profilemodel "profilku_backend/internals/features/profiles/profile/model"
)

func newProfileTestApp(t *testing.T) (*fiber.App, *gorm.DB, uuid.UUID) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&profilemodel.ProfileModel{}))

	userID := uuid.New()

	app := fiber.New()
	ctl := NewProfileController(db, nil) // no redis in tests

	app.Get("/api/public/profiles/:username", ctl.GetPublicProfile)

	authed := app.Group("/api/u", func(c *fiber.Ctx) error {
		c.Locals("user_id", userID.String())
		return c.Next()
	})
	authed.Get("/profile", ctl.GetMyProfile)
	authed.Post("/profile", ctl.CreateProfile)
	authed.Patch("/profile", ctl.UpdateMyProfile)

	return app, db, userID
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var data []byte
	if body != nil {
		var err error
		data, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCreateProfileOncePerUser(t *testing.T) {
	app, db, userID := newProfileTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/u/profile", fiber.Map{
		"profile_username":     "Sari",
		"profile_display_name": "Sari Dewi",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var row profilemodel.ProfileModel
	require.NoError(t, db.Where("profile_user_id = ?", userID).First(&row).Error)
	require.NotNil(t, row.ProfileUsername)
	assert.Equal(t, "sari", *row.ProfileUsername, "username is lower-cased on write")
	assert.Equal(t, "{}", string(row.ProfileSections))

	// second create for the same user conflicts
	resp = doJSON(t, app, http.MethodPost, "/api/u/profile", fiber.Map{
		"profile_display_name": "Sari Again",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestGetPublicProfileHidesOwnerLinkage(t *testing.T) {
	app, _, _ := newProfileTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/u/profile", fiber.Map{
		"profile_username":     "sari",
		"profile_display_name": "Sari Dewi",
		"profile_bio":          "hello",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/public/profiles/sari", nil)
	pub, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, pub.StatusCode)

	var body struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(pub.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, "Sari Dewi", body.Data["profile_display_name"])
	assert.NotContains(t, body.Data, "profile_user_id", "owner linkage stays private")
	assert.NotContains(t, body.Data, "profile_email")
	assert.Contains(t, body.Data, "profile_sections")
}

func TestGetPublicProfileNotFound(t *testing.T) {
	app, _, _ := newProfileTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/public/profiles/nobody", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateMyProfilePartialPatch(t *testing.T) {
	app, db, userID := newProfileTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/u/profile", fiber.Map{
		"profile_username":     "sari",
		"profile_display_name": "Sari Dewi",
		"profile_bio":          "old bio",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPatch, "/api/u/profile", fiber.Map{
		"profile_bio": "new bio",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var row profilemodel.ProfileModel
	require.NoError(t, db.Where("profile_user_id = ?", userID).First(&row).Error)
	require.NotNil(t, row.ProfileBio)
	assert.Equal(t, "new bio", *row.ProfileBio)
	require.NotNil(t, row.ProfileUsername)
	assert.Equal(t, "sari", *row.ProfileUsername, "untouched columns survive a partial patch")
}

func TestUpdateMyProfileValidation(t *testing.T) {
	app, _, _ := newProfileTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/u/profile", fiber.Map{
		"profile_display_name": "Sari",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPatch, "/api/u/profile", fiber.Map{
		"profile_website_url": "not a url",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

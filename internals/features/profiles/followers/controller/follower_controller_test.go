// file: internals/features/profiles/followers/controller/follower_controller_test.go
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

	"profilku_backend/internals/features/profiles/followers/model"
	profilemodel "profilku_backend/internals/features/profiles/profile/model"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&profilemodel.ProfileModel{}, &model.FollowerModel{}))

	username := "sari"
	profile := profilemodel.ProfileModel{
		ProfileUserID:      uuid.New(),
		ProfileUsername:    &username,
		ProfileDisplayName: "Sari",
		ProfileSections:    []byte("{}"),
	}
	require.NoError(t, db.Create(&profile).Error)

	app := fiber.New()
	ctl := NewFollowerController(db)
	app.Post("/api/public/profiles/:username/followers", ctl.Follow)
	app.Get("/api/public/profiles/:username/followers/count", ctl.PublicCount)
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestFollowIsWriteOnce(t *testing.T) {
	app, db := newTestApp(t)

	resp := postJSON(t, app, "/api/public/profiles/sari/followers", fiber.Map{
		"name":  "Budi",
		"email": "Budi@Example.com",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// same email again: still 201, still one row
	resp = postJSON(t, app, "/api/public/profiles/sari/followers", fiber.Map{
		"name":  "Budi Again",
		"email": "budi@example.com",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&model.FollowerModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var row model.FollowerModel
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, "Budi", row.FollowerName, "the first write wins, rows never update")
	assert.Equal(t, "budi@example.com", row.FollowerEmail)
}

func TestFollowValidation(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/public/profiles/sari/followers", fiber.Map{
		"name":  "",
		"email": "not-an-email",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestFollowUnknownProfile(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/public/profiles/nobody/followers", fiber.Map{
		"name":  "Budi",
		"email": "budi@example.com",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPublicCount(t *testing.T) {
	app, _ := newTestApp(t)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		resp := postJSON(t, app, "/api/public/profiles/sari/followers", fiber.Map{
			"name":  "Fan",
			"email": email,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/public/profiles/sari/followers/count", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			Count int64 `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.EqualValues(t, 2, body.Data.Count)
}

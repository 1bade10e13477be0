package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/survey-gen-server/config"
	"github.com/vnkhanh/survey-gen-server/utils"
)

func setupAdmin(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	hash, err := utils.HashPassword("s3cret-admin")
	require.NoError(t, err)
	config.App.AdminPasswordHash = hash
	t.Cleanup(func() { config.App.AdminPasswordHash = "" })
}

func TestLogin(t *testing.T) {
	r := setupRouter(t, nil, true)
	setupAdmin(t)

	t.Run("wrong password", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]any{"password": "nope"}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("right password", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]any{"password": "s3cret-admin"}, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing password", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]any{}, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestLoginNotConfigured(t *testing.T) {
	r := setupRouter(t, nil, true)
	config.App.AdminPasswordHash = ""

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]any{"password": "anything"}, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r := setupRouter(t, nil, true)
	setupAdmin(t)

	t.Run("no token", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/admin/stats", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/admin/stats", nil, map[string]string{
			"Authorization": "Bearer not-a-jwt",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		wl := doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]any{"password": "s3cret-admin"}, nil)
		require.Equal(t, http.StatusOK, wl.Code)
		var resp struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(wl.Body.Bytes(), &resp))

		w := doJSON(t, r, http.MethodGet, "/api/admin/stats", nil, map[string]string{
			"Authorization": "Bearer " + resp.Token,
		})
		require.Equal(t, http.StatusOK, w.Code)

		var stats struct {
			CachedSurveys int64 `json:"cached_surveys"`
			Responses     int64 `json:"responses"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.Equal(t, int64(0), stats.CachedSurveys)
		assert.Equal(t, int64(0), stats.Responses)
	})
}

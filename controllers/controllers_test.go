package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vnkhanh/survey-gen-server/config"
	"github.com/vnkhanh/survey-gen-server/middleware"
	"github.com/vnkhanh/survey-gen-server/models"
	"github.com/vnkhanh/survey-gen-server/services"
)

// setupRouter dựng router với DB sqlite in-memory và generator ở chế
// độ mock. Đăng ký route trực tiếp (không qua rate limiter) để test
// không chia sẻ bucket limiter với nhau.
func setupRouter(t *testing.T, adapter services.GeneratorAdapter, mockOnly bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.SurveyCache{}, &models.SurveyResponse{}))

	config.DB = db
	InitSurveyGenerator(services.NewSurveyGenerator(db, adapter, mockOnly))

	r := gin.New()
	r.POST("/api/surveys/generate", GenerateSurvey)
	r.POST("/api/surveys/:id/responses", RecordResponse)
	r.POST("/api/auth/login", Login)

	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthAdmin())
	{
		admin.GET("/stats", GetStats)
		admin.GET("/surveys/:id/export", ExportResponses)
	}

	// alias /v1 trỏ vào cùng handler
	r.POST("/v1/surveys/generate", GenerateSurvey)
	r.POST("/v1/surveys/:id/responses", RecordResponse)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vnkhanh/survey-gen-server/models"
)

// newTestDB mở SQLite in-memory với cùng cấu hình TranslateError như
// production, để test đường race ghi cache y hệt Postgres.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// in-memory sqlite: mỗi connection là một DB riêng, khóa pool về 1
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.SurveyCache{}, &models.SurveyResponse{}))
	return db
}

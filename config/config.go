package config

import (
	"fmt"
	"log"

	"github.com/vnkhanh/survey-gen-server/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB khởi tạo kết nối PostgreSQL và migrate bảng
func ConnectDB() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		App.DBHost, App.DBUser, App.DBPassword, App.DBName, App.DBPort)

	// TranslateError để unique violation trả về gorm.ErrDuplicatedKey
	// (cache insert dựa vào đó để nuốt race ghi trùng key).
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// Auto migrate bảng
	err = db.AutoMigrate(
		&models.SurveyCache{},
		&models.SurveyResponse{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	DB = db
	log.Println("Connected to PostgreSQL & migrated successfully")
}

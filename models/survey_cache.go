package models

import "time"

// SurveyCache lưu kết quả generate theo fingerprint của input.
// Row chỉ insert một lần, không update, không xóa.
type SurveyCache struct {
	ID              uint          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Key             string        `gorm:"column:key;size:128;not null;uniqueIndex:uq_survey_cache_key" json:"key"` // sha256 của (desc|num|lang)
	DescriptionNorm string        `gorm:"column:description_norm;size:600;not null" json:"description_norm"`
	NumQuestions    int           `gorm:"column:num_questions;not null" json:"num_questions"`
	Language        string        `gorm:"column:language;size:16;not null" json:"language"`
	SurveyJSON      SurveyPayload `gorm:"column:survey_json;type:jsonb;serializer:json;not null" json:"survey_json"`
	CreatedAt       time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (SurveyCache) TableName() string {
	return "survey_cache"
}

package models

import "time"

// SurveyResponse lưu câu trả lời của người dùng cuối.
// SurveyID là chuỗi opaque, không có foreign key vì survey không được
// lưu như entity riêng (chỉ cache payload).
type SurveyResponse struct {
	ID        uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SurveyID  string         `gorm:"column:survey_id;size:128;not null;index:ix_survey_response_survey_id" json:"survey_id"`
	Answers   map[string]any `gorm:"column:answers;type:jsonb;serializer:json;not null" json:"answers"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (SurveyResponse) TableName() string {
	return "survey_response"
}

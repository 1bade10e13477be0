package services

import (
	"gorm.io/gorm"

	"github.com/vnkhanh/survey-gen-server/models"
)

// SaveResponse lưu một lượt trả lời và trả về id được cấp.
// SurveyID không được đối chiếu với survey nào cả (survey không lưu
// thành entity riêng) — cố ý giữ đơn giản như vậy.
func SaveResponse(db *gorm.DB, surveyID string, answers map[string]any) (uint, error) {
	rec := models.SurveyResponse{
		SurveyID: surveyID,
		Answers:  answers,
	}
	if err := db.Create(&rec).Error; err != nil {
		return 0, err
	}
	return rec.ID, nil
}

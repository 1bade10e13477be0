package services

import (
	"fmt"

	"github.com/vnkhanh/survey-gen-server/models"
)

// GenerateMockSurvey là generator local, thuần túy, không I/O.
// Luôn trả cùng template 5 câu hỏi (satisfaction, rating 1-5, 2 open
// text, 1 multi choice), chỉ echo brief vào title/description.
// Số câu trả về = max(3, min(numQuestions, 5)).
// Dùng khi MOCK_LLM bật hoặc khi OpenAI lỗi transient (quota, rate
// limit, timeout).
func GenerateMockSurvey(description string, numQuestions int, language string) models.SurveyPayload {
	required := true
	one, five := 1, 5
	placeholder := "Your answer..."

	qs := []models.Question{
		{
			ID:       "q1",
			Type:     models.QuestionSingleChoice,
			Text:     "How satisfied are you overall?",
			Required: &required,
			Choices: []models.Choice{
				{ID: "c1", Label: "Very satisfied"},
				{ID: "c2", Label: "Satisfied"},
				{ID: "c3", Label: "Neutral"},
				{ID: "c4", Label: "Dissatisfied"},
				{ID: "c5", Label: "Very dissatisfied"},
			},
		},
		{
			ID:       "q2",
			Type:     models.QuestionRating,
			Text:     "Rate your overall experience",
			ScaleMin: &one,
			ScaleMax: &five,
		},
		{
			ID:          "q3",
			Type:        models.QuestionOpenText,
			Text:        "What did we do well?",
			Placeholder: &placeholder,
		},
		{
			ID:          "q4",
			Type:        models.QuestionOpenText,
			Text:        "What could we improve?",
			Placeholder: &placeholder,
		},
		{
			ID:   "q5",
			Type: models.QuestionMultiChoice,
			Text: "Which aspects mattered most?",
			Choices: []models.Choice{
				{ID: "c1", Label: "Price"},
				{ID: "c2", Label: "Quality"},
				{ID: "c3", Label: "Delivery"},
				{ID: "c4", Label: "Customer support"},
			},
		},
	}

	n := numQuestions
	if n > len(qs) {
		n = len(qs)
	}
	if n < 3 {
		n = 3
	}

	return models.SurveyPayload{
		Title:       fmt.Sprintf("Survey: %s", description),
		Description: fmt.Sprintf("Auto-generated (mock) from brief: %q", description),
		Questions:   qs[:n],
	}
}

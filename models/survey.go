package models

// QuestionType là tập loại câu hỏi cố định mà frontend render được.
type QuestionType string

const (
	QuestionSingleChoice QuestionType = "multiple_choice_single"
	QuestionMultiChoice  QuestionType = "multiple_choice_multi"
	QuestionRating       QuestionType = "rating"
	QuestionOpenText     QuestionType = "open_text"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionSingleChoice, QuestionMultiChoice, QuestionRating, QuestionOpenText:
		return true
	}
	return false
}

type Choice struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Question dùng chung cho output của LLM lẫn generator local.
// Required là *bool để phân biệt "thiếu" với "false"; normalization sẽ
// điền true khi thiếu.
type Question struct {
	ID          string       `json:"id"`
	Type        QuestionType `json:"type"`
	Text        string       `json:"text"`
	Required    *bool        `json:"required"`
	Choices     []Choice     `json:"choices,omitempty"`
	ScaleMin    *int         `json:"scale_min,omitempty"`
	ScaleMax    *int         `json:"scale_max,omitempty"`
	Placeholder *string      `json:"placeholder,omitempty"`
}

// Survey là entity trả về cho frontend. ID là display id dẫn xuất từ
// brief, không phải cache key.
type Survey struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

// SurveyPayload là phần được cache: survey không kèm display id.
type SurveyPayload struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

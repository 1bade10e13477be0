package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/vnkhanh/survey-gen-server/models"
)

// Giới hạn số câu hỏi ở tầng schema (request layer chặt hơn: 3-20).
const (
	minQuestions = 3
	maxQuestions = 50
)

const maxSafeIDLen = 24

// ErrInvalidSurvey: generator (remote hoặc mock) trả payload sai
// contract. Không repair gì thêm ngoài backfill id — lỗi này đẩy lên
// caller thành server error.
var ErrInvalidSurvey = errors.New("survey payload failed validation")

var unsafeIDRe = regexp.MustCompile(`[^a-z0-9_]`)

// SafeID sinh display id từ brief: lowercase, space → underscore, bỏ
// ký tự ngoài [a-z0-9_], cắt còn 24 ký tự. Rỗng thì trả "survey".
func SafeID(text string) string {
	s := strings.ToLower(text)
	s = strings.ReplaceAll(s, " ", "_")
	s = unsafeIDRe.ReplaceAllString(s, "")
	if len(s) > maxSafeIDLen {
		s = s[:maxSafeIDLen]
	}
	if s == "" {
		return "survey"
	}
	return s
}

// FillMissingIDs backfill id cho question/choice còn thiếu (q1, q2...
// theo vị trí; c1, c2... trong từng câu). Phải chạy TRƯỚC validation:
// output LLM thiếu id vẫn chấp nhận được nhờ bước này.
func FillMissingIDs(p *models.SurveyPayload) {
	for i := range p.Questions {
		q := &p.Questions[i]
		if q.ID == "" {
			q.ID = fmt.Sprintf("q%d", i+1)
		}
		for j := range q.Choices {
			if q.Choices[j].ID == "" {
				q.Choices[j].ID = fmt.Sprintf("c%d", j+1)
			}
		}
	}
}

// ValidateSurveyPayload kiểm schema sau backfill: title, description,
// số câu trong [3, 50], mỗi câu có id + type hợp lệ + text. Field theo
// loại câu (choices / scale / placeholder) ở bước này vẫn optional.
func ValidateSurveyPayload(p *models.SurveyPayload) error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidSurvey)
	}
	if strings.TrimSpace(p.Description) == "" {
		return fmt.Errorf("%w: missing description", ErrInvalidSurvey)
	}
	if len(p.Questions) < minQuestions || len(p.Questions) > maxQuestions {
		return fmt.Errorf("%w: got %d questions, want %d-%d",
			ErrInvalidSurvey, len(p.Questions), minQuestions, maxQuestions)
	}
	for i, q := range p.Questions {
		if q.ID == "" {
			return fmt.Errorf("%w: question %d missing id", ErrInvalidSurvey, i+1)
		}
		if !q.Type.Valid() {
			return fmt.Errorf("%w: question %q has unknown type %q", ErrInvalidSurvey, q.ID, q.Type)
		}
		if strings.TrimSpace(q.Text) == "" {
			return fmt.Errorf("%w: question %q missing text", ErrInvalidSurvey, q.ID)
		}
	}
	return nil
}

// ApplyDefaults điền default sau validation:
//   - required thiếu → true
//   - rating thiếu scale → 1..5
//
// Chạy cho cả payload mới generate lẫn payload lấy từ cache, vì row
// cache cũ có thể được lưu từ trước khi rule này tồn tại.
func ApplyDefaults(p *models.SurveyPayload) {
	for i := range p.Questions {
		q := &p.Questions[i]
		if q.Required == nil {
			required := true
			q.Required = &required
		}
		if q.Type == models.QuestionRating {
			if q.ScaleMin == nil {
				one := 1
				q.ScaleMin = &one
			}
			if q.ScaleMax == nil {
				five := 5
				q.ScaleMax = &five
			}
		}
	}
}

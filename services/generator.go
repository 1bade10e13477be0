package services

import (
	"context"
	"log"

	"gorm.io/gorm"

	"github.com/vnkhanh/survey-gen-server/models"
)

// GenerateRequest là input đã qua binding validation ở controller
// (description 5-500 ký tự, num_questions 3-20, language đã có default).
type GenerateRequest struct {
	Description  string
	NumQuestions int
	Language     string
}

// SurveyGenerator là orchestrator của pipeline generate:
//
//	cache check → generate (remote hoặc mock, có fallback) →
//	backfill id → validate → điền default → ghi cache → trả survey
//
// Adapter inject qua constructor (không global) để test thay stub được.
type SurveyGenerator struct {
	db       *gorm.DB
	adapter  GeneratorAdapter
	mockOnly bool
}

func NewSurveyGenerator(db *gorm.DB, adapter GeneratorAdapter, mockOnly bool) *SurveyGenerator {
	return &SurveyGenerator{db: db, adapter: adapter, mockOnly: mockOnly}
}

func (g *SurveyGenerator) Generate(ctx context.Context, req GenerateRequest) (*models.Survey, error) {
	// 1) Cache trước: cùng fingerprint thì trả luôn payload đã lưu.
	cached, err := FetchCached(g.db, req.Description, req.NumQuestions, req.Language)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		// Row cũ có thể lưu trước khi có rule default → vẫn normalize
		ApplyDefaults(cached)
		return buildSurvey(req.Description, cached), nil
	}

	// 2) Generate
	var raw *models.SurveyPayload
	if g.mockOnly || g.adapter == nil {
		payload := GenerateMockSurvey(req.Description, req.NumQuestions, req.Language)
		raw = &payload
	} else {
		raw, err = g.adapter.GenerateSurvey(ctx, req.Description, req.NumQuestions, req.Language)
		if err != nil {
			if !IsTransientGenerationError(err) {
				// lỗi lạ → đẩy lên caller, không retry
				return nil, err
			}
			// quota / rate limit / timeout → degrade sang template local
			log.Printf("remote generation degraded to mock: %v", err)
			payload := GenerateMockSurvey(req.Description, req.NumQuestions, req.Language)
			raw = &payload
		}
	}

	// 3) Normalize + validate output của generator
	FillMissingIDs(raw)
	if err := ValidateSurveyPayload(raw); err != nil {
		return nil, err
	}
	ApplyDefaults(raw)

	// 4) Ghi cache cho các request giống hệt sau này (race ghi trùng
	// key được SaveCache nuốt)
	if err := SaveCache(g.db, req.Description, req.NumQuestions, req.Language, *raw); err != nil {
		return nil, err
	}

	return buildSurvey(req.Description, raw), nil
}

// buildSurvey gắn display id dẫn xuất từ brief (không phải cache key).
func buildSurvey(description string, p *models.SurveyPayload) *models.Survey {
	return &models.Survey{
		ID:          "srv_" + SafeID(description),
		Title:       p.Title,
		Description: p.Description,
		Questions:   p.Questions,
	}
}

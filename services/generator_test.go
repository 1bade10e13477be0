package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/survey-gen-server/models"
)

// stubAdapter thay OpenAIAdapter trong test.
type stubAdapter struct {
	payload *models.SurveyPayload
	err     error
	calls   int
}

func (s *stubAdapter) GenerateSurvey(ctx context.Context, description string, numQuestions int, language string) (*models.SurveyPayload, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	// copy để orchestrator mutate không ảnh hưởng fixture
	cp := *s.payload
	cp.Questions = append([]models.Question(nil), s.payload.Questions...)
	return &cp, nil
}

func cacheRows(t *testing.T, g *SurveyGenerator) int64 {
	t.Helper()
	var count int64
	require.NoError(t, g.db.Model(&models.SurveyCache{}).Count(&count).Error)
	return count
}

func TestGenerateMockMode(t *testing.T) {
	db := newTestDB(t)
	g := NewSurveyGenerator(db, nil, true)

	survey, err := g.Generate(context.Background(), GenerateRequest{
		Description:  "Coffee Shop Feedback",
		NumQuestions: 8,
		Language:     "en",
	})
	require.NoError(t, err)

	assert.Equal(t, "srv_coffee_shop_feedback", survey.ID)
	assert.Len(t, survey.Questions, 5) // template chỉ có 5 câu
	assert.Equal(t, int64(1), cacheRows(t, g))

	// required được pin true sau normalize
	for _, q := range survey.Questions {
		require.NotNil(t, q.Required, "question %s", q.ID)
	}
}

func TestGenerateSecondCallHitsCache(t *testing.T) {
	db := newTestDB(t)
	adapter := &stubAdapter{payload: payloadPtr(GenerateMockSurvey("Remote brief", 5, "en"))}
	g := NewSurveyGenerator(db, adapter, false)

	req := GenerateRequest{Description: "Remote brief", NumQuestions: 5, Language: "en"}

	first, err := g.Generate(context.Background(), req)
	require.NoError(t, err)

	// lần 2 khác whitespace/hoa thường → vẫn hit cache, không gọi adapter
	req2 := GenerateRequest{Description: "  remote   BRIEF ", NumQuestions: 5, Language: "en"}
	second, err := g.Generate(context.Background(), req2)
	require.NoError(t, err)

	assert.Equal(t, 1, adapter.calls)
	assert.Equal(t, int64(1), cacheRows(t, g))
	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, first.Questions, second.Questions)
}

func TestGenerateFallbackOnTransientErrors(t *testing.T) {
	transient := []error{
		&GenerationError{Kind: GenerationQuota, Err: errors.New("quota hit")},
		&GenerationError{Kind: GenerationRateLimited, Err: errors.New("slow down")},
		&GenerationError{Kind: GenerationTimeout, Err: errors.New("deadline")},
		// lỗi không mang tag nhưng message nhận ra được
		errors.New("HTTP 429 Too Many Requests"),
		errors.New("insufficient_quota: billing details"),
		errors.New("request timeout after 12s"),
		errors.New("rate limit reached for gpt-4o-mini"),
	}

	for _, errIn := range transient {
		t.Run(errIn.Error(), func(t *testing.T) {
			db := newTestDB(t)
			adapter := &stubAdapter{err: errIn}
			g := NewSurveyGenerator(db, adapter, false)

			survey, err := g.Generate(context.Background(), GenerateRequest{
				Description:  "Fallback brief",
				NumQuestions: 8,
				Language:     "en",
			})
			require.NoError(t, err)

			// fallback trả template local, vẫn cache như thường
			assert.Equal(t, "Survey: Fallback brief", survey.Title)
			assert.Len(t, survey.Questions, 5)
			assert.Equal(t, int64(1), cacheRows(t, g))
		})
	}
}

func TestGenerateUnknownErrorPropagates(t *testing.T) {
	db := newTestDB(t)
	cause := errors.New("invalid api key")
	adapter := &stubAdapter{err: &GenerationError{Kind: GenerationUnknown, Err: cause}}
	g := NewSurveyGenerator(db, adapter, false)

	_, err := g.Generate(context.Background(), GenerateRequest{
		Description:  "Broken brief here",
		NumQuestions: 8,
		Language:     "en",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	// lỗi fatal thì không được ghi cache
	assert.Equal(t, int64(0), cacheRows(t, g))
}

func TestGenerateNormalizesAdapterOutput(t *testing.T) {
	db := newTestDB(t)
	adapter := &stubAdapter{payload: &models.SurveyPayload{
		Title:       "Remote survey",
		Description: "from llm",
		Questions: []models.Question{
			{Type: models.QuestionSingleChoice, Text: "pick one", Choices: []models.Choice{
				{Label: "A"}, {Label: "B"},
			}},
			{Type: models.QuestionRating, Text: "rate it"},
			{Type: models.QuestionOpenText, Text: "tell us"},
		},
	}}
	g := NewSurveyGenerator(db, adapter, false)

	survey, err := g.Generate(context.Background(), GenerateRequest{
		Description:  "Needs normalization",
		NumQuestions: 3,
		Language:     "en",
	})
	require.NoError(t, err)

	assert.Equal(t, "q1", survey.Questions[0].ID)
	assert.Equal(t, "q2", survey.Questions[1].ID)
	assert.Equal(t, "q3", survey.Questions[2].ID)
	assert.Equal(t, "c1", survey.Questions[0].Choices[0].ID)
	assert.Equal(t, "c2", survey.Questions[0].Choices[1].ID)

	rating := survey.Questions[1]
	require.NotNil(t, rating.ScaleMin)
	require.NotNil(t, rating.ScaleMax)
	assert.Equal(t, 1, *rating.ScaleMin)
	assert.Equal(t, 5, *rating.ScaleMax)
}

func TestGenerateRejectsInvalidAdapterOutput(t *testing.T) {
	db := newTestDB(t)
	adapter := &stubAdapter{payload: &models.SurveyPayload{
		// thiếu title → vi phạm contract, không repair
		Questions: []models.Question{
			{Type: models.QuestionOpenText, Text: "a"},
			{Type: models.QuestionOpenText, Text: "b"},
			{Type: models.QuestionOpenText, Text: "c"},
		},
	}}
	g := NewSurveyGenerator(db, adapter, false)

	_, err := g.Generate(context.Background(), GenerateRequest{
		Description:  "Contract breaker",
		NumQuestions: 3,
		Language:     "en",
	})
	assert.ErrorIs(t, err, ErrInvalidSurvey)
	assert.Equal(t, int64(0), cacheRows(t, g))
}

func TestGenerateAppliesDefaultsToCachedPayload(t *testing.T) {
	db := newTestDB(t)

	// giả lập row cache cũ: rating chưa có scale bound
	stale := models.SurveyPayload{
		Title:       "Old cached survey",
		Description: "stored before defaults existed",
		Questions: []models.Question{
			{ID: "q1", Type: models.QuestionRating, Text: "rate"},
			{ID: "q2", Type: models.QuestionOpenText, Text: "say"},
			{ID: "q3", Type: models.QuestionOpenText, Text: "more"},
		},
	}
	require.NoError(t, SaveCache(db, "Stale brief", 3, "en", stale))

	g := NewSurveyGenerator(db, nil, true)
	survey, err := g.Generate(context.Background(), GenerateRequest{
		Description:  "Stale brief",
		NumQuestions: 3,
		Language:     "en",
	})
	require.NoError(t, err)

	assert.Equal(t, "Old cached survey", survey.Title)
	rating := survey.Questions[0]
	require.NotNil(t, rating.ScaleMin)
	require.NotNil(t, rating.ScaleMax)
	assert.Equal(t, 1, *rating.ScaleMin)
	assert.Equal(t, 5, *rating.ScaleMax)
}

func TestGenerateConcurrentIdenticalRequests(t *testing.T) {
	db := newTestDB(t)
	g := NewSurveyGenerator(db, nil, true)

	req := GenerateRequest{
		Description:  "Raced brief goes here",
		NumQuestions: 5,
		Language:     "en",
	}

	// hai request giống hệt chạy song song: cả hai có thể cùng miss và
	// cùng ghi, nhưng chỉ một row tồn tại và cả hai đều thành công
	var wg sync.WaitGroup
	surveys := make([]*models.Survey, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			surveys[i], errs[i] = g.Generate(context.Background(), req)
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, surveys[0].Title, surveys[1].Title)
	assert.Equal(t, surveys[0].Questions, surveys[1].Questions)
	assert.Equal(t, int64(1), cacheRows(t, g))
}

func payloadPtr(p models.SurveyPayload) *models.SurveyPayload { return &p }

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/vnkhanh/survey-gen-server/models"
)

// GeneratorAdapter là capability sinh survey từ brief. Orchestrator chỉ
// biết interface này nên test thay bằng stub được.
type GeneratorAdapter interface {
	GenerateSurvey(ctx context.Context, description string, numQuestions int, language string) (*models.SurveyPayload, error)
}

// System prompt hướng model tới survey trung tính, trộn loại câu hỏi,
// và nhắc CHỈ trả JSON đúng schema.
const surveySystemPrompt = "You are a survey design assistant. Given a short brief, produce a balanced survey " +
	"that mixes question types (single/multi choice, rating scales, open text). " +
	"Keep language clear and neutral. Return ONLY JSON that matches the provided schema."

// Schema viết tay thay vì generate từ struct để chắc chắn
// additionalProperties: false ở mọi object (strict mode của Structured
// Outputs yêu cầu vậy, model không bịa field được).
var surveyJSONSchema = json.RawMessage(`{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "title": { "type": "string" },
    "description": { "type": "string" },
    "questions": {
      "type": "array",
      "minItems": 3,
      "maxItems": 50,
      "items": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "id": { "type": "string" },
          "type": {
            "type": "string",
            "enum": ["multiple_choice_single", "multiple_choice_multi", "rating", "open_text"]
          },
          "text": { "type": "string" },
          "required": { "type": "boolean" },
          "choices": {
            "type": ["array", "null"],
            "items": {
              "type": "object",
              "additionalProperties": false,
              "properties": {
                "id": { "type": "string" },
                "label": { "type": "string" }
              },
              "required": ["id", "label"]
            }
          },
          "scale_min": { "type": ["integer", "null"] },
          "scale_max": { "type": ["integer", "null"] },
          "placeholder": { "type": ["string", "null"] }
        },
        "required": ["id", "type", "text"]
      }
    }
  },
  "required": ["title", "description", "questions"]
}`)

// OpenAIAdapter gọi Chat Completions với Structured Outputs
// (response_format json_schema) để nhận JSON đúng schema survey.
// Tạo một lần lúc khởi động, dùng chung cho mọi request.
type OpenAIAdapter struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewOpenAIAdapter(apiKey, model string, timeoutMS int) *OpenAIAdapter {
	if model == "" {
		model = "gpt-4o-mini"
	}
	if timeoutMS <= 0 {
		timeoutMS = 12000
	}
	return &OpenAIAdapter{
		client:  openai.NewClient(apiKey),
		model:   model,
		timeout: time.Duration(timeoutMS) * time.Millisecond,
	}
}

func (a *OpenAIAdapter) GenerateSurvey(ctx context.Context, description string, numQuestions int, language string) (*models.SurveyPayload, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	userInstruction := fmt.Sprintf(
		"Brief: %s\n"+
			"Target number of questions: %d\n"+
			"Language: %s\n"+
			"Constraints:\n"+
			"- Use rating scale (1-5) when using rating type.\n"+
			"- Provide 4-6 choices for multiple choice questions.\n"+
			"- Ensure IDs are unique and stable strings (e.g., q1, q2, c1, c2...).\n"+
			"- Mix types across the questionnaire and avoid redundancy.\n",
		description, numQuestions, language)

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: surveySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userInstruction},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "survey_output",
				Strict: true,
				Schema: surveyJSONSchema,
			},
		},
	})
	if err != nil {
		return nil, classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &GenerationError{Kind: GenerationUnknown, Err: errors.New("empty completion")}
	}

	var payload models.SurveyPayload
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &payload); err != nil {
		return nil, &GenerationError{
			Kind: GenerationUnknown,
			Err:  fmt.Errorf("completion is not valid survey JSON: %w", err),
		}
	}
	return &payload, nil
}

// classifyOpenAIError map lỗi SDK/transport sang GenerationError kind.
func classifyOpenAIError(err error) error {
	kind := GenerationUnknown

	var apiErr *openai.APIError
	var urlErr *url.Error

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = GenerationTimeout
	case errors.As(err, &apiErr):
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			// OpenAI trả 429 cho cả hết quota lẫn rate limit,
			// phân biệt bằng error code
			if code, ok := apiErr.Code.(string); ok && code == "insufficient_quota" {
				kind = GenerationQuota
			} else {
				kind = GenerationRateLimited
			}
		case http.StatusRequestTimeout, http.StatusGatewayTimeout:
			kind = GenerationTimeout
		}
	case errors.As(err, &urlErr):
		if urlErr.Timeout() {
			kind = GenerationTimeout
		}
	}

	return &GenerationError{Kind: kind, Err: err}
}

package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/survey-gen-server/config"
	"github.com/vnkhanh/survey-gen-server/services"
)

var surveyGen *services.SurveyGenerator

// InitSurveyGenerator nhận orchestrator đã wire sẵn adapter từ main.
func InitSurveyGenerator(g *services.SurveyGenerator) {
	surveyGen = g
}

type generateSurveyReq struct {
	Description string `json:"description" binding:"required,min=5,max=500"`
	// *int để phân biệt "không gửi" (default 8) với 0 tường minh (422)
	NumQuestions *int   `json:"num_questions" binding:"omitempty,gte=3,lte=20"`
	Language     string `json:"language"`
}

/* ========== POST /api/surveys/generate ========== */

func GenerateSurvey(c *gin.Context) {
	var req generateSurveyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}
	numQuestions := 8
	if req.NumQuestions != nil {
		numQuestions = *req.NumQuestions
		// validator coi con trỏ tới 0 là "empty" nên omitempty bỏ qua
		// gte/lte — chặn tay để 0 tường minh vẫn bị từ chối
		if numQuestions < 3 || numQuestions > 20 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"message": "Payload không hợp lệ",
				"error":   "num_questions phải trong khoảng 3-20",
			})
			return
		}
	}
	if req.Language == "" {
		req.Language = "en"
	}

	survey, err := surveyGen.Generate(c.Request.Context(), services.GenerateRequest{
		Description:  req.Description,
		NumQuestions: numQuestions,
		Language:     req.Language,
	})
	if err != nil {
		// log chi tiết server-side; client chỉ nhận message chung
		// (error text upstream có thể chứa thông tin nhạy cảm)
		log.Printf("generate survey failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể tạo khảo sát"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"survey": survey})
}

/* ========== POST /api/surveys/:id/responses ========== */

type saveResponsesReq struct {
	// map questionId -> giá trị bất kỳ (string | number | array | object)
	Answers map[string]any `json:"answers" binding:"required"`
}

func RecordResponse(c *gin.Context) {
	surveyID := c.Param("id")

	var req saveResponsesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}

	rid, err := services.SaveResponse(config.DB, surveyID, req.Answers)
	if err != nil {
		log.Printf("save response failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể lưu phản hồi"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"response_id": rid,
	})
}

package controllers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vnkhanh/survey-gen-server/config"
	"github.com/vnkhanh/survey-gen-server/models"
	"github.com/vnkhanh/survey-gen-server/utils"
)

/* ========== GET /api/admin/surveys/:id/export ========== */

// ExportResponses xuất toàn bộ phản hồi của một survey id ra CSV,
// mỗi dòng một cặp (response, question). Nếu Supabase được cấu hình
// thì upload và trả URL, không thì trả file trực tiếp.
func ExportResponses(c *gin.Context) {
	surveyID := c.Param("id")

	var rows []models.SurveyResponse
	if err := config.DB.
		Where("survey_id = ?", surveyID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể đọc phản hồi"})
		return
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"response_id", "survey_id", "question_id", "answer", "created_at"})

	for _, r := range rows {
		// map iteration không có thứ tự — sort qid để file ổn định
		qids := make([]string, 0, len(r.Answers))
		for qid := range r.Answers {
			qids = append(qids, qid)
		}
		sort.Strings(qids)

		for _, qid := range qids {
			_ = w.Write([]string{
				fmt.Sprintf("%d", r.ID),
				r.SurveyID,
				qid,
				encodeAnswer(r.Answers[qid]),
				r.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể ghi CSV"})
		return
	}

	filename := fmt.Sprintf("responses_%s.csv", uuid.New().String())

	if config.App.SupabaseURL != "" && config.App.SupabaseKey != "" {
		url, err := utils.UploadExport(buf.Bytes(), filename, "text/csv")
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"url": url, "count": len(rows)})
			return
		}
		log.Printf("export upload failed, serving inline: %v", err)
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// encodeAnswer ép giá trị answer bất kỳ về một cell CSV.
func encodeAnswer(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	}
}

package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/vnkhanh/survey-gen-server/models"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeDescription chuẩn hóa brief trước khi băm:
// trim 2 đầu, gộp whitespace liên tiếp thành 1 space, lowercase.
// Nhờ đó cache không bị miss chỉ vì khác khoảng trắng / hoa thường.
func NormalizeDescription(text string) string {
	t := strings.TrimSpace(text)
	t = whitespaceRe.ReplaceAllString(t, " ")
	return strings.ToLower(t)
}

// CacheKey băm (description chuẩn hóa, num_questions, language) thành
// sha256 hex. Cùng triple chuẩn hóa → cùng key; đổi số câu hỏi hoặc
// ngôn ngữ → key khác.
func CacheKey(description string, numQuestions int, language string) string {
	payload := fmt.Sprintf("%s|%d|%s",
		NormalizeDescription(description), numQuestions, strings.ToLower(language))
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// FetchCached tra cache theo key. Trả (nil, nil) khi miss.
func FetchCached(db *gorm.DB, description string, numQuestions int, language string) (*models.SurveyPayload, error) {
	key := CacheKey(description, numQuestions, language)

	var row models.SurveyCache
	err := db.Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row.SurveyJSON, nil
}

// SaveCache insert một row cache mới. Hai request giống hệt nhau chạy
// song song có thể cùng miss rồi cùng insert; request thua race dính
// unique violation — đó là kết quả mong đợi, không phải lỗi, nên nuốt
// luôn (row thắng cuộc phục vụ các lookup sau).
func SaveCache(db *gorm.DB, description string, numQuestions int, language string, payload models.SurveyPayload) error {
	row := models.SurveyCache{
		Key:             CacheKey(description, numQuestions, language),
		DescriptionNorm: NormalizeDescription(description),
		NumQuestions:    numQuestions,
		Language:        language,
		SurveyJSON:      payload,
	}
	if err := db.Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}
	return nil
}

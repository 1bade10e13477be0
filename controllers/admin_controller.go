package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/survey-gen-server/config"
	"github.com/vnkhanh/survey-gen-server/models"
)

// GetStats trả số row cache và response cho admin theo dõi.
// Cache không có eviction nên số liệu này là cách duy nhất thấy được
// mức tăng trưởng.
func GetStats(c *gin.Context) {
	var cacheCount, responseCount int64

	if err := config.DB.Model(&models.SurveyCache{}).Count(&cacheCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể đọc thống kê"})
		return
	}
	if err := config.DB.Model(&models.SurveyResponse{}).Count(&responseCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể đọc thống kê"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cached_surveys": cacheCount,
		"responses":      responseCount,
	})
}

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/survey-gen-server/controllers"
	"github.com/vnkhanh/survey-gen-server/middleware"
)

func SetupRoutes(r *gin.Engine) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")
	{
		surveys := api.Group("/surveys")
		{
			surveys.POST("/generate", middleware.RateLimitGenerate(), controllers.GenerateSurvey)
			surveys.POST("/:id/responses", controllers.RecordResponse)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/login", controllers.Login)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AuthAdmin())
		{
			admin.GET("/stats", controllers.GetStats)
			admin.GET("/surveys/:id/export", controllers.ExportResponses)
		}
	}

	// Alias cho frontend cũ còn gọi prefix /v1 — cùng handler, chỉ khác path
	v1 := r.Group("/v1")
	{
		v1.POST("/surveys/generate", middleware.RateLimitGenerate(), controllers.GenerateSurvey)
		v1.POST("/surveys/:id/responses", controllers.RecordResponse)
	}
}

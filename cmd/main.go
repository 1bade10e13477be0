package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/survey-gen-server/config"
	"github.com/vnkhanh/survey-gen-server/controllers"
	"github.com/vnkhanh/survey-gen-server/routes"
	"github.com/vnkhanh/survey-gen-server/services"
)

func main() {
	// Nạp .env + cấu hình, kết nối DB + AutoMigrate
	config.LoadSettings()
	config.ConnectDB()

	// Adapter OpenAI tạo một lần, dùng chung cho mọi request.
	// MOCK_LLM=1 thì orchestrator bỏ qua adapter, chỉ dùng template local.
	adapter := services.NewOpenAIAdapter(
		config.App.OpenAIAPIKey,
		config.App.OpenAIModel,
		config.App.OpenAITimeoutMS,
	)
	controllers.InitSurveyGenerator(
		services.NewSurveyGenerator(config.DB, adapter, config.App.MockLLM),
	)
	if config.App.MockLLM {
		log.Println("MOCK_LLM enabled: serving deterministic surveys only")
	}

	// Tạo instance router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Route test server
	r.GET("/", func(c *gin.Context) {
		c.String(200, "Survey generator is running")
	})

	if err := r.SetTrustedProxies(nil); err != nil {
		panic(err)
	}

	// Setup routes khác
	routes.SetupRoutes(r)

	port := config.App.Port
	log.Printf("Server listening on port %s\n", port)
	r.Run(":" + port)
}

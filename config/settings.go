package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Settings struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// MockLLM bật generator local thay vì gọi OpenAI (dev/offline)
	MockLLM bool

	OpenAIAPIKey    string
	OpenAIModel     string
	OpenAITimeoutMS int

	// bcrypt hash của mật khẩu admin; rỗng = tắt admin API
	AdminPasswordHash string

	SupabaseURL string
	SupabaseKey string
}

var App Settings

// LoadSettings đọc .env (nếu có) rồi nạp toàn bộ cấu hình từ env một lần
// lúc khởi động.
func LoadSettings() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using OS environment only")
	}

	App = Settings{
		Port:              getEnv("PORT", "8080"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "surveyuser"),
		DBPassword:        getEnv("DB_PASSWORD", "surveypass"),
		DBName:            getEnv("DB_NAME", "surveydb"),
		MockLLM:           getEnvBool("MOCK_LLM", false),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAITimeoutMS:   getEnvInt("OPENAI_TIMEOUT_MS", 12000),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		SupabaseURL:       os.Getenv("SUPABASE_URL"),
		SupabaseKey:       os.Getenv("SUPABASE_KEY"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "True":
		return true
	case "0", "false", "False":
		return false
	}
	return def
}

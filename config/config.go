package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment at startup.
type Config struct {
	DatabaseURL        string
	ServerPort         string
	AllowedOrigins     []string
	Environment        string
	SecretKey          string
	SessionExpireHours int
	UploadDir          string
	UploadURLPath      string
	OpenAIAPIKey       string
	UseMockOCR         bool
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg := &Config{
		DatabaseURL:        os.Getenv("DB_URL"),
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		SecretKey:          os.Getenv("SECRET_KEY"),
		SessionExpireHours: getEnvInt("SESSION_EXPIRE_HOURS", 720),
		UploadDir:          getEnv("UPLOAD_DIR", "uploads/images"),
		UploadURLPath:      strings.TrimRight(getEnv("UPLOAD_URL_PATH", "/uploads"), "/"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		UseMockOCR:         strings.EqualFold(os.Getenv("USE_MOCK_OCR"), "true"),
	}

	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	if cfg.SecretKey == "" {
		if strings.EqualFold(cfg.Environment, "production") {
			return nil, fmt.Errorf("SECRET_KEY must be set in production")
		}
		cfg.SecretKey = "dev-secret-change-me"
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Printf("Invalid %s=%q, using default %d", key, value, fallback)
		return fallback
	}
	return n
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL  string
	JWTSecretKey string
	ServerPort   int

	LogLevel  string
	LogFormat string

	CORSAllowedOrigins []string

	// RejectDuplicatePicks turns on rejection of a repeated
	// (year, round, pick number, giving team) inside one trade.
	RejectDuplicatePicks bool
	// ExposeErrorDetails adds the underlying error text to 500 responses.
	ExposeErrorDetails bool

	AdminAPIKey string

	Gemini GeminiConfig
	R2     R2Config
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

// Enabled reports whether the trade chat can be served.
func (c GeminiConfig) Enabled() bool {
	return c.APIKey != ""
}

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicBaseURL   string
}

// Enabled reports whether every setting needed for trade report export is present.
func (c R2Config) Enabled() bool {
	return c.AccountID != "" && c.AccessKeyID != "" && c.SecretAccessKey != "" &&
		c.BucketName != "" && c.PublicBaseURL != ""
}

const defaultGeminiModel = "gemini-2.0-flash"

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	rejectDuplicates, err := getEnvBool("REJECT_DUPLICATE_PICKS", false)
	if err != nil {
		return nil, err
	}
	exposeDetails, err := getEnvBool("EXPOSE_ERROR_DETAILS", false)
	if err != nil {
		return nil, err
	}

	logFormat := getEnvOrDefault("LOG_FORMAT", "json")
	if logFormat != "json" && logFormat != "console" {
		return nil, fmt.Errorf("LOG_FORMAT must be json or console, got %q", logFormat)
	}

	cfg := &Config{
		DatabaseURL:          dbURL,
		JWTSecretKey:         jwtKey,
		ServerPort:           port,
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            logFormat,
		CORSAllowedOrigins:   splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		RejectDuplicatePicks: rejectDuplicates,
		ExposeErrorDetails:   exposeDetails,
		AdminAPIKey:          os.Getenv("ADMIN_API_KEY"),
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  getEnvOrDefault("GEMINI_MODEL", defaultGeminiModel),
		},
		R2: R2Config{
			AccountID:       os.Getenv("R2_ACCOUNT_ID"),
			AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
			BucketName:      os.Getenv("R2_BUCKET_NAME"),
			PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
		},
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return b, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Pipeline PipelineConfig
}

type AppConfig struct {
	Host               string
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	Debug              bool
}

type DatabaseConfig struct {
	Kind     string // "postgresql" is the only supported kind
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type AIConfig struct {
	LLMProvider   string // "gemini", "ollama", "openai"
	LLMModel      string
	OllamaBaseURL string
	OpenAIBaseURL string
	GoogleAPIKey  string
	OpenAIAPIKey  string
}

type PipelineConfig struct {
	HumanIntervention  bool // default for the per-request approval flag
	AutoApproveQueries bool
	MaxQueryResults    int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Host:               getEnv("HOST", "0.0.0.0"),
			Port:               getEnv("PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			Debug:              getEnvAsBool("DEBUG", false),
		},
		Database: DatabaseConfig{
			Kind:     getEnv("DB_TYPE", "postgresql"),
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     getEnv("POSTGRES_USER", ""),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			Name:     getEnv("POSTGRES_DB", ""),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:      getEnv("LLM_MODEL", "gemini-2.5-flash"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			GoogleAPIKey:  getEnv("GOOGLE_API_KEY", ""),
			OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		},
		Pipeline: PipelineConfig{
			HumanIntervention:  getEnvAsBool("HUMAN_INTERVENTION", false),
			AutoApproveQueries: getEnvAsBool("AUTO_APPROVE_QUERIES", true),
			MaxQueryResults:    getEnvAsInt("MAX_QUERY_RESULTS", 10),
		},
	}
}

// DSN builds the postgres connection string from the discrete parameters.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	return strings.EqualFold(strValue, "true")
}

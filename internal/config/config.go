package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Search SearchConfig
	Ai     AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type SearchConfig struct {
	Provider string // "remote" or "pgvector"

	// Remote search service
	BaseURL string
	APIKey  string
	Index   string

	// pgvector variant
	DatabaseDSN string
}

type AIConfig struct {
	LLMProvider       string // "ollama"
	LLMModel          string // default model, overridable per session
	OllamaBaseURL     string
	EmbeddingProvider string // "ollama"; only used by the pgvector variant
	EmbeddingModel    string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Search: SearchConfig{
			Provider:    getEnv("SEARCH_PROVIDER", "remote"),
			BaseURL:     getEnv("SEARCH_BASE_URL", "http://localhost:8200"),
			APIKey:      getEnv("SEARCH_API_KEY", ""),
			Index:       getEnv("SEARCH_INDEX", "research_papers"),
			DatabaseDSN: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "mistral-large2"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			EmbeddingModel:    getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

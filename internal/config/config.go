package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Knowledge KnowledgeConfig
	Ai        AIConfig
	Retrieval RetrievalConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type KnowledgeConfig struct {
	// RootPath is the directory holding the markdown corpus.
	RootPath string
	// IndexTopic is the pub/sub topic for async section indexing.
	IndexTopic string
}

type AIConfig struct {
	EmbeddingProvider  string // "ollama"
	OllamaBaseURL      string
	OllamaEmbedModel   string
	LLMProvider        string // "ollama", "huggingface"
	LLMModels          []string
	LLMAttemptTimeout  time.Duration
	HuggingFaceAPIKey  string
	HuggingFaceBaseURL string
}

type RetrievalConfig struct {
	HybridWeight        float64
	SimilarityThreshold float64
	TopK                int
	CacheTTL            time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Knowledge: KnowledgeConfig{
			RootPath:   getEnv("KB_ROOT_PATH", "./knowledge-base"),
			IndexTopic: getEnv("INDEX_SECTION_TOPIC_NAME", "INDEX_KB_SECTIONS"),
		},
		Ai: AIConfig{
			EmbeddingProvider:  getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbedModel:   getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:        getEnv("LLM_PROVIDER", "ollama"),
			LLMModels:          getEnvAsList("LLM_MODELS", "llama3.2,qwen2.5:3b,gemma2:2b"),
			LLMAttemptTimeout:  getEnvAsDuration("LLM_ATTEMPT_TIMEOUT", 60*time.Second),
			HuggingFaceAPIKey:  getEnv("HUGGINGFACE_API_KEY", ""),
			HuggingFaceBaseURL: getEnv("HUGGINGFACE_BASE_URL", ""),
		},
		Retrieval: RetrievalConfig{
			HybridWeight:        getEnvAsFloat("HYBRID_VECTOR_WEIGHT", 0.7),
			SimilarityThreshold: getEnvAsFloat("SIMILARITY_THRESHOLD", 0.35),
			TopK:                getEnvAsInt("RETRIEVAL_TOP_K", 5),
			CacheTTL:            getEnvAsDuration("RESPONSE_CACHE_TTL", time.Hour),
		},
	}
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsList parses a comma-separated value, dropping empty entries
func getEnvAsList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	var values []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

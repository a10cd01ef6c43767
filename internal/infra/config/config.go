package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting. Values come from the environment
// (a .env file is loaded first when present) with working defaults.
type Config struct {
	Env  string
	Port string

	// Embedding service
	OllamaURL      string
	EmbeddingModel string
	EmbedBatchSize int
	EmbedTimeout   int // seconds
	EmbedRPS       float64
	EmbedCacheSize int

	// Generation service
	GeminiBaseURL  string
	GeminiAPIKey   string
	GeminiModel    string
	LLMTemperature float64
	LLMMaxTokens   int
	LLMTimeout     int // seconds

	// Retrieval
	TopK            int
	ScoreThreshold  float64
	RelaxFactor     float64
	MaxConcepts     int
	UseRewriting    bool
	RewriteMaxToken int

	// Index artifacts
	IndexDir  string
	IndexName string
}

// Load reads configuration from the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8000"),

		OllamaURL:      getEnv("OLLAMA_URL", "http://localhost:11434"),
		EmbeddingModel: getEnv("EMBEDDING_MODEL", "paraphrase-multilingual"),
		EmbedBatchSize: getEnvInt("EMBED_BATCH_SIZE", 32),
		EmbedTimeout:   getEnvInt("EMBED_TIMEOUT_SECONDS", 30),
		EmbedRPS:       getEnvFloat("EMBED_REQUESTS_PER_SECOND", 0),
		EmbedCacheSize: getEnvInt("EMBED_CACHE_SIZE", 512),

		GeminiBaseURL:  getEnv("GEMINI_BASE_URL", ""),
		GeminiAPIKey:   getSecret("GEMINI_API_KEY", "GEMINI_API_KEY_FILE", ""),
		GeminiModel:    getEnv("LLM_MODEL", "gemini-2.0-flash"),
		LLMTemperature: getEnvFloat("LLM_TEMPERATURE", 0.1),
		LLMMaxTokens:   getEnvInt("LLM_MAX_TOKENS", 2000),
		LLMTimeout:     getEnvInt("LLM_TIMEOUT_SECONDS", 60),

		TopK:            getEnvInt("RAG_TOP_K", 5),
		ScoreThreshold:  getEnvFloat("RAG_SCORE_THRESHOLD", 0.3),
		RelaxFactor:     getEnvFloat("RAG_RELAX_FACTOR", 0.8),
		MaxConcepts:     getEnvInt("RAG_MAX_CONCEPTS", 4),
		UseRewriting:    getEnvBool("RAG_USE_REWRITING", true),
		RewriteMaxToken: getEnvInt("RAG_REWRITE_MAX_TOKENS", 500),

		IndexDir:  getEnv("INDEX_DIR", "data/indexes"),
		IndexName: getEnv("INDEX_NAME", "legal_index"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getSecret reads envKey directly, then falls back to the file named by
// fileEnvKey (docker secrets style), then to the fallback value.
func getSecret(envKey, fileEnvKey, fallback string) string {
	if value, ok := os.LookupEnv(envKey); ok {
		return value
	}
	if filePath, ok := os.LookupEnv(fileEnvKey); ok {
		if content, err := os.ReadFile(filePath); err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

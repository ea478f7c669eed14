package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Keys      APIKeys
	Ai        AIConfig
	Agent     AgentConfig
	Retrieval RetrievalConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	LLMod        string
}

type AIConfig struct {
	EmbeddingProvider    string // "gemini" or "ollama"
	OllamaBaseURL        string
	OllamaEmbeddingModel string
	LLMProvider          string // "llmod" or "ollama"
	LLMModel             string
	LLMBaseURL           string
}

type AgentConfig struct {
	MaxPromptChars int
	EnableRepair   bool
}

type RetrievalConfig struct {
	TopK              int
	MaxAdsPerCategory int
	GlobalAdsBudget   int
	MaxCtxChars       int
	LocalFTSDB        string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			LLMod:        getEnv("LLMOD_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider:    getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:        getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbeddingModel: getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:          getEnv("LLM_PROVIDER", "llmod"),
			LLMModel:             getEnv("LLM_MODEL", "RekaAI/reka-flash-3"),
			LLMBaseURL:           getEnv("LLM_BASE_URL", "https://api.llmod.ai"),
		},
		Agent: AgentConfig{
			MaxPromptChars: getEnvAsInt("MAX_PROMPT_CHARS", 4000),
			EnableRepair:   getEnvAsBool("ENABLE_REPAIR", false),
		},
		Retrieval: RetrievalConfig{
			TopK:              getEnvAsInt("RETRIEVAL_TOP_K", 5),
			MaxAdsPerCategory: getEnvAsInt("RETRIEVAL_MAX_ADS_PER_CATEGORY", 25),
			GlobalAdsBudget:   getEnvAsInt("RETRIEVAL_GLOBAL_ADS_BUDGET", 50),
			MaxCtxChars:       getEnvAsInt("RETRIEVAL_MAX_CTX_CHARS", 7000),
			LocalFTSDB:        getEnv("LOCAL_ADS_FTS_DB", "data/ads_fts.db"),
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

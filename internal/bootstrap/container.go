package bootstrap

import (
	"log"
	"os"

	"adwise-be/internal/config"
	"adwise-be/internal/controller"
	"adwise-be/internal/pkg/logger"
	"adwise-be/internal/repository/implementation"
	"adwise-be/internal/repository/memory"
	"adwise-be/internal/service"
	"adwise-be/pkg/agent"
	"adwise-be/pkg/embedding"
	"adwise-be/pkg/llm/factory"
	"adwise-be/pkg/retrieval"

	"gorm.io/gorm"
)

type Container struct {
	AgentController controller.IAgentController
}

// NewContainer wires the dependency graph. db may be nil; retrieval then
// runs entirely on the offline FTS fallback.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	stdLogger := log.New(os.Stdout, "", log.LstdFlags)

	// Initialize Embedding Provider based on Config
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbeddingModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	// Initialize LLM Provider based on Config
	llmBaseURL := cfg.Ai.LLMBaseURL
	apiKey := cfg.Keys.LLMod
	if cfg.Ai.LLMProvider == "ollama" {
		llmBaseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL,
		apiKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Retrieval: pgvector primary, SQLite FTS fallback
	fallback := retrieval.NewFTSFallback(cfg.Retrieval.LocalFTSDB, stdLogger)

	retrievalCfg := retrieval.DefaultConfig()
	retrievalCfg.TopK = cfg.Retrieval.TopK
	retrievalCfg.MaxAdsPerCategory = cfg.Retrieval.MaxAdsPerCategory
	retrievalCfg.GlobalAdsBudget = cfg.Retrieval.GlobalAdsBudget
	retrievalCfg.MaxCtxChars = cfg.Retrieval.MaxCtxChars

	var orchestrator *retrieval.Orchestrator
	if db != nil {
		adExampleRepo := implementation.NewAdExampleRepository(db)
		orchestrator = retrieval.NewOrchestrator(embeddingProvider, adExampleRepo, fallback, retrievalCfg, stdLogger)
	} else {
		log.Printf("[WARN] No database configured; retrieval will use the local FTS fallback only")
		orchestrator = retrieval.NewOrchestrator(nil, nil, fallback, retrievalCfg, stdLogger)
	}

	// Agent Pipeline
	pipelineCfg := agent.DefaultConfig()
	pipelineCfg.MaxPromptChars = cfg.Agent.MaxPromptChars
	pipelineCfg.EnableRepair = cfg.Agent.EnableRepair
	pipeline := agent.NewPipeline(llmProvider, orchestrator, pipelineCfg, stdLogger)

	// Initialize In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository()

	agentService := service.NewAgentService(pipeline, sessionRepo, sysLogger)

	return &Container{
		AgentController: controller.NewAgentController(agentService),
	}
}

package bootstrap

import (
	"log"
	"os"

	"db-qa-be/internal/config"
	"db-qa-be/internal/controller"
	"db-qa-be/internal/pkg/logger"
	"db-qa-be/internal/repository/memory"
	"db-qa-be/internal/service"
	"db-qa-be/pkg/database"
	"db-qa-be/pkg/llm/factory"
	"db-qa-be/pkg/qa/pipeline"

	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	QaController controller.IQaController

	// Shared infrastructure exposed for the server and shutdown hooks
	SysLogger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	pipelineLogger := log.New(os.Stdout, "", log.LstdFlags)

	// 2. Database Adapter
	adapter := database.NewAdapter(db)

	// 3. LLM Provider based on Config
	apiKey := cfg.Ai.GoogleAPIKey
	baseURL := cfg.Ai.OllamaBaseURL
	if cfg.Ai.LLMProvider == "openai" {
		apiKey = cfg.Ai.OpenAIAPIKey
		baseURL = cfg.Ai.OpenAIBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(cfg.Ai.LLMProvider, cfg.Ai.LLMModel, baseURL, apiKey)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. In-Memory Checkpoint Storage
	checkpointRepo := memory.NewCheckpointRepository()

	// 5. Pipeline
	qaPipeline := pipeline.New(
		llmProvider,
		adapter,
		checkpointRepo,
		pipeline.Config{
			MaxQueryResults:    cfg.Pipeline.MaxQueryResults,
			AutoApproveQueries: cfg.Pipeline.AutoApproveQueries,
		},
		pipelineLogger,
	)

	// 6. Services
	qaService := service.NewQaService(
		qaPipeline,
		adapter,
		cfg.Pipeline.HumanIntervention,
		sysLogger,
	)

	// 7. Controllers
	return &Container{
		QaController: controller.NewQaController(qaService),
		SysLogger:    sysLogger,
	}
}

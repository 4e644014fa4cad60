package bootstrap

import (
	"context"
	"log"

	"inspire-it-be/internal/config"
	"inspire-it-be/internal/controller"
	"inspire-it-be/internal/pkg/logger"
	"inspire-it-be/internal/repository/implementation"
	"inspire-it-be/internal/repository/memory"
	"inspire-it-be/internal/service"
	"inspire-it-be/pkg/embedding"
	"inspire-it-be/pkg/llm/factory"
	"inspire-it-be/pkg/rag/generate"
	"inspire-it-be/pkg/rag/retrieval"
	pgvectorretriever "inspire-it-be/pkg/rag/retrieval/pgvector"
	"inspire-it-be/pkg/rag/retrieval/remote"

	"gorm.io/gorm"
)

// Pinger verifies a search backend is reachable at startup
type Pinger interface {
	Ping(ctx context.Context) error
}

type Container struct {
	AssistantController controller.IAssistantController

	// Exposed for middleware registration in the server
	SessionRepo *memory.SessionRepository
	Logger      logger.ILogger

	retrievalPinger Pinger
}

// NewContainer wires the dependency graph. db may be nil when the remote
// search variant is configured.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Search backend: the orchestration core is parameterized by the
	// Retriever interface, so the two variants differ only here.
	var retriever retrieval.Retriever
	var pinger Pinger
	if cfg.Search.Provider == "pgvector" {
		if db == nil {
			log.Fatalf("[FATAL] SEARCH_PROVIDER=pgvector requires DB_CONNECTION_STRING")
		}
		embeddingProvider := embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.EmbeddingModel,
		)
		chunkRepo := implementation.NewDocumentChunkRepository(db)
		pgv := pgvectorretriever.NewRetriever(embeddingProvider, chunkRepo)
		retriever, pinger = pgv, pgv
		log.Printf("[INFO] Using Search Provider: PGVECTOR (%s)", cfg.Ai.EmbeddingModel)
	} else {
		client := remote.NewClient(cfg.Search.BaseURL, cfg.Search.APIKey, cfg.Search.Index)
		retriever, pinger = client, client
		log.Printf("[INFO] Using Search Provider: REMOTE (%s)", cfg.Search.Index)
	}

	llmProvider, err := factory.NewProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	generator := generate.NewGenerator(llmProvider)
	sessionRepo := memory.NewSessionRepository()

	assistantService := service.NewAssistantService(sessionRepo, retriever, generator, sysLogger)

	return &Container{
		AssistantController: controller.NewAssistantController(assistantService),
		SessionRepo:         sessionRepo,
		Logger:              sysLogger,
		retrievalPinger:     pinger,
	}
}

// VerifyBackend runs the one-time startup connectivity check. A failure is
// fatal to startup; there is no automatic reconnection.
func (c *Container) VerifyBackend(ctx context.Context) error {
	return c.retrievalPinger.Ping(ctx)
}

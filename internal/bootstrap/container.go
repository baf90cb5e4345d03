package bootstrap

import (
	"log"
	"os"

	"kb-assist-be/internal/config"
	"kb-assist-be/internal/controller"
	"kb-assist-be/internal/pkg/logger"
	"kb-assist-be/internal/repository/unitofwork"
	"kb-assist-be/internal/service"
	"kb-assist-be/pkg/cache"
	"kb-assist-be/pkg/corpus"
	"kb-assist-be/pkg/embedding"
	"kb-assist-be/pkg/feedback"
	"kb-assist-be/pkg/llm"
	"kb-assist-be/pkg/llm/factory"
	"kb-assist-be/pkg/retrieval"
	"kb-assist-be/pkg/vector"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AskController      controller.IAskController
	FeedbackController controller.IFeedbackController
	CorpusController   controller.ICorpusController

	// Background Services (Exposed for main.go to run)
	IndexerService IIndexerRunner
	CorpusService  service.ICorpusService
}

// IIndexerRunner is what main.go needs from the indexer
type IIndexerRunner = service.IIndexerService

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	stdLogger := log.New(os.Stdout, "", log.LstdFlags)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Corpus
	corpusLoader := corpus.NewLoader(cfg.Knowledge.RootPath, stdLogger)
	corpusHolder := corpus.NewHolder()
	responseCache := cache.New(cfg.Retrieval.CacheTTL, cache.DefaultCleanupInterval)

	// 4. AI Providers
	embeddingProvider := embedding.NewOllamaProvider(
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaEmbedModel,
	)
	log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)

	baseProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		firstOrEmpty(cfg.Ai.LLMModels),
		llmBaseURL(cfg),
		cfg.Ai.HuggingFaceAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	llmChain := llm.NewModelChain(baseProvider, cfg.Ai.LLMModels, cfg.Ai.LLMAttemptTimeout, stdLogger)
	log.Printf("[INFO] Using LLM Provider: %s (model chain: %v)", cfg.Ai.LLMProvider, cfg.Ai.LLMModels)

	// 5. Feedback-adapted retrieval pipeline
	patternSource := service.NewFeedbackPatternSource(uowFactory)
	feedbackAdapter := feedback.NewAdapter(patternSource, stdLogger)

	scorer := retrieval.NewKeywordScorer(retrieval.RichScorerConfig(), feedbackAdapter.Adapt)

	vectorStore := service.NewSectionVectorStore(uowFactory)
	vectorRetriever := vector.NewRetriever(embeddingProvider, vectorStore, stdLogger)

	orchestrator := retrieval.NewOrchestrator(scorer, vectorRetriever, stdLogger)

	retrievalDefaults := retrieval.Options{
		Mode:                retrieval.ModeHybrid,
		Limit:               cfg.Retrieval.TopK,
		SimilarityThreshold: cfg.Retrieval.SimilarityThreshold,
		HybridWeight:        cfg.Retrieval.HybridWeight,
	}

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Knowledge.IndexTopic, pubSub)
	indexerService := service.NewIndexerService(
		pubSub,
		cfg.Knowledge.IndexTopic,
		corpusHolder,
		uowFactory,
		embeddingProvider,
	)

	corpusService := service.NewCorpusService(
		corpusLoader,
		corpusHolder,
		responseCache,
		publisherService,
		uowFactory,
		sysLogger,
	)
	askService := service.NewAskService(
		orchestrator,
		corpusHolder,
		responseCache,
		llmChain,
		retrievalDefaults,
		sysLogger,
	)
	feedbackService := service.NewFeedbackService(uowFactory, feedbackAdapter, sysLogger)

	// 7. Controllers
	return &Container{
		AskController:      controller.NewAskController(askService),
		FeedbackController: controller.NewFeedbackController(feedbackService),
		CorpusController:   controller.NewCorpusController(corpusService),

		IndexerService: indexerService,
		CorpusService:  corpusService,
	}
}

func firstOrEmpty(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func llmBaseURL(cfg *config.Config) string {
	if cfg.Ai.LLMProvider == "huggingface" {
		return cfg.Ai.HuggingFaceBaseURL
	}
	return cfg.Ai.OllamaBaseURL
}

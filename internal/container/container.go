package container

import (
	"context"
	"log/slog"
	"os"

	"tourguide/app/observability/metrics"
	"tourguide/config"
	"tourguide/internal/api/catalog"
	"tourguide/internal/api/conversation"
	generativeAI "tourguide/internal/api/generative_ai"
	"tourguide/internal/api/location"
	"tourguide/internal/api/proximity"
	"tourguide/internal/api/recommendation"
	"tourguide/internal/types"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	PushSource *location.PushSource
	Tracker    *location.Tracker
	Engine     *proximity.Engine

	CatalogHandler        *catalog.HandlerImpl
	RecommendationHandler *recommendation.HandlerImpl
	ProximityHandler      *proximity.HandlerImpl
	ConversationHandler   *conversation.HandlerImpl

	unsubscribe func()
}

// NewContainer initializes and returns a new dependency container
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	metrics.InitAppMetrics()
	appMetrics := metrics.Get()

	// Catalog: STB repository behind the cache, fallback dataset wired in
	// the service.
	apiKey := os.Getenv(cfg.Catalog.APIKeyEnv)
	catalogRepo := catalog.NewSTBRepository(cfg.Catalog.BaseURL, apiKey, cfg.Catalog.CacheTTL, logger)
	catalogService := catalog.NewServiceImpl(catalogRepo, cfg.Catalog.Bounds, appMetrics, logger)
	catalogHandler := catalog.NewHandlerImpl(catalogService, cfg.Catalog.Bounds, logger)

	// Load the working set before anything subscribes; a feed outage here
	// lands on the fallback dataset, never an error.
	if err := catalogService.Refresh(ctx, recommendation.DefaultCenter()); err != nil {
		logger.Warn("Initial catalog refresh failed", slog.Any("error", err))
	}

	recommendationService := recommendation.NewServiceImpl(catalogService, logger)
	recommendationHandler := recommendation.NewHandlerImpl(recommendationService, cfg.Catalog.Bounds, logger)

	// Location pipeline: HTTP pushes feed the source, the tracker fans out
	// to the proximity engine.
	pushSource := location.NewPushSource()
	tracker := location.NewTracker(pushSource, cfg.Location.PollInterval, appMetrics, logger)

	engine := proximity.NewEngine(catalogService, proximity.Config{
		ThresholdMeters:  cfg.Proximity.ThresholdMeters,
		Cooldown:         cfg.Proximity.Cooldown,
		TrackingInterval: cfg.Proximity.TrackingInterval,
		AccuracyAdvisory: cfg.Proximity.AccuracyAdvisory,
	}, appMetrics, logger)

	unsubscribe := tracker.Subscribe(func(pos types.Position) {
		engine.OnPosition(pos)
	})
	if _, err := tracker.Start(ctx); err != nil {
		logger.Error("Failed to start location tracking", slog.Any("error", err))
		unsubscribe()
		return nil, err
	}

	proximityHandler := proximity.NewHandlerImpl(engine, pushSource, cfg.Catalog.Bounds, logger)

	// Conversation: real Gemini client when the key is present, otherwise a
	// stand-in whose failures degrade every reply to passthrough.
	var model conversation.LanguageModel
	aiClient, err := generativeAI.NewAIClient(ctx, generativeAI.Options{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}, appMetrics)
	if err != nil {
		logger.Warn("Language model unavailable, conversation will pass utterances through", slog.Any("error", err))
		model = generativeAI.Unavailable{Err: err}
	} else {
		model = aiClient
	}

	orchestrator := conversation.NewOrchestrator(model, engine, recommendationService, nil,
		appMetrics, cfg.LLM.HistorySize, cfg.LLM.ContextTopK, logger).WithLocator(tracker)
	conversationHandler := conversation.NewHandlerImpl(orchestrator, logger)

	return &Container{
		Config:                cfg,
		Logger:                logger,
		PushSource:            pushSource,
		Tracker:               tracker,
		Engine:                engine,
		CatalogHandler:        catalogHandler,
		RecommendationHandler: recommendationHandler,
		ProximityHandler:      proximityHandler,
		ConversationHandler:   conversationHandler,
		unsubscribe:           unsubscribe,
	}, nil
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	if c.Tracker != nil {
		c.Tracker.Stop()
	}
	c.Logger.Info("Container resources released")
}

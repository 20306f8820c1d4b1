package main

import (
	"context"
	"fmt"

	"github.com/IamHari01/NEXUS-TALENT/internal/cache"
	"github.com/IamHari01/NEXUS-TALENT/internal/config"
	"github.com/IamHari01/NEXUS-TALENT/internal/db"
	"github.com/IamHari01/NEXUS-TALENT/internal/gaps"
	"github.com/IamHari01/NEXUS-TALENT/internal/llm"
	"github.com/IamHari01/NEXUS-TALENT/internal/logger"
	"github.com/IamHari01/NEXUS-TALENT/internal/metrics"
	"github.com/IamHari01/NEXUS-TALENT/internal/observability"
	"github.com/IamHari01/NEXUS-TALENT/internal/parsing"
	"github.com/IamHari01/NEXUS-TALENT/internal/pathfind"
	"github.com/IamHari01/NEXUS-TALENT/internal/pipeline"
	"github.com/IamHari01/NEXUS-TALENT/internal/scoring"
	"github.com/IamHari01/NEXUS-TALENT/internal/sourcing"
	"go.uber.org/zap"
)

// app holds the fully wired engine and its supporting services.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	engine   *pipeline.Engine
	database *db.DB
	cleanup  []func()
}

func (a *app) close() {
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		a.cleanup[i]()
	}
}

// buildApp loads configuration and wires every stage of the analysis graph.
func buildApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.JSONLog, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	a := &app{cfg: cfg, logger: log}
	a.cleanup = append(a.cleanup, func() { _ = log.Sync() })

	shutdownTracing, err := observability.Setup(ctx, cfg.OTLPEndpoint, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("failed to set up tracing: %w", err)
	}
	a.cleanup = append(a.cleanup, func() { _ = shutdownTracing(context.Background()) })

	collector := metrics.NewCollector()

	store, err := cache.NewRedisStore(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cache store: %w", err)
	}
	a.cleanup = append(a.cleanup, func() { _ = store.Close() })
	gateway := cache.New(store, collector, log)

	gemini, err := llm.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini backend: %w", err)
	}
	a.cleanup = append(a.cleanup, func() { _ = gemini.Close() })
	router := llm.NewRouter(gemini, llm.NewOllama(cfg.OllamaURL, cfg.OllamaModel), log)

	searcher, err := pathfind.NewYouTubeSearcher(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create video searcher: %w", err)
	}

	parse := parsing.NewStage(parsing.New(router, nil, cfg.MaxResumeBytes(), log))
	source := sourcing.New(
		sourcing.NewWeaviateSearcher(cfg.WeaviateHost, cfg.WeaviateScheme),
		sourcing.NewAPIFetcher(cfg.JobsAPIURL, cfg.JobsAPIKey),
		gateway, log)
	score := scoring.New(scoring.NewCrossEncoder(cfg.ScorerURL), gateway, collector, log)
	gap := gaps.New(router, log)
	path := pathfind.New(searcher, gateway, log)

	a.engine = pipeline.NewEngine(pipeline.NewGraph(parse, source, score, gap, path), collector, log)

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			// Persistence is optional; run without it.
			log.Warn("database unavailable, persistence disabled", zap.Error(err))
		} else {
			if err := database.EnsureSchema(ctx); err != nil {
				log.Warn("failed to ensure database schema", zap.Error(err))
			}
			a.database = database
			a.cleanup = append(a.cleanup, database.Close)
		}
	}

	return a, nil
}

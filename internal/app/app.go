package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	_ "github.com/lib/pq"

	"github.com/courtflow/nba-stats-api/external/nbastats"
	"github.com/courtflow/nba-stats-api/internal/config"
	"github.com/courtflow/nba-stats-api/internal/domain/usage"
	"github.com/courtflow/nba-stats-api/internal/infrastructure/repository/memory"
	"github.com/courtflow/nba-stats-api/internal/infrastructure/repository/postgres"
	"github.com/courtflow/nba-stats-api/internal/interfaces/httpapi"
	"github.com/courtflow/nba-stats-api/internal/platform/cache"
	"github.com/courtflow/nba-stats-api/internal/platform/logging"
	"github.com/courtflow/nba-stats-api/internal/platform/resilience"
	"github.com/courtflow/nba-stats-api/internal/usecase"
)

// App holds the wired HTTP server and the resources it owns.
type App struct {
	Server *http.Server

	db     *sqlx.DB
	logger *logging.Logger
}

// New wires the whole service: stats provider client, player directory
// loaded from the provider roster, profile cache, services, and the
// HTTP router. The database is optional; without DB_URL usage capture
// is a no-op.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	client := nbastats.NewClient(nbastats.ClientConfig{
		BaseURL: cfg.NBAStatsBaseURL,
		APIKey:  cfg.NBAStatsAPIKey,
		Timeout: cfg.NBAStatsTimeout,
		Logger:  logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.NBAStatsCircuitEnabled,
			FailureThreshold: cfg.NBAStatsCircuitFailureCount,
			Cooldown:         cfg.NBAStatsCircuitOpenTimeout,
		},
	})

	roster, err := client.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load player roster: %w", err)
	}
	directory := memory.NewDirectory(roster)
	logger.Info("player directory loaded", "players", directory.Len())

	var db *sqlx.DB
	var usageRepo usage.Repository
	if cfg.DBURL != "" {
		db, err = otelsqlx.ConnectContext(ctx, "postgres", normalizeDBURL(cfg.DBURL, true),
			otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
			otelsql.WithQueryFormatter(formatDBQueryForTrace),
		)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		usageRepo = postgres.NewUsageRepository(db)
	} else {
		logger.Info("usage logging disabled", "reason", "DB_URL empty")
	}

	store := cache.NewStore(cfg.CacheMaxEntries, cfg.CacheTTL)

	profileSvc := usecase.NewProfileService(directory, client, store)
	lineupSvc := usecase.NewLineupService(profileSvc)
	recommendationSvc := usecase.NewRecommendationService(directory, profileSvc, logger, cfg.RecommendScanWorkers)
	usageSvc := usecase.NewUsageService(usageRepo, logger)

	handler := httpapi.NewHandler(profileSvc, lineupSvc, recommendationSvc, usageSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server: server,
		db:     db,
		logger: logger,
	}, nil
}

// Close releases resources owned by the app. The HTTP server is shut
// down separately by the caller.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

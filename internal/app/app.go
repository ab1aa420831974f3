package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/riskibarqy/match-predictor/internal/config"
	"github.com/riskibarqy/match-predictor/internal/domain/match"
	"github.com/riskibarqy/match-predictor/internal/domain/prediction"
	"github.com/riskibarqy/match-predictor/internal/domain/standing"
	"github.com/riskibarqy/match-predictor/internal/infrastructure/account/introspect"
	"github.com/riskibarqy/match-predictor/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/match-predictor/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/match-predictor/internal/interfaces/httpapi"
	"github.com/riskibarqy/match-predictor/internal/metrics"
	"github.com/riskibarqy/match-predictor/internal/platform/logging"
	"github.com/riskibarqy/match-predictor/internal/platform/resilience"
	"github.com/riskibarqy/match-predictor/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

const dbPingTimeout = 5 * time.Second

// App owns the HTTP server and the resources behind it.
type App struct {
	Server *http.Server
	db     *sqlx.DB
}

type repositories struct {
	matches     match.Repository
	predictions prediction.Repository
	standings   standing.Repository
	db          *sqlx.DB
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	matchSvc := usecase.NewMatchService(repos.matches)
	predictionSvc := usecase.NewPredictionService(repos.matches, repos.predictions, logger.Named("prediction"))
	standingSvc := usecase.NewStandingService(repos.standings)

	routerCfg := httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		metrics.RegisterRuntime(reg)
		collector = metrics.NewCollector(reg)

		predictionSvc.SetRecorder(collector)
		routerCfg.Sessions = collector
		routerCfg.Requests = collector
		routerCfg.MetricsHandler = metrics.Handler(reg)
	}

	if cfg.AccountEnabled() {
		routerCfg.Verifier = newAccountClient(cfg, collector, logger)
	} else {
		logger.Info("account service disabled, all sessions are anonymous", "reason", "ACCOUNT_BASE_URL empty")
	}

	handler := httpapi.NewHandler(matchSvc, predictionSvc, standingSvc, logger)
	router := httpapi.NewRouter(handler, logger, routerCfg)

	return &App{
		Server: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           router,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
		},
		db: repos.db,
	}, nil
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	if cfg.StorageDriver != config.StoragePostgres {
		logger.Info("using in-memory storage with seed data", "driver", cfg.StorageDriver)
		matchRepo := memory.NewMatchRepository(memory.SeedMatches())
		return repositories{
			matches:     matchRepo,
			predictions: memory.NewPredictionRepository(clockwork.NewRealClock()),
			standings:   memory.NewStandingRepository(memory.SeedStandings()),
		}, nil
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return repositories{}, err
	}
	logger.Info("postgres storage ready", "db_name", dbNameFromURL(cfg.DBURL), "max_open_conns", cfg.DBMaxOpenConns)

	return repositories{
		matches:     postgres.NewMatchRepository(db),
		predictions: postgres.NewPredictionRepository(db),
		standings:   postgres.NewStandingRepository(db),
		db:          db,
	}, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", NormalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

func newAccountClient(cfg config.Config, collector *metrics.Collector, logger *logging.Logger) *introspect.Client {
	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Enabled:          cfg.AccountCircuitEnabled,
		FailureThreshold: cfg.AccountCircuitFailureCount,
		OpenTimeout:      cfg.AccountCircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.AccountCircuitHalfOpenMaxReq,
	}, clockwork.NewRealClock())

	breakerLogger := logger.Named("account_breaker")
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		breakerLogger.Warn("account circuit state changed", "from", string(from), "to", string(to))
		if collector != nil {
			collector.SetCircuitState(to)
		}
	})

	httpClient := &http.Client{
		Timeout:   cfg.AccountTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	return introspect.NewClient(
		httpClient,
		cfg.AccountBaseURL,
		cfg.AccountIntrospectPath,
		cfg.AccountAdminKey,
		breaker,
		logger.Named("account"),
	)
}

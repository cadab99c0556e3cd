package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/fantasy-tour/internal/config"
	"github.com/riskibarqy/fantasy-tour/internal/domain/boost"
	"github.com/riskibarqy/fantasy-tour/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-tour/internal/domain/jobscheduler"
	"github.com/riskibarqy/fantasy-tour/internal/domain/league"
	"github.com/riskibarqy/fantasy-tour/internal/domain/match"
	"github.com/riskibarqy/fantasy-tour/internal/domain/player"
	"github.com/riskibarqy/fantasy-tour/internal/domain/team"
	"github.com/riskibarqy/fantasy-tour/internal/domain/tour"
	"github.com/riskibarqy/fantasy-tour/internal/domain/uow"
	cacherepo "github.com/riskibarqy/fantasy-tour/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fantasy-tour/internal/infrastructure/repository/guarded"
	"github.com/riskibarqy/fantasy-tour/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-tour/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-tour/internal/interfaces/httpapi"
	"github.com/riskibarqy/fantasy-tour/internal/platform/cache"
	idgen "github.com/riskibarqy/fantasy-tour/internal/platform/id"
	"github.com/riskibarqy/fantasy-tour/internal/platform/logging"
	"github.com/riskibarqy/fantasy-tour/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-tour/internal/scheduler"
	"github.com/riskibarqy/fantasy-tour/internal/usecase"
)

// App owns the HTTP server, the finalization scheduler and the storage
// handles they share.
type App struct {
	Server    *http.Server
	Scheduler *scheduler.Scheduler

	logger *logging.Logger
	db     *sqlx.DB
}

type storage struct {
	leagues    league.Repository
	teams      team.Repository
	players    player.Repository
	matches    match.Repository
	tours      tour.Repository
	squads     fantasy.SquadRepository
	squadTours fantasy.SquadTourRepository
	boosts     boost.Repository
	dispatches jobscheduler.Repository
	tx         uow.Transactor
	db         *sqlx.DB
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	store, err := newStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	catalog := wrapCatalog(cfg, store)
	ids := idgen.NewUUIDGenerator()
	rules := cfg.Rules

	tourSvc := usecase.NewTourService(store.tours, catalog.Matches, store.squadTours, store.tx, rules, idgen.Prefixed{Prefix: "st_", Next: ids}, logger)
	finalizationSvc := usecase.NewFinalizationService(
		catalog.Leagues,
		store.tours,
		tourSvc,
		store.dispatches,
		idgen.Prefixed{Prefix: "sweep_", Next: ids},
		usecase.FinalizationConfig{
			Grace:         cfg.FinalizationGrace,
			MaxWorkers:    cfg.FinalizationMaxWorkers,
			LeagueTimeout: cfg.FinalizationLeagueTimeout,
		},
		logger,
	)

	var sweeps *scheduler.Scheduler
	var trigger httpapi.SweepTrigger
	if cfg.FinalizationEnabled {
		sweeps = scheduler.New(finalizationSvc, logger, cfg.FinalizationInterval)
		trigger = sweeps
	}

	handler := httpapi.NewHandler(
		usecase.NewCatalogService(catalog, store.tours),
		usecase.NewRosterService(catalog.Leagues, catalog.Players, rules, logger),
		usecase.NewSquadService(catalog, store.tours, store.squads, store.squadTours, store.tx, rules, idgen.Prefixed{Prefix: "sqd_", Next: ids}, logger),
		usecase.NewTransferService(catalog.Players, catalog.Matches, store.tours, store.squads, store.squadTours, store.tx, rules, logger),
		usecase.NewBoostService(store.boosts, store.tours, catalog.Matches, store.squads, store.tx, rules, idgen.Prefixed{Prefix: "bst_", Next: ids}, logger),
		usecase.NewScoringService(catalog.Matches, store.tours, store.tx, logger),
		tourSvc,
		finalizationSvc,
		trigger,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	return &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		Scheduler: sweeps,
		logger:    logger,
		db:        store.db,
	}, nil
}

// Start launches the scheduler loop. The HTTP server is started by the caller.
func (a *App) Start(ctx context.Context) {
	if a.Scheduler == nil {
		a.logger.Info("finalization scheduler disabled", "reason", "FINALIZATION_ENABLED=false")
		return
	}
	a.Scheduler.Start(ctx)
}

// Shutdown stops the server first so no manual sweep starts while the
// scheduler drains, then closes the database.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.Server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	if a.Scheduler != nil {
		if err := a.Scheduler.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop finalization scheduler: %w", err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}

func newStorage(ctx context.Context, cfg config.Config, logger *logging.Logger) (storage, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		return newPostgresStorage(ctx, cfg, logger)
	default:
		return newMemoryStorage(logger), nil
	}
}

func newMemoryStorage(logger *logging.Logger) storage {
	now := time.Now().UTC()
	store := memory.NewStore(memory.SeedTours(now))
	logger.Info("storage ready", "driver", config.StorageMemory)

	return storage{
		leagues:    memory.NewLeagueRepository(memory.SeedLeagues()),
		teams:      memory.NewTeamRepository(memory.SeedTeams()),
		players:    memory.NewPlayerRepository(memory.SeedPlayers()),
		matches:    memory.NewMatchRepository(memory.SeedMatches(now), nil),
		tours:      store.Tours(),
		squads:     store.Squads(),
		squadTours: store.SquadTours(),
		boosts:     store.Boosts(),
		dispatches: memory.NewJobDispatchRepository(),
		tx:         store,
	}
}

func newPostgresStorage(ctx context.Context, cfg config.Config, logger *logging.Logger) (storage, error) {
	db, err := OpenDB(ctx, cfg)
	if err != nil {
		return storage{}, err
	}

	if cfg.DBBootstrapSeed {
		if err := postgres.BootstrapSeed(ctx, db, time.Now().UTC()); err != nil {
			_ = db.Close()
			return storage{}, fmt.Errorf("bootstrap seed: %w", err)
		}
	}
	logger.Info("storage ready", "driver", config.StoragePostgres, "db_name", dbNameFromURL(cfg.DBURL))

	return storage{
		leagues:    postgres.NewLeagueRepository(db),
		teams:      postgres.NewTeamRepository(db),
		players:    postgres.NewPlayerRepository(db),
		matches:    postgres.NewMatchRepository(db),
		tours:      postgres.NewTourRepository(db),
		squads:     postgres.NewSquadRepository(db),
		squadTours: postgres.NewSquadTourRepository(db),
		boosts:     postgres.NewBoostRepository(db),
		dispatches: postgres.NewJobDispatchRepository(db),
		tx:         postgres.NewTransactor(db),
		db:         db,
	}, nil
}

// OpenDB connects to Postgres with query tracing and verifies the connection.
func OpenDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", NormalizeDBURL(cfg.DBURL, cfg.DBSSLMode),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// wrapCatalog puts the read-mostly catalog behind the circuit breaker and,
// when enabled, the TTL cache. Matches are never cached since results change
// during a tour.
func wrapCatalog(cfg config.Config, store storage) usecase.Catalog {
	guard := resilience.NewGuard(resilience.CircuitBreakerConfig{
		Enabled:          cfg.CatalogCircuitEnabled,
		FailureThreshold: cfg.CatalogCircuitFailureCount,
		OpenTimeout:      cfg.CatalogCircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.CatalogCircuitHalfOpenMaxReq,
	}, cfg.CatalogTimeout)

	var (
		leagues league.Repository = guarded.NewLeagueRepository(store.leagues, guard)
		teams   team.Repository   = guarded.NewTeamRepository(store.teams, guard)
		players player.Repository = guarded.NewPlayerRepository(store.players, guard)
	)
	if cfg.CacheEnabled {
		ttlCache := cache.NewStore(cfg.CacheTTL)
		leagues = cacherepo.NewLeagueRepository(leagues, ttlCache)
		teams = cacherepo.NewTeamRepository(teams, ttlCache)
		players = cacherepo.NewPlayerRepository(players, ttlCache)
	}

	return usecase.Catalog{
		Leagues: leagues,
		Teams:   teams,
		Players: players,
		Matches: guarded.NewMatchRepository(store.matches, guard),
	}
}

package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/matchcentre/internal/config"
	"github.com/riskibarqy/matchcentre/internal/domain/session"
	"github.com/riskibarqy/matchcentre/internal/interfaces/httpapi"
	"github.com/riskibarqy/matchcentre/internal/platform/id"
	"github.com/riskibarqy/matchcentre/internal/platform/logging"
	"github.com/riskibarqy/matchcentre/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

// App is the assembled API process: the HTTP server, the background warmup
// loop and the connections they share.
type App struct {
	Server *http.Server

	warmup         *usecase.WarmupService
	warmupInterval time.Duration
	logger         *logging.Logger
	closers        []func() error
}

// New wires repositories, services and the router from cfg. Connections
// opened before a failure are closed again.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{
		warmupInterval: cfg.WarmupInterval,
		logger:         logger,
	}

	var db *sqlx.DB
	if cfg.DBEnabled {
		opened, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		db = opened
		a.closers = append(a.closers, db.Close)
	}

	repos, err := buildRepositories(cfg, db, logger)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	persister, closeSessions, err := buildSessionPersister(ctx, cfg, db)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	if closeSessions != nil {
		a.closers = append(a.closers, closeSessions)
	}

	services := buildServices(cfg, repos, persister, logger)
	a.warmup = services.Warmup

	handler := httpapi.NewHandler(services, logger, cfg.CORSAllowedOrigins)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterOptions{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
	})

	// Upgraded session streams drop these deadlines and manage their own.
	a.Server = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	return a, nil
}

func buildServices(cfg config.Config, repos repositories, persister session.Persister, logger *logging.Logger) httpapi.Services {
	headToHead := usecase.NewHeadToHeadService(repos.matches, cfg.HeadToHeadHistoryLimit, logger)
	media := usecase.NewMediaService(repos.media)

	return httpapi.Services{
		Competitions: usecase.NewCompetitionService(repos.competitions, repos.teams, repos.standings, repos.scorers, repos.matches),
		Fixtures:     usecase.NewFixtureService(repos.competitions, repos.matches, cfg.FixtureTimezone),
		Teams:        usecase.NewTeamService(repos.teams, repos.matches),
		Matches:      usecase.NewMatchService(repos.matches, headToHead, media, logger),
		HeadToHead:   headToHead,
		Media:        media,
		Sessions:     usecase.NewSessionService(persister, id.NewUUIDGenerator()),
		Warmup: usecase.NewWarmupService(
			repos.competitions,
			repos.teams,
			repos.standings,
			repos.scorers,
			repos.matches,
			cfg.WarmupMaxWorkers,
			logger,
		),
	}
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "addr", a.Server.Addr)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	loopCtx, stopLoop := context.WithCancel(ctx)
	defer stopLoop()
	if a.warmupInterval > 0 {
		a.logger.Info("scheduled warmup enabled", "interval", a.warmupInterval.String())
		go a.warmup.Loop(loopCtx, a.warmupInterval)
	}

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	a.logger.Info("http server stopped")
	return nil
}

// Close releases database and redis connections in reverse open order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

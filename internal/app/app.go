package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/omnigratum/timetrack-backend/internal/adapter/postgres"
	notificationrepo "github.com/omnigratum/timetrack-backend/internal/adapter/postgres/notification"
	projectrepo "github.com/omnigratum/timetrack-backend/internal/adapter/postgres/project"
	taskrepo "github.com/omnigratum/timetrack-backend/internal/adapter/postgres/task"
	timeentryrepo "github.com/omnigratum/timetrack-backend/internal/adapter/postgres/timeentry"
	timersessionrepo "github.com/omnigratum/timetrack-backend/internal/adapter/postgres/timersession"
	timesheetrepo "github.com/omnigratum/timetrack-backend/internal/adapter/postgres/timesheet"
	userrepo "github.com/omnigratum/timetrack-backend/internal/adapter/postgres/user"
	"github.com/omnigratum/timetrack-backend/internal/auth"
	"github.com/omnigratum/timetrack-backend/internal/config"
	"github.com/omnigratum/timetrack-backend/internal/service/catalog"
	"github.com/omnigratum/timetrack-backend/internal/service/notification"
	"github.com/omnigratum/timetrack-backend/internal/service/report"
	"github.com/omnigratum/timetrack-backend/internal/service/timeentry"
	"github.com/omnigratum/timetrack-backend/internal/service/timesheet"
	"github.com/omnigratum/timetrack-backend/internal/service/tracker"
	"github.com/omnigratum/timetrack-backend/internal/service/user"
	"github.com/omnigratum/timetrack-backend/internal/transport/middleware"
	"github.com/omnigratum/timetrack-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires repositories, services, and HTTP handlers, and serves
// the REST API until ctx is canceled. A background reaper finalizes timer
// sessions whose heartbeats have gone stale.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("timezone", cfg.Tracking.Timezone),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	clock := clockwork.NewRealClock()

	users := userrepo.New(pool)
	projects := projectrepo.New(pool)
	tasks := taskrepo.New(pool)
	sessions := timersessionrepo.New(pool)
	entries := timeentryrepo.New(pool)
	sheets := timesheetrepo.New(pool)
	notifications := notificationrepo.New(pool)

	jwtMgr := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	notifySvc := notification.NewService(logger, notifications)
	catalogSvc := catalog.NewService(logger, projects, tasks)
	userSvc := user.NewService(logger, users, projects, tasks, jwtMgr)
	sheetSvc := timesheet.NewService(logger, sheets, entries, users, notifySvc, txm, clock)
	trackerSvc := tracker.NewService(logger, sessions, entries, projects, tasks, users, sheetSvc, txm, clock,
		cfg.Tracking.Location, cfg.Tracking.StalenessThreshold, cfg.Tracking.ReapBatchSize)
	entrySvc := timeentry.NewService(logger, entries, projects, tasks, sheetSvc, txm, clock,
		cfg.Tracking.Location, cfg.Tracking.OverlapTolerance)
	reportSvc := report.NewService(logger, entries, clock)

	mux := rest.NewRouter(rest.Handlers{
		Health:       rest.NewHealthHandler(pool, BuildVersion()),
		Auth:         rest.NewAuthHandler(userSvc, logger),
		Timer:        rest.NewTimerHandler(trackerSvc, logger),
		Entry:        rest.NewEntryHandler(entrySvc, logger),
		Timesheet:    rest.NewTimesheetHandler(sheetSvc, logger),
		Catalog:      rest.NewCatalogHandler(catalogSvc, logger),
		User:         rest.NewUserHandler(userSvc, logger),
		Notification: rest.NewNotificationHandler(notifySvc, logger),
		Report:       rest.NewReportHandler(reportSvc, logger),
	})

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(cfg.Server.RateLimitPerMinute),
		middleware.Auth(jwtMgr),
	)(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	reaperCtx, stopReaper := context.WithCancel(ctx)
	defer stopReaper()
	go runReaper(reaperCtx, logger, trackerSvc, clock, cfg.Tracking.ReapInterval)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}

// runReaper periodically finalizes timer sessions with stale heartbeats,
// so abandoned timers become capped entries instead of running forever.
func runReaper(ctx context.Context, logger *slog.Logger, svc *tracker.Service, clock clockwork.Clock, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			reaped, err := svc.ReapStale(ctx)
			if err != nil {
				logger.Error("reap stale sessions", slog.String("error", err.Error()))
				continue
			}
			if reaped > 0 {
				logger.Info("reaped stale sessions", slog.Int("count", reaped))
			}
		}
	}
}

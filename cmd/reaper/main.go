// Command reaper finalizes timer sessions whose heartbeats went stale. It is
// intended to be invoked by an external cron job as a backstop for the
// in-process ticker.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
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
	"github.com/omnigratum/timetrack-backend/internal/app"
	"github.com/omnigratum/timetrack-backend/internal/config"
	"github.com/omnigratum/timetrack-backend/internal/service/notification"
	"github.com/omnigratum/timetrack-backend/internal/service/timesheet"
	"github.com/omnigratum/timetrack-backend/internal/service/tracker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
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

	notifySvc := notification.NewService(logger, notifications)
	sheetSvc := timesheet.NewService(logger, sheets, entries, users, notifySvc, txm, clock)
	trackerSvc := tracker.NewService(logger, sessions, entries, projects, tasks, users, sheetSvc, txm, clock,
		cfg.Tracking.Location, cfg.Tracking.StalenessThreshold, cfg.Tracking.ReapBatchSize)

	reaped, err := trackerSvc.ReapStale(ctx)
	if err != nil {
		logger.Error("reap failed",
			slog.String("error", err.Error()),
			slog.Int("reaped", reaped),
		)
		os.Exit(1)
	}

	logger.Info("reap completed",
		slog.Int("reaped", reaped),
		slog.Duration("staleness_threshold", cfg.Tracking.StalenessThreshold),
	)
}

// Command cleanup completes ACTIVE study sessions that were started more
// than study.stale_session_after ago. It is intended to be invoked by an
// external cron job, not as an in-process goroutine. A zero threshold
// disables the sweep.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/myenglish-study/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-study/internal/app"
	"github.com/heartmarshall/myenglish-study/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	olderThan := cfg.Study.StaleSessionAfter
	if olderThan <= 0 {
		logger.Info("stale session sweep disabled")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc, err := app.NewStudyService(logger, cfg, pool)
	if err != nil {
		logger.Error("build study service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	completed, err := svc.CompleteStaleSessions(ctx, olderThan)
	if err != nil {
		logger.Error("stale session sweep failed",
			slog.String("error", err.Error()),
			slog.Duration("older_than", olderThan),
		)
		os.Exit(1)
	}

	logger.Info("stale session sweep completed",
		slog.Int("completed", completed),
		slog.Duration("older_than", olderThan),
	)
}

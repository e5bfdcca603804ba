package main

import (
	"database/sql"
	"log/slog"

	"github.com/kanacompanion/kana-api/internal/config"
	"github.com/kanacompanion/kana-api/internal/platform/postgres"
	"github.com/kanacompanion/kana-api/internal/service/auth"
	"github.com/kanacompanion/kana-api/internal/service/review"
	"github.com/kanacompanion/kana-api/internal/session"
	"github.com/kanacompanion/kana-api/internal/store"
	"github.com/kanacompanion/kana-api/internal/task"
)

// application holds the wired dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger

	userStore     store.UserStore
	progressStore store.ProgressStore

	jwtService auth.JWTService
	passwords  *auth.BcryptVerifier

	sessions      *session.Manager
	taskRunner    *task.Runner
	reviewService review.ReviewService
}

// newApplication wires stores, services and the background runner. It
// panics on invalid auth configuration since the server cannot run without
// a signing key.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) *application {
	userStore := postgres.NewPostgresUserStore(db, logger)
	progressStore := postgres.NewPostgresProgressStore(db, logger)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		panic("invalid auth configuration: " + err.Error())
	}

	taskRunner := task.NewRunner(task.RunnerConfig{
		WorkerCount: cfg.Task.WorkerCount,
		QueueSize:   cfg.Task.QueueSize,
	}, logger)
	taskRunner.Start()

	sessions := session.NewManager()
	reviewService := review.NewReviewService(sessions, progressStore, taskRunner, logger)

	return &application{
		config:        cfg,
		logger:        logger,
		userStore:     userStore,
		progressStore: progressStore,
		jwtService:    jwtService,
		passwords:     auth.NewBcryptVerifier(),
		sessions:      sessions,
		taskRunner:    taskRunner,
		reviewService: reviewService,
	}
}

// cleanup stops background processing. In-flight progress writes finish;
// queued ones are discarded, which the persistence model tolerates.
func (app *application) cleanup() {
	app.logger.Info("stopping task runner")
	app.taskRunner.Stop()
}

// Package app wires configuration, the provider client, the audit store and
// the HTTP router into a runnable relay.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/joshu-sajeev/contactrelay/internal/config"
	"github.com/joshu-sajeev/contactrelay/internal/contact"
	"github.com/joshu-sajeev/contactrelay/internal/storage"
	"github.com/joshu-sajeev/contactrelay/internal/storage/postgres"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config  *config.Config
	Handler http.Handler

	log *zap.Logger
	db  *gorm.DB
}

// New builds the relay. When AUDIT_ENABLED is set it connects to Postgres
// and applies pending migrations before returning.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	sender, err := NewSender(cfg)
	if err != nil {
		return nil, err
	}

	log.Info("mail provider selected",
		zap.String("provider", sender.Name()),
		zap.Bool("configured", cfg.ProviderConfigured()),
	)

	a := &App{Config: cfg, log: log}

	var recorder contact.SubmissionRecorder = storage.NoOpRecorder{}
	if cfg.AuditEnabled {
		db, err := openAudit(ctx, log)
		if err != nil {
			return nil, err
		}
		a.db = db
		recorder = postgres.NewSubmissionRepository(db)
	}

	svc := contact.NewRelayService(sender, recorder, cfg, log)
	a.Handler = NewRouter(cfg, contact.NewContactHandler(svc), log)

	return a, nil
}

func openAudit(ctx context.Context, log *zap.Logger) (*gorm.DB, error) {
	dbCfg, err := postgres.LoadConfigFromEnv(ctx)
	if err != nil {
		return nil, fmt.Errorf("audit database config: %w", err)
	}

	db, err := postgres.ConnectDB(ctx, dbCfg, log)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("audit database handle: %w", err)
	}
	if err := postgres.Migrate(sqlDB, "up"); err != nil {
		sqlDB.Close()
		return nil, err
	}

	log.Info("submission audit enabled")
	return db, nil
}

// Run serves until ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	return ListenAndServe(ctx, a.Config.Addr(), a.Handler, a.log)
}

// Close releases the audit database, if one was opened.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

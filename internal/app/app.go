// Package app wires configuration into the handler set shared by the
// entry points in cmd/.
package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/docdesk/internal/config"
	"github.com/iliyamo/docdesk/internal/database"
	"github.com/iliyamo/docdesk/internal/handler"
	"github.com/iliyamo/docdesk/internal/metrics"
	"github.com/iliyamo/docdesk/internal/notify"
	"github.com/iliyamo/docdesk/internal/otp"
	"github.com/iliyamo/docdesk/internal/repository"
	"github.com/iliyamo/docdesk/internal/router"
	"github.com/iliyamo/docdesk/internal/storage"
)

// App is one process's worth of dependencies.
type App struct {
	DB      *sqlx.DB
	Metrics *metrics.Metrics
	Handler *handler.Handler
	Routes  []router.Route
}

// New opens the database and builds every handler. reg receives the
// collectors.
func New(ctx context.Context, cfg config.Config, log *logrus.Logger, reg prometheus.Registerer) (*App, error) {
	db, err := database.Open(database.Options{
		Driver: cfg.DBDriver,
		User:   cfg.DBUser,
		Pass:   cfg.DBPass,
		Host:   cfg.DBHost,
		Port:   cfg.DBPort,
		Name:   cfg.DBName,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	m := metrics.New(reg)
	store := database.NewStore(db, m.ObserveQuery)

	presigner, err := storage.NewS3Presigner(ctx, cfg.S3Bucket, cfg.S3Region)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	var publisher notify.Publisher = notify.Discard{}
	if cfg.AMQPURL != "" {
		publisher = notify.NewAMQPPublisher(cfg.AMQPURL)
	} else {
		log.Warn("no broker configured; notifications are dropped")
	}

	otps := otp.NewManager(repository.NewOTPRepo(store), publisher, log, m, otp.Options{
		EnforceExpiry: cfg.OTPEnforceExpiry,
		BcryptCost:    cfg.BcryptCost,
	})

	h := handler.New(handler.Options{
		Store:      store,
		JWTSecret:  cfg.JWTSecret,
		BcryptCost: cfg.BcryptCost,
		Publisher:  publisher,
		Presigner:  presigner,
		OTP:        otps,
		Log:        log,
		Metrics:    m,
	})
	return &App{DB: db, Metrics: m, Handler: h, Routes: router.Routes(h)}, nil
}

// Migrate applies pending migrations for the configured driver.
func (a *App) Migrate(ctx context.Context, log *logrus.Logger) error {
	migrator, err := database.NewMigrator(a.DB, log)
	if err != nil {
		return err
	}
	return migrator.MigrateUp(ctx)
}

func (a *App) Close() error { return a.DB.Close() }

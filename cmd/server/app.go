package main

import (
	"context"
	"time"

	"alcyxob/coaching-app/internal/api"
	"alcyxob/coaching-app/internal/config"
	"alcyxob/coaching-app/internal/logging"
	"alcyxob/coaching-app/internal/repository"
	"alcyxob/coaching-app/internal/repository/mongo"
	"alcyxob/coaching-app/internal/repository/sqlite"
	"alcyxob/coaching-app/internal/service"
	"alcyxob/coaching-app/internal/sms"
	"alcyxob/coaching-app/internal/storage"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// app holds the process-wide dependencies built from configuration.
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	repos   repository.Repositories
	files   storage.FileStorage
	gateway sms.Gateway
	closers []func()
}

func openApp(configPath string) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger}
	a.closers = append(a.closers, func() { _ = logger.Sync() })

	if err := a.openDatabase(); err != nil {
		a.Close()
		return nil, err
	}

	switch cfg.Storage.Driver {
	case config.StorageS3:
		a.files, err = storage.NewS3Storage(cfg.S3, logger)
	default:
		a.files, err = storage.NewLocalStorage(cfg.Storage.Root)
	}
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "initialize file storage")
	}

	a.gateway = sms.NewGatewayFromConfig(cfg.SMS, logger)
	if a.gateway == nil {
		logger.Info("text messaging disabled: twilio settings incomplete")
	}
	return a, nil
}

func (a *app) openDatabase() error {
	switch a.cfg.Database.Driver {
	case config.DatabaseMongo:
		client, err := mongo.ConnectDB(a.cfg.Database.URI)
		if err != nil {
			return errors.Wrap(err, "connect to mongodb")
		}
		a.closers = append(a.closers, func() {
			if err := mongo.DisconnectDB(client); err != nil {
				a.logger.Error("failed to disconnect mongodb", zap.Error(err))
			}
		})
		db := client.Database(a.cfg.Database.Name)

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			return errors.Wrap(err, "ensure mongodb indexes")
		}
		a.repos = mongo.NewRepositories(db)

	default:
		db, err := sqlite.ConnectDB(a.cfg.Database.DSN)
		if err != nil {
			return errors.Wrap(err, "open sqlite database")
		}
		a.closers = append(a.closers, func() {
			if err := sqlite.DisconnectDB(db); err != nil {
				a.logger.Error("failed to close sqlite database", zap.Error(err))
			}
		})
		if err := sqlite.MigrateUp(db); err != nil {
			return errors.Wrap(err, "migrate sqlite database")
		}
		a.repos = sqlite.NewRepositories(db)
	}
	a.logger.Info("database ready", zap.String("driver", a.cfg.Database.Driver))
	return nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *app) authService() service.AuthService {
	return service.NewAuthService(a.repos.Instructors, a.repos.Players, a.cfg.Auth.MasterCode, a.logger)
}

func (a *app) playerService() service.PlayerService {
	return service.NewPlayerService(a.repos.Instructors, a.repos.Players, a.files, a.logger)
}

func (a *app) services() api.Services {
	texts := service.NewTextService(a.repos.Instructors, a.repos.Players, a.gateway, a.logger)
	return api.Services{
		Auth:       a.authService(),
		Players:    a.playerService(),
		Coaching:   service.NewCoachingService(a.repos),
		Drills:     service.NewDrillService(a.repos, a.files, a.gateway, a.logger),
		Texts:      texts,
		Dashboards: service.NewDashboardService(a.repos, a.files, texts.Ready(), a.logger),
	}
}

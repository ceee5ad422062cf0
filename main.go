package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/expense-tracker/api"
	"github.com/carson-networks/expense-tracker/internal/config"
	"github.com/carson-networks/expense-tracker/internal/logging"
	"github.com/carson-networks/expense-tracker/internal/operator"
	"github.com/carson-networks/expense-tracker/internal/service"
	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/memory"
	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

func main() {
	logger := logging.SetupLogging()

	// A missing .env is fine; the environment and defaults still apply.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.WithError(err).Warn("godotenv.Load")
	}

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logger.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}
	if err := logging.SetLevel(logger, envConfig.LogLevel); err != nil {
		logger.WithError(err).Warn("logging.SetLevel")
	}
	logger.WithField("backend", envConfig.DataBackend).Info("expense-tracker starting")

	store, err := openStorage(envConfig, logger)
	if err != nil {
		logger.WithError(err).Fatal("openStorage")
		return
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.WithError(err).Error("storage.Close")
		}
	}()

	delegator := operator.NewOperatorDelegator(store, envConfig.OperatorWorkers, logger)
	delegator.Start()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		httpRest := api.Rest{
			Logger:   logger,
			Port:     envConfig.HTTPPort,
			Storage:  store,
			Operator: delegator,
			Service:  service.NewService(store),
		}
		return httpRest.Serve(groupCtx)
	})

	if err := group.Wait(); err != nil {
		logger.WithError(err).Error("expense-tracker stopped with error")
	}
	delegator.Stop()
	logger.Info("expense-tracker stopped")
}

func openStorage(env *config.Config, logger *logrus.Logger) (storage.Storage, error) {
	if env.DataBackend == config.BackendMemory {
		return memory.New(), nil
	}

	dsn := sqlconfig.ConnectionString(env)
	if env.RunMigrations {
		start := time.Now()
		status, err := sqlconfig.RunMigrations(dsn)
		if err != nil {
			return nil, err
		}
		logger.WithFields(logrus.Fields{
			"preMigrationVersion":  status.PreMigrationVersion,
			"postMigrationVersion": status.PostMigrationVersion,
			"durationMs":           time.Since(start).Milliseconds(),
		}).Info("Migration status")
	}

	db, err := sqlconfig.Open(dsn)
	if err != nil {
		return nil, err
	}
	return storage.NewPostgres(db), nil
}

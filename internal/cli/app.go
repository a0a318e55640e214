package cli

import (
	"context"
	"fmt"

	"onboarding-service/internal/adapter/repository/gormrepo"
	"onboarding-service/internal/config"
	"onboarding-service/internal/infrastructure/cache"
	"onboarding-service/internal/infrastructure/db"
	"onboarding-service/internal/infrastructure/logging"
	"onboarding-service/internal/infrastructure/storage"
	"onboarding-service/internal/usecase/submission"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds the process-lifetime resources shared by the commands.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	gdb   *gorm.DB
	redis *redis.Client
	uc    *submission.Usecase
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// openApp connects the database, runs migrations and builds the usecase.
// Redis is only dialled when withRedis is set.
func openApp(ctx context.Context, cfg *config.Config, withRedis bool) (*app, error) {
	log, err := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: log}

	a.gdb, err = db.OpenGorm(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Migrate(a.gdb); err != nil {
		a.close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	files, err := storage.NewLocalStorage(cfg.UploadDir, cfg.UniqueFilenames)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("upload dir: %w", err)
	}

	if withRedis {
		a.redis, err = cache.OpenRedis(ctx, cfg)
		if err != nil {
			a.close()
			return nil, err
		}
	}

	a.uc = submission.NewUsecase(
		gormrepo.NewSubmissionRepository(a.gdb),
		gormrepo.NewGormUoW(a.gdb),
		files,
		submission.Options{TimestampedNames: cfg.UniqueFilenames, Logger: log},
	)
	return a, nil
}

func (a *app) close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.gdb != nil {
		if err := db.Close(a.gdb); err != nil {
			a.log.Warn("close database", zap.Error(err))
		}
	}
	_ = a.log.Sync()
}

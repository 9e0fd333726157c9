package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"blogaulas/config"
	"blogaulas/metrics"
	"blogaulas/models"
)

func Connect(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	level := logger.Info
	if cfg.IsProd() {
		level = logger.Warn
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL()), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	log.Info("database connected", zap.String("host", cfg.DBHost), zap.String("name", cfg.DBName))
	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
	)
	if err != nil {
		return errors.Wrap(err, "auto migrate")
	}

	log.Info("database migrated")
	return nil
}

// Ping checks the connection and records its latency.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "sql handle")
	}
	ctx, cancel := context.WithTimeout(ctx, 800*time.Millisecond)
	defer cancel()
	t0 := time.Now()
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.Wrap(err, "ping")
	}
	metrics.ObserveDBPing(time.Since(t0))
	return nil
}

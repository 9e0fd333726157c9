//go:build testutil
// +build testutil

// Package testdb starts a throwaway Postgres for store tests.
package testdb

import (
	"context"
	"errors"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"blogaulas/database"
)

type DBHandle struct {
	DB     *gorm.DB
	cancel func()
	stop   func(context.Context) error
}

func (h *DBHandle) Close() {
	if h.DB != nil {
		if sqlDB, err := h.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if h.stop != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = h.stop(ctx)
	}
	if h.cancel != nil {
		h.cancel()
	}
}

// Start runs postgres in a container and applies the schema.
func Start(ctx context.Context) (*DBHandle, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)

	pg, err := postgres.RunContainer(ctx,
		tc.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("blog"),
		postgres.WithUsername("blog"),
		postgres.WithPassword("blog"),
	)
	if err != nil {
		cancel()
		return nil, err
	}

	fail := func(err error) (*DBHandle, error) {
		_ = pg.Terminate(ctx)
		cancel()
		return nil, err
	}

	uri, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return fail(err)
	}

	db, err := gorm.Open(gormpg.Open(uri), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return fail(err)
	}
	if err := waitReady(ctx, db); err != nil {
		return fail(err)
	}
	if err := database.Migrate(db, zap.NewNop()); err != nil {
		return fail(err)
	}

	return &DBHandle{DB: db, cancel: cancel, stop: pg.Terminate}, nil
}

// Reset empties every table between tests.
func (h *DBHandle) Reset(ctx context.Context) error {
	return h.DB.WithContext(ctx).Exec("TRUNCATE comments, posts, users RESTART IDENTITY CASCADE").Error
}

func waitReady(ctx context.Context, db *gorm.DB) error {
	dead := time.Now().Add(20 * time.Second)
	for time.Now().Before(dead) {
		if err := database.Ping(ctx, db); err == nil {
			return nil
		}
		time.Sleep(200 * time.Millisecond)
	}
	return errors.New("db not ready")
}

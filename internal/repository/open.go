package repository

import (
	"fmt"
	"time"

	"github.com/moneyapp/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects the configured backend, migrates it and returns the store
// together with a function that releases its resources.
func Open(cfg *config.Config) (Store, func() error, error) {
	if cfg.Database.Driver == "memory" {
		return NewMemoryStore(), func() error { return nil }, nil
	}

	db, err := openPostgres(cfg)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}

	if err := AutoMigrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return NewGormStore(db), sqlDB.Close, nil
}

func openPostgres(cfg *config.Config) (*gorm.DB, error) {
	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.Server.Mode == "release" {
		gormLogger = logger.Default.LogMode(logger.Warn)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/dinepoll/server/internal/config"
	"github.com/dinepoll/server/internal/models"
	"github.com/dinepoll/server/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	pingInterval     = 30 * time.Second
	reconnectBackoff = 10 * time.Second
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.GetDSN()

	var logLevel gormlogger.LogLevel
	if cfg.AppEnv == "development" {
		logLevel = gormlogger.Info
	} else {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	logger.Info("Database connected")
	return db, nil
}

// Keepalive pings the connection every 30s and, on failure, retries every 10s
// until the pool recovers or ctx is cancelled. It is owned by the caller: run
// it in a goroutine and cancel ctx on shutdown.
func Keepalive(ctx context.Context, db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Keepalive disabled, no database instance", "error", err)
		return
	}

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := sqlDB.PingContext(ctx); err == nil {
				continue
			}
			logger.Warn("Database ping failed, retrying")
			for {
				select {
				case <-ctx.Done():
					return
				case <-time.After(reconnectBackoff):
				}
				if err := sqlDB.PingContext(ctx); err == nil {
					logger.Info("Database connection recovered")
					break
				}
				logger.Warn("Database still unreachable")
			}
		}
	}
}

func AutoMigrate(db *gorm.DB) error {
	logger.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Manager{},
		&models.FriendLink{},
		&models.Restaurant{},
		&models.Photo{},
		&models.Swipe{},
		&models.Favorite{},
		&models.Poll{},
		&models.PollParticipant{},
		&models.PollOption{},
		&models.PollVote{},
	)

	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Info("Database migrations completed")
	return nil
}

// Package testutil provides shared helpers for database-backed tests.
package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dinepoll/server/internal/models"
)

// NewTestDB opens an in-memory SQLite database with the full schema
// migrated. Pool size is pinned to one connection so the in-memory database
// survives for the whole test.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
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
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

// SeedUser inserts a user row and returns it.
func SeedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{Email: email, PasswordHash: "x", Name: "Test User"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}
	return user
}

// SeedManager inserts a manager row and returns it.
func SeedManager(t *testing.T, db *gorm.DB, email string) *models.Manager {
	t.Helper()

	manager := &models.Manager{Email: email, PasswordHash: "x", Name: "Test Manager"}
	if err := db.Create(manager).Error; err != nil {
		t.Fatalf("failed to seed manager %s: %v", email, err)
	}
	return manager
}

// SeedRestaurant inserts a restaurant owned by the given manager.
func SeedRestaurant(t *testing.T, db *gorm.DB, ownerID uint, name string) *models.Restaurant {
	t.Helper()

	restaurant := &models.Restaurant{OwnerID: ownerID, Name: name}
	if err := db.Create(restaurant).Error; err != nil {
		t.Fatalf("failed to seed restaurant %s: %v", name, err)
	}
	return restaurant
}

package models

import (
	"time"
)

// Swipe is an append-only record of one left/right decision. Duplicate rows
// for the same (user, restaurant) pair are allowed; discovery filters on the
// read side.
type Swipe struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurantId"`
	UserID       uint      `gorm:"not null;index" json:"userId"`
	Liked        bool      `gorm:"not null" json:"liked"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"timestamp"`
}

func (Swipe) TableName() string {
	return "swipes"
}

// Favorite is an idempotent bookmark. The unique pair index makes the
// duplicate pre-check race-safe: a concurrent double insert fails on the
// constraint instead of writing a second row.
type Favorite struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index:idx_favorite_pair,unique" json:"userId"`
	RestaurantID uint      `gorm:"not null;index:idx_favorite_pair,unique" json:"restaurantId"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"-"`
}

func (Favorite) TableName() string {
	return "favorites"
}

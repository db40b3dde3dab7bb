package models

import (
	"time"
)

type Restaurant struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OwnerID        uint      `gorm:"not null;index" json:"ownerId"`
	Name           string    `gorm:"type:varchar(191);not null" json:"name"`
	Description    string    `gorm:"type:text" json:"description,omitempty"`
	AveragePrice   float64   `json:"averagePrice,omitempty"`
	AverageService float64   `json:"averageService,omitempty"`
	PhoneNumber    string    `gorm:"type:varchar(32)" json:"phoneNumber,omitempty"`
	Address        string    `gorm:"type:varchar(255)" json:"address,omitempty"`
	Photos         []Photo   `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"photos"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Restaurant) TableName() string {
	return "restaurants"
}

// Photo stores the URL of an image held by an external object store.
type Photo struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurantId"`
	URL          string    `gorm:"type:varchar(500);not null" json:"url"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"-"`
}

func (Photo) TableName() string {
	return "photos"
}

package models

import (
	"time"
)

// Scope is the role partition of an authenticated identity.
type Scope string

const (
	ScopeUser    Scope = "user"
	ScopeManager Scope = "manager"
)

func (s Scope) Valid() bool {
	return s == ScopeUser || s == ScopeManager
}

// User is a customer account. Email is unique within this table only; a
// manager may register the same address in the managers table.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(191);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Name         string    `gorm:"type:varchar(191)" json:"name"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// Manager is a restaurant-owner account, kept in its own table because the
// privilege sets are disjoint.
type Manager struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(191);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Name         string    `gorm:"type:varchar(191)" json:"name"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Manager) TableName() string {
	return "managers"
}

// Account is the domain-level tagged view over the two physical tables.
// Service code dispatches on Scope instead of duplicating per-table paths.
type Account struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Scope Scope  `json:"scope"`
}

func (u *User) Account() Account {
	return Account{ID: u.ID, Email: u.Email, Name: u.Name, Scope: ScopeUser}
}

func (m *Manager) Account() Account {
	return Account{ID: m.ID, Email: m.Email, Name: m.Name, Scope: ScopeManager}
}

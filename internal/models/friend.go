package models

import (
	"time"
)

// FriendLink is directional by creation (requester asked first) but symmetric
// in meaning once accepted.
type FriendLink struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RequesterID uint      `gorm:"not null;index:idx_friend_link,unique" json:"user1Id"`
	Requester   User      `gorm:"foreignKey:RequesterID;constraint:OnDelete:CASCADE" json:"-"`
	AddresseeID uint      `gorm:"not null;index:idx_friend_link,unique" json:"user2Id"`
	Addressee   User      `gorm:"foreignKey:AddresseeID;constraint:OnDelete:CASCADE" json:"-"`
	Status      string    `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"-"`
}

// FriendLink status constants
const (
	FriendStatusPending = "pending"
	FriendStatusAccept  = "accept"
)

// IsParty reports whether userID is on either side of the link.
func (f *FriendLink) IsParty(userID uint) bool {
	return f.RequesterID == userID || f.AddresseeID == userID
}

func (FriendLink) TableName() string {
	return "friend_links"
}

package models

import (
	"time"
)

type Poll struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	Name         string            `gorm:"type:varchar(191);not null" json:"name"`
	CreatorID    uint              `gorm:"not null;index" json:"creatorId"`
	Participants []PollParticipant `gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE" json:"participants,omitempty"`
	Options      []PollOption      `gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
	Votes        []PollVote        `gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE" json:"votes,omitempty"`
	CreatedAt    time.Time         `gorm:"autoCreateTime" json:"-"`
	UpdatedAt    time.Time         `gorm:"autoUpdateTime" json:"-"`
}

func (Poll) TableName() string {
	return "polls"
}

type PollParticipant struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	PollID uint `gorm:"not null;index:idx_poll_participant,unique" json:"pollId"`
	UserID uint `gorm:"not null;index:idx_poll_participant,unique" json:"userId"`
}

func (PollParticipant) TableName() string {
	return "poll_participants"
}

type PollOption struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	PollID       uint `gorm:"not null;index" json:"pollId"`
	RestaurantID uint `gorm:"not null" json:"restaurantId"`
}

func (PollOption) TableName() string {
	return "poll_options"
}

// PollVote holds one countable vote per (poll, voter, option). Repeat votes
// upsert in place, so the unique index is the invariant, not a race guard.
type PollVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PollID    uint      `gorm:"not null;index:idx_poll_vote,unique" json:"pollId"`
	UserID    uint      `gorm:"not null;index:idx_poll_vote,unique" json:"userId"`
	OptionID  uint      `gorm:"not null;index:idx_poll_vote,unique" json:"optionId"`
	Vote      bool      `gorm:"not null" json:"vote"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (PollVote) TableName() string {
	return "poll_votes"
}

package models

import "time"

// Vote rows are never soft deleted; the composite unique index keeps
// one row per (poll, account) pair even under concurrent submissions.
type Vote struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	PollID      uint `json:"poll_id" gorm:"uniqueIndex:idx_votes_poll_account"`
	AccountID   uint `json:"account_id" gorm:"uniqueIndex:idx_votes_poll_account"`
	OptionIndex int  `json:"option_index"`

	Account Account `json:"-" gorm:"foreignKey:AccountID"`
}

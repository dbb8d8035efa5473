package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/classpulse/classpulse/pkg/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrOptionOutOfRange = errors.New("option index is out of range")

// AddPollVote records the account's current choice on the poll. The write is
// a single upsert against the (poll, account) unique index, so resubmitting
// replaces the previous choice and concurrent submissions cannot produce a
// second row.
func (v *Service) AddPollVote(poll models.Poll, user models.Account, optionIndex int) (models.Vote, error) {
	vote := models.Vote{
		PollID:      poll.ID,
		AccountID:   user.ID,
		OptionIndex: optionIndex,
	}

	if optionIndex < 0 || optionIndex >= len(poll.Options) {
		return vote, ErrOptionOutOfRange
	}

	if err := v.db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "poll_id"}, {Name: "account_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"option_index", "updated_at"}),
	}).Create(&vote).Error; err != nil {
		return vote, fmt.Errorf("unable to record vote: %v", err)
	}

	// On the conflict path the insert is a no-op, so the id on vote is not
	// the stored row's. Read the row back before handing it to the caller.
	if err := v.db.Where("poll_id = ? AND account_id = ?", poll.ID, user.ID).First(&vote).Error; err != nil {
		return vote, fmt.Errorf("unable to load recorded vote: %v", err)
	}

	_ = v.marshal.Delete(context.Background(), GetPollMetricCacheKey(poll.ID))

	return vote, nil
}

// GetAccountVote returns the account's current vote on the poll, or nil when
// it has not voted yet.
func (v *Service) GetAccountVote(poll models.Poll, user models.Account) (*models.Vote, error) {
	var vote models.Vote
	if err := v.db.Where("poll_id = ? AND account_id = ?", poll.ID, user.ID).First(&vote).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vote, nil
}

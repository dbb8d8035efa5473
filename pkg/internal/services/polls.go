package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/classpulse/classpulse/pkg/internal/models"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/samber/lo"
)

var ErrNoOptions = errors.New("poll must have at least one option")

func GetPollMetricCacheKey(pollId uint) string {
	return fmt.Sprintf("poll-metric#%d", pollId)
}

func (v *Service) NewPoll(classroom models.Classroom, question string, options []string) (models.Poll, error) {
	var poll models.Poll
	if len(options) == 0 {
		return poll, ErrNoOptions
	}

	poll = models.Poll{
		ClassroomID: classroom.ID,
		Question:    question,
		Options:     options,
		Language:    v.DetectLanguage(question),
		IsActive:    true,
	}

	if err := v.db.Create(&poll).Error; err != nil {
		return poll, err
	}

	return poll, nil
}

func (v *Service) ListClassroomPoll(classroom models.Classroom) ([]models.Poll, error) {
	var polls []models.Poll
	if err := v.db.Where("classroom_id = ?", classroom.ID).Order("created_at DESC").Find(&polls).Error; err != nil {
		return polls, err
	}
	return polls, nil
}

func (v *Service) GetPollWithID(id uint) (models.Poll, error) {
	var poll models.Poll
	if err := v.db.Where("id = ?", id).First(&poll).Error; err != nil {
		return poll, err
	}
	return poll, nil
}

// GetPollMetric aggregates the poll's votes into per-option counts and
// per-option voter name lists. The aggregate is cached until the next vote
// lands on the poll.
func (v *Service) GetPollMetric(poll models.Poll) models.PollMetric {
	ctx := context.Background()

	if hit, err := v.marshal.Get(ctx, GetPollMetricCacheKey(poll.ID), new(models.PollMetric)); err == nil {
		return *hit.(*models.PollMetric)
	}

	var votes []models.Vote
	if err := v.db.Preload("Account").Where("poll_id = ?", poll.ID).Find(&votes).Error; err != nil {
		return models.PollMetric{}
	}

	byOptions := lo.MapValues(
		lo.CountValuesBy(votes, func(item models.Vote) int {
			return item.OptionIndex
		}),
		func(count int, _ int) int64 {
			return int64(count)
		},
	)
	voters := lo.MapValues(
		lo.GroupBy(votes, func(item models.Vote) int {
			return item.OptionIndex
		}),
		func(items []models.Vote, _ int) []string {
			return lo.Map(items, func(item models.Vote, _ int) string {
				return item.Account.Name
			})
		},
	)

	metric := models.PollMetric{
		TotalVotes: int64(len(votes)),
		ByOptions:  byOptions,
		Voters:     voters,
	}

	_ = v.marshal.Set(
		ctx,
		GetPollMetricCacheKey(poll.ID),
		metric,
		store.WithExpiration(5*time.Minute),
	)

	return metric
}

package models

import (
	"gorm.io/datatypes"
)

type Poll struct {
	BaseModel

	ClassroomID uint                        `json:"classroom_id"`
	Question    string                      `json:"question" validate:"required,max=500"`
	Options     datatypes.JSONSlice[string] `json:"options"`
	Language    string                      `json:"language"`
	IsActive    bool                        `json:"is_active" gorm:"default:true"`

	Votes []Vote `json:"votes,omitempty" gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE"`

	Metric PollMetric `json:"metric" gorm:"-"`
}

// PollMetric is the aggregated tally of one poll, keyed by option index.
type PollMetric struct {
	TotalVotes int64            `json:"total_votes"`
	ByOptions  map[int]int64    `json:"by_options"`
	Voters     map[int][]string `json:"voters"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	GuideDraft     = "draft"
	GuidePublished = "published"
	GuideArchived  = "archived"
)

// Guide is community education content: a growing guide written by a user.
type Guide struct {
	gorm.Model
	AuthorID    uint       `json:"authorID" gorm:"not null;index"`
	Title       string     `json:"title" gorm:"size:200;not null"`
	Summary     string     `json:"summary" gorm:"size:500"`
	Body        string     `json:"body" gorm:"type:text"`
	CoverImage  string     `json:"coverImage" gorm:"size:512"`
	Tags        string     `json:"tags" gorm:"size:300"` // comma-separated
	Status      string     `json:"status" gorm:"size:12;index;default:draft"`
	PublishedAt *time.Time `json:"publishedAt"`
	Score       int        `json:"score" gorm:"default:0"` // cached vote sum

	Author *User       `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Votes  []GuideVote `json:"-" gorm:"foreignKey:GuideID"`
}

// GuideVote records one user's vote on a guide. One vote per user per guide,
// enforced by the composite unique index.
type GuideVote struct {
	gorm.Model
	GuideID uint `json:"guideID" gorm:"not null;uniqueIndex:idx_guide_vote"`
	UserID  uint `json:"userID" gorm:"not null;uniqueIndex:idx_guide_vote"`
	Value   int  `json:"value" gorm:"not null"` // +1 or -1
}

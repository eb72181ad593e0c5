package models

import "time"

// Activity is a user-visible feed entry (points earned, level-up, guide
// published, reservation completed). Denormalized on purpose: the feed is
// rendered without joins.
type Activity struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userID" gorm:"not null;index"`
	Kind      string    `json:"kind" gorm:"size:32;index"` // points_earned, level_up, guide_published, ...
	Message   string    `json:"message" gorm:"size:300"`
	RefType   string    `json:"refType" gorm:"size:32"`
	RefID     uint      `json:"refID"`
	CreatedAt time.Time `json:"createdAt"`
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

// Point-earning categories.
const (
	PointsBookingCompleted = "booking_completed"
	PointsReviewWritten    = "review_written"
	PointsGuidePublished   = "guide_published"
	PointsProfileCompleted = "profile_completed"
	PointsVerifiedIdentity = "verified_identity"
	PointsFirstListing     = "first_listing"
)

// PointsEvent is an immutable gamification ledger entry. Rows are only ever
// appended; users.total_points is updated in the same transaction.
type PointsEvent struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"userID" gorm:"not null;index"`
	Category  string         `json:"category" gorm:"size:40;index;not null"`
	Points    int            `json:"points" gorm:"not null"`
	Title     string         `json:"title" gorm:"size:200"`
	Metadata  datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

package models

import "gorm.io/gorm"

// Review is written by a grower after a completed reservation. One review
// per reservation, enforced by the unique index on ReservationID.
type Review struct {
	gorm.Model
	UserID        uint  `json:"userID" gorm:"not null;index"`
	PlotID        uint  `json:"plotID" gorm:"not null;index"`
	ReservationID *uint `json:"reservationID" gorm:"uniqueIndex"`

	Title      string `json:"title"`
	Body       string `json:"body" gorm:"type:text"`
	Stars      int    `json:"stars" gorm:"not null;check:stars >= 1 AND stars <= 5"`
	IsVerified bool   `json:"isVerified" gorm:"default:false"` // verified completed lease
	Hidden     bool   `json:"hidden" gorm:"default:false"`     // admin moderation

	User        *User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Plot        *Plot        `json:"plot,omitempty" gorm:"foreignKey:PlotID"`
	Reservation *Reservation `json:"reservation,omitempty" gorm:"foreignKey:ReservationID"`
}

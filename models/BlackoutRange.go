package models

import (
	"time"

	"gorm.io/gorm"
)

// BlackoutRange is an owner-declared half-open interval [StartDate, EndDate)
// during which a plot cannot be booked, independent of any reservation.
type BlackoutRange struct {
	gorm.Model
	PlotID    uint      `json:"plotID" gorm:"not null;index"`
	StartDate time.Time `json:"startDate" gorm:"not null"`
	EndDate   time.Time `json:"endDate" gorm:"not null"`
	Reason    string    `json:"reason" gorm:"size:200"`

	Plot *Plot `json:"plot,omitempty" gorm:"foreignKey:PlotID"`
}

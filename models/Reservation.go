package models

import (
	"time"

	"gorm.io/gorm"
)

// Reservation statuses. Transitions are monotonic: a terminal state
// (completed, cancelled, rejected, expired) is never left again.
const (
	ReservationPending   = "pending"
	ReservationApproved  = "approved"
	ReservationActive    = "active"
	ReservationCompleted = "completed"
	ReservationCancelled = "cancelled"
	ReservationRejected  = "rejected"
	ReservationExpired   = "expired"
)

// reservationTransitions maps each status to the statuses it may move to.
var reservationTransitions = map[string][]string{
	ReservationPending:  {ReservationApproved, ReservationCancelled, ReservationRejected, ReservationExpired},
	ReservationApproved: {ReservationActive, ReservationCancelled},
	ReservationActive:   {ReservationCompleted, ReservationCancelled},
}

// CanTransitionReservation reports whether a reservation may move from one
// status to another.
func CanTransitionReservation(from, to string) bool {
	for _, allowed := range reservationTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ReservationBlocksDates reports whether a reservation in the given status
// keeps its date range off the market.
func ReservationBlocksDates(status string) bool {
	return status == ReservationPending || status == ReservationApproved || status == ReservationActive
}

// Reservation is a time-boxed booking of a Plot by a grower. Dates are a
// half-open interval [StartDate, EndDate): the end day is not part of the
// lease, so back-to-back reservations may touch without conflicting.
type Reservation struct {
	gorm.Model
	PlotID      uint      `json:"plotID" gorm:"not null;index"`
	RenterID    uint      `json:"renterID" gorm:"not null;index"`
	StartDate   time.Time `json:"startDate" gorm:"not null"`
	EndDate     time.Time `json:"endDate" gorm:"not null"`
	Status      string    `json:"status" gorm:"size:16;index"`
	TotalAmount float64   `json:"totalAmount"`
	Note        string    `json:"note" gorm:"size:500"`
	ExpiresAt   time.Time `json:"expiresAt"` // 24h window for pending requests

	Plot   *Plot `json:"plot,omitempty" gorm:"foreignKey:PlotID"`
	Renter *User `json:"renter,omitempty" gorm:"foreignKey:RenterID"`
}

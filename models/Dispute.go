package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	DisputePending   = "pending"
	DisputeResolved  = "resolved"
	DisputeDismissed = "dismissed"
)

// Dispute is a report filed by one account against another, optionally tied
// to a reservation or a piece of content. Lifecycle: pending -> resolved or
// dismissed, set by an admin with an optional resolution note.
type Dispute struct {
	gorm.Model
	ReporterID    uint       `json:"reporterID" gorm:"not null;index"`
	ReportedID    uint       `json:"reportedID" gorm:"not null;index"`
	ReservationID *uint      `json:"reservationID" gorm:"index"`
	RefType       string     `json:"refType" gorm:"size:32"` // reservation, guide, review, profile
	RefID         *uint      `json:"refID"`
	Subject       string     `json:"subject" gorm:"size:200;not null"`
	Details       string     `json:"details" gorm:"type:text"`
	Status        string     `json:"status" gorm:"size:12;index;default:pending"`
	Resolution    string     `json:"resolution" gorm:"size:500"`
	ResolvedByID  *uint      `json:"resolvedByID"`
	ResolvedAt    *time.Time `json:"resolvedAt"`

	Reporter    *User        `json:"reporter,omitempty" gorm:"foreignKey:ReporterID"`
	Reported    *User        `json:"reported,omitempty" gorm:"foreignKey:ReportedID"`
	Reservation *Reservation `json:"reservation,omitempty" gorm:"foreignKey:ReservationID"`
}

package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/jartman86/growshare-sub005/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Booking errors surfaced to the route layer.
var (
	ErrPlotNotFound     = errors.New("plot not found")
	ErrDatesUnavailable = errors.New("requested dates overlap an existing reservation or blackout range")
	ErrEndBeforeStart   = errors.New("end date must be after start date")
	ErrBelowMinLease    = errors.New("lease is shorter than the plot's minimum")
)

// Date intervals are half-open [start, end): the end day is not leased.
// Two ranges overlap iff each starts before the other ends, so a lease
// ending on the day another begins is not a conflict. The same convention
// backs the daterange exclusion constraint in Postgres.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// LeaseDays returns the number of whole days in [start, end).
func LeaseDays(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

// ComputeTotalAmount prices a lease: daily rate times days, minimum one day.
func ComputeTotalAmount(dailyRate float64, start, end time.Time) float64 {
	days := LeaseDays(start, end)
	if days < 1 {
		days = 1
	}
	return dailyRate * float64(days)
}

// ValidateWindow rejects malformed or too-short lease windows before any
// database work happens.
func ValidateWindow(start, end time.Time, minLeaseDays int) error {
	if !start.Before(end) {
		return ErrEndBeforeStart
	}
	if minLeaseDays > 0 && LeaseDays(start, end) < minLeaseDays {
		return fmt.Errorf("%w: need at least %d days", ErrBelowMinLease, minLeaseDays)
	}
	return nil
}

// AvailabilityWindow is the query window for PlotAvailability, half-open.
type AvailabilityWindow struct {
	Start time.Time
	End   time.Time
}

// DefaultAvailabilityWindow covers today through one year out.
func DefaultAvailabilityWindow() AvailabilityWindow {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return AvailabilityWindow{Start: today, End: today.AddDate(1, 0, 0)}
}

// PlotAvailabilityResult lists everything that makes part of the window
// unbookable, each ordered by start date ascending.
type PlotAvailabilityResult struct {
	Reservations   []models.Reservation   `json:"reservations"`
	BlackoutRanges []models.BlackoutRange `json:"blackoutRanges"`
}

// blockingStatuses are the reservation statuses that keep dates off the
// market.
var blockingStatuses = []string{
	models.ReservationPending,
	models.ReservationApproved,
	models.ReservationActive,
}

// PlotAvailability returns all blocking reservations and blackout ranges
// intersecting the window. Read-only.
func PlotAvailability(db *gorm.DB, plotID uint, window AvailabilityWindow) (*PlotAvailabilityResult, error) {
	var plot models.Plot
	if err := db.Select("id").First(&plot, plotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlotNotFound
		}
		return nil, err
	}

	result := &PlotAvailabilityResult{
		Reservations:   []models.Reservation{},
		BlackoutRanges: []models.BlackoutRange{},
	}

	err := db.
		Where("plot_id = ? AND status IN ? AND start_date < ? AND end_date > ?",
			plotID, blockingStatuses, window.End, window.Start).
		Order("start_date ASC").
		Find(&result.Reservations).Error
	if err != nil {
		return nil, err
	}

	err = db.
		Where("plot_id = ? AND start_date < ? AND end_date > ?",
			plotID, window.End, window.Start).
		Order("start_date ASC").
		Find(&result.BlackoutRanges).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// CreateReservation books a plot for [start, end). The availability query
// runs first so most conflicts come back as a clean error without touching
// the table, but the check-then-act window is closed by the
// reservations_no_overlap exclusion constraint: when two requests race past
// the pre-check, the second insert fails with SQLSTATE 23P01 and is
// reported as the same conflict. No partial row is left behind either way.
func CreateReservation(db *gorm.DB, plot *models.Plot, renterID uint, start, end time.Time, note string) (*models.Reservation, error) {
	if err := ValidateWindow(start, end, plot.MinLeaseDays); err != nil {
		return nil, err
	}

	availability, err := PlotAvailability(db, plot.ID, AvailabilityWindow{Start: start, End: end})
	if err != nil {
		return nil, err
	}
	if len(availability.Reservations) > 0 || len(availability.BlackoutRanges) > 0 {
		return nil, ErrDatesUnavailable
	}

	status := models.ReservationPending
	if plot.InstantBook != nil && *plot.InstantBook {
		status = models.ReservationApproved
	}

	reservation := models.Reservation{
		PlotID:      plot.ID,
		RenterID:    renterID,
		StartDate:   start,
		EndDate:     end,
		Status:      status,
		TotalAmount: ComputeTotalAmount(plot.DailyRate, start, end),
		Note:        note,
		ExpiresAt:   time.Now().Add(24 * time.Hour),
	}

	if err := db.Create(&reservation).Error; err != nil {
		if IsExclusionViolation(err) {
			return nil, ErrDatesUnavailable
		}
		return nil, err
	}

	return &reservation, nil
}

// ExpirePendingReservations flips pending requests past their approval
// window to expired. Called by a scheduler endpoint.
func ExpirePendingReservations(db *gorm.DB) (int64, error) {
	res := db.Model(&models.Reservation{}).
		Where("status = ? AND expires_at < ?", models.ReservationPending, time.Now()).
		Update("status", models.ReservationExpired)
	return res.RowsAffected, res.Error
}

// IsExclusionViolation reports whether err is a Postgres exclusion
// constraint violation (SQLSTATE 23P01), raised when a reservation insert
// loses the overlap race.
func IsExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23P01"
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505). Used for follow edges, guide votes and
// usernames, where the index is the only duplicate guard.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

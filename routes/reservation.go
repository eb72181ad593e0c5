package routes

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jartman86/growshare-sub005/models"
	"github.com/jartman86/growshare-sub005/services"
	"github.com/jartman86/growshare-sub005/storage"
	"github.com/jartman86/growshare-sub005/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
)

type CreateReservationInput struct {
	PlotID    uint      `json:"plotID" validate:"required"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
	Note      string    `json:"note" validate:"max=500"`
}

// CreateReservation requests a lease on a plot. Validation and the
// availability pre-check fail fast; the overlap race between concurrent
// requests is settled by the storage layer (see services.CreateReservation).
func CreateReservation(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var input CreateReservationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var plot models.Plot
	if err := storage.DB.First(&plot, input.PlotID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if plot.Status != models.PlotStatusActive || (plot.IsActive != nil && !*plot.IsActive) {
		utils.CreateError(iris.StatusBadRequest, utils.ErrKindValidation, "Plot is not accepting reservations", ctx)
		return
	}
	if plot.OwnerID == claims.ID {
		utils.CreateError(iris.StatusBadRequest, utils.ErrKindValidation, "You cannot reserve your own plot", ctx)
		return
	}

	reservation, err := services.CreateReservation(storage.DB, &plot, claims.ID, input.StartDate, input.EndDate, input.Note)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDatesUnavailable):
			utils.CreateConflict("Selected dates are not available", ctx)
		case errors.Is(err, services.ErrEndBeforeStart), errors.Is(err, services.ErrBelowMinLease):
			utils.CreateError(iris.StatusBadRequest, utils.ErrKindValidation, err.Error(), ctx)
		default:
			utils.CreateInternalServerError(ctx)
		}
		return
	}

	storage.DB.Preload("Plot").Preload("Renter").First(reservation, reservation.ID)

	notification := models.Notification{
		UserID:  plot.OwnerID,
		Title:   "New Lease Request",
		Message: fmt.Sprintf("New request for %s from %s to %s", plot.Title, input.StartDate.Format("Jan 2, 2006"), input.EndDate.Format("Jan 2, 2006")),
		Type:    "reservation_request",
		RefID:   reservation.ID,
		RefType: "reservation",
	}
	storage.DB.Create(&notification)

	var renter models.User
	if err := storage.DB.First(&renter, claims.ID).Error; err == nil {
		renterName := fmt.Sprintf("%s %s", renter.FirstName, renter.LastName)
		go services.NewNotificationService().SendReservationRequestToOwner(
			reservation.ID, plot.ID, plot.OwnerID, claims.ID, renterName, plot.Title)
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(reservation)
}

func GetReservationsByPlotID(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var reservations []models.Reservation
	res := storage.DB.Preload("Plot").Preload("Renter").
		Where("plot_id = ?", id).Order("created_at DESC").Find(&reservations)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(reservations)
}

func GetUserReservations(ctx iris.Context) {
	userID := ctx.Params().Get("id")

	var reservations []models.Reservation
	res := storage.DB.Preload("Plot").Preload("Plot.Owner").
		Where("renter_id = ?", userID).Order("created_at DESC").Find(&reservations)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(reservations)
}

// GetOwnerReservations returns reservations across all plots owned by the
// authenticated landowner.
func GetOwnerReservations(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var reservations []models.Reservation
	res := storage.DB.
		Joins("JOIN plots p ON p.id = reservations.plot_id").
		Where("p.owner_id = ?", userID).
		Preload("Plot").
		Preload("Renter").
		Order("reservations.created_at DESC").
		Find(&reservations)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(reservations)
}

type UpdateReservationStatusInput struct {
	Status string `json:"status" validate:"required,oneof=approved rejected active completed cancelled"`
}

// UpdateReservationStatus moves a reservation along its lifecycle. Approval
// and rejection are owner actions; activation and completion also come from
// the scheduler. Terminal states never resurrect.
func UpdateReservationStatus(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	var input UpdateReservationStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var reservation models.Reservation
	if err := storage.DB.Preload("Plot").First(&reservation, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if reservation.Plot == nil || (reservation.Plot.OwnerID != claims.ID && !claims.IsAdmin()) {
		utils.CreateForbidden(ctx)
		return
	}

	// A pending request past its approval window expires instead of moving.
	if reservation.Status == models.ReservationPending && time.Now().After(reservation.ExpiresAt) {
		reservation.Status = models.ReservationExpired
		storage.DB.Save(&reservation)
		utils.CreateConflict("Reservation request has expired", ctx)
		return
	}

	if !models.CanTransitionReservation(reservation.Status, input.Status) {
		utils.CreateConflict(
			fmt.Sprintf("Cannot move reservation from %s to %s", reservation.Status, input.Status), ctx)
		return
	}

	reservation.Status = input.Status
	if err := storage.DB.Save(&reservation).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if input.Status == models.ReservationCompleted {
		if _, err := services.AwardStandardPoints(storage.DB, reservation.RenterID, models.PointsBookingCompleted,
			fmt.Sprintf("Completed lease of %s", reservation.Plot.Title), nil); err != nil {
			log.Printf("⚠️  points award failed (booking completed, user %d): %v", reservation.RenterID, err)
		}
	}

	notification := models.Notification{
		UserID:  reservation.RenterID,
		Title:   "Lease Request Update",
		Message: fmt.Sprintf("Your reservation for %s is now %s", reservation.Plot.Title, reservation.Status),
		Type:    "reservation_status",
		RefID:   reservation.ID,
		RefType: "reservation",
	}
	storage.DB.Create(&notification)

	if input.Status == models.ReservationApproved || input.Status == models.ReservationRejected {
		go services.NewNotificationService().SendReservationDecisionToRenter(
			reservation.ID, reservation.PlotID, reservation.RenterID, reservation.Plot.Title, input.Status)
	}

	ctx.JSON(&reservation)
}

// CancelReservation lets the renter withdraw a pending or approved request.
func CancelReservation(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	reservationID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, utils.ErrKindValidation, "Invalid reservation ID", ctx)
		return
	}

	var reservation models.Reservation
	if err := storage.DB.Preload("Plot").
		Where("id = ? AND renter_id = ?", reservationID, userID).
		First(&reservation).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if !models.CanTransitionReservation(reservation.Status, models.ReservationCancelled) {
		utils.CreateConflict(
			fmt.Sprintf("Reservation in status %s cannot be cancelled", reservation.Status), ctx)
		return
	}

	reservation.Status = models.ReservationCancelled
	if err := storage.DB.Save(&reservation).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if reservation.Plot != nil {
		notification := models.Notification{
			UserID:  reservation.Plot.OwnerID,
			Title:   "Reservation Cancelled",
			Message: fmt.Sprintf("The reservation for %s was cancelled by the renter", reservation.Plot.Title),
			Type:    "reservation_cancelled",
			RefID:   reservation.ID,
			RefType: "reservation",
		}
		storage.DB.Create(&notification)
	}

	ctx.JSON(iris.Map{"cancelled": true})
}

// ExpirePendingReservations is a cron-like endpoint for a scheduler: flips
// pending requests past their 24h window to expired.
func ExpirePendingReservations(ctx iris.Context) {
	n, err := services.ExpirePendingReservations(storage.DB)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"expired": n})
}

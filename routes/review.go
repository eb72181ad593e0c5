package routes

import (
	"fmt"
	"log"

	"github.com/jartman86/growshare-sub005/models"
	"github.com/jartman86/growshare-sub005/services"
	"github.com/jartman86/growshare-sub005/storage"
	"github.com/jartman86/growshare-sub005/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
)

type CreateReviewInput struct {
	ReservationID uint   `json:"reservationID" validate:"required"`
	Stars         int    `json:"stars" validate:"required,gte=1,lte=5"`
	Title         string `json:"title" validate:"max=200"`
	Body          string `json:"body" validate:"max=5000"`
}

// CreateReview accepts one review per completed reservation, by its renter.
// The unique index on reservation_id is the duplicate guard.
func CreateReview(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var input CreateReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var reservation models.Reservation
	if err := storage.DB.Preload("Plot").First(&reservation, input.ReservationID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if reservation.RenterID != claims.ID {
		utils.CreateForbidden(ctx)
		return
	}
	if reservation.Status != models.ReservationCompleted {
		utils.CreateError(iris.StatusBadRequest, utils.ErrKindValidation,
			"Only completed reservations can be reviewed", ctx)
		return
	}

	review := models.Review{
		UserID:        claims.ID,
		PlotID:        reservation.PlotID,
		ReservationID: &reservation.ID,
		Title:         input.Title,
		Body:          input.Body,
		Stars:         input.Stars,
		IsVerified:    true,
	}
	if err := storage.DB.Create(&review).Error; err != nil {
		if services.IsUniqueViolation(err) {
			utils.CreateConflict("This reservation was already reviewed", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	refreshPlotRating(reservation.PlotID)

	title := "Wrote a review"
	if reservation.Plot != nil {
		title = fmt.Sprintf("Reviewed %s", reservation.Plot.Title)
	}
	if _, err := services.AwardStandardPoints(storage.DB, claims.ID, models.PointsReviewWritten, title, nil); err != nil {
		log.Printf("⚠️  points award failed (review written, user %d): %v", claims.ID, err)
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(&review)
}

func ListPlotReviews(ctx iris.Context) {
	plotID := ctx.Params().Get("plotId")

	var reviews []models.Review
	if err := storage.DB.Preload("User").
		Where("plot_id = ? AND hidden = false", plotID).
		Order("created_at DESC").Find(&reviews).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(reviews)
}

// refreshPlotRating recomputes the cached average stars on the plot.
func refreshPlotRating(plotID uint) {
	var avg float32
	row := storage.DB.Model(&models.Review{}).
		Where("plot_id = ? AND hidden = false", plotID).
		Select("COALESCE(AVG(stars), 0)").Row()
	if err := row.Scan(&avg); err != nil {
		return
	}
	storage.DB.Model(&models.Plot{}).Where("id = ?", plotID).Update("rating", avg)
}

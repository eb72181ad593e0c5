package routes

import (
	"github.com/jartman86/growshare-sub005/models"
	"github.com/jartman86/growshare-sub005/storage"
	"github.com/jartman86/growshare-sub005/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
)

type CreateDisputeInput struct {
	ReportedID    uint   `json:"reportedID" validate:"required"`
	ReservationID *uint  `json:"reservationID"`
	RefType       string `json:"refType" validate:"omitempty,oneof=reservation guide review profile"`
	RefID         *uint  `json:"refID"`
	Subject       string `json:"subject" validate:"required,max=200"`
	Details       string `json:"details" validate:"max=5000"`
}

// CreateDispute files a report against another account, optionally tied to
// a reservation or a piece of content. It lands in the admin queue as
// pending.
func CreateDispute(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var input CreateDisputeInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.ReportedID == claims.ID {
		utils.CreateError(iris.StatusBadRequest, utils.ErrKindValidation, "You cannot report yourself", ctx)
		return
	}

	var reported models.User
	if err := storage.DB.Select("id").First(&reported, input.ReportedID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if input.ReservationID != nil {
		var reservation models.Reservation
		if err := storage.DB.Preload("Plot").First(&reservation, *input.ReservationID).Error; err != nil {
			utils.CreateNotFound(ctx)
			return
		}
		// Only the two parties to a reservation may dispute it.
		isRenter := reservation.RenterID == claims.ID
		isOwner := reservation.Plot != nil && reservation.Plot.OwnerID == claims.ID
		if !isRenter && !isOwner {
			utils.CreateForbidden(ctx)
			return
		}
	}

	dispute := models.Dispute{
		ReporterID:    claims.ID,
		ReportedID:    input.ReportedID,
		ReservationID: input.ReservationID,
		RefType:       input.RefType,
		RefID:         input.RefID,
		Subject:       input.Subject,
		Details:       input.Details,
		Status:        models.DisputePending,
	}
	if err := storage.DB.Create(&dispute).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(&dispute)
}

// GetMyDisputes lists disputes the account filed or is named in.
func GetMyDisputes(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var disputes []models.Dispute
	if err := storage.DB.Preload("Reported").Preload("Reporter").
		Where("reporter_id = ? OR reported_id = ?", claims.ID, claims.ID).
		Order("created_at DESC").Find(&disputes).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(disputes)
}

func GetDispute(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	var dispute models.Dispute
	if err := storage.DB.Preload("Reporter").Preload("Reported").Preload("Reservation").
		First(&dispute, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if dispute.ReporterID != claims.ID && dispute.ReportedID != claims.ID && !claims.IsAdmin() {
		utils.CreateForbidden(ctx)
		return
	}

	ctx.JSON(&dispute)
}

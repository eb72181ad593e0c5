package routes

import (
	"net/http"
	"time"

	"github.com/jartman86/growshare-sub005/models"
	"github.com/jartman86/growshare-sub005/services"
	"github.com/jartman86/growshare-sub005/storage"
	"github.com/jartman86/growshare-sub005/utils"

	"github.com/kataras/iris/v12"
)

// GET /admin/reservations?status=&owner_id=&renter_id=&date_from=&date_to=
func AdminListReservations(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	status := ctx.URLParamDefault("status", "")
	ownerID := ctx.URLParamDefault("owner_id", "")
	renterID := ctx.URLParamDefault("renter_id", "")
	dateFrom := ctx.URLParamDefault("date_from", "")
	dateTo := ctx.URLParamDefault("date_to", "")

	q := storage.DB.Model(&models.Reservation{})
	if status != "" {
		q = q.Where("reservations.status = ?", status)
	}
	if ownerID != "" {
		q = q.Joins("JOIN plots ON plots.id = reservations.plot_id").
			Where("plots.owner_id = ?", ownerID)
	}
	if renterID != "" {
		q = q.Where("renter_id = ?", renterID)
	}
	if dateFrom != "" {
		if t, err := time.Parse(time.RFC3339, dateFrom); err == nil {
			q = q.Where("start_date >= ?", t)
		}
	}
	if dateTo != "" {
		if t, err := time.Parse(time.RFC3339, dateTo); err == nil {
			q = q.Where("end_date <= ?", t)
		}
	}

	var total int64
	q.Count(&total)

	var items []models.Reservation
	if err := q.Preload("Plot").Preload("Renter").Offset((page - 1) * perPage).
		Limit(perPage).Order("created_at DESC").Find(&items).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.JSONPage(ctx, items, page, perPage, total)
}

// GET /admin/reservations/:id
func AdminGetReservation(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(http.StatusBadRequest, utils.ErrKindValidation, "invalid id", ctx)
		return
	}
	var res models.Reservation
	if err := storage.DB.Preload("Plot").Preload("Renter").First(&res, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": &res})
}

// POST /admin/reservations/:id/cancel { reason }
func AdminCancelReservation(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(http.StatusBadRequest, utils.ErrKindValidation, "invalid id", ctx)
		return
	}
	var body struct {
		Reason string `json:"reason"`
	}
	if err := ctx.ReadJSON(&body); err != nil || body.Reason == "" {
		utils.CreateError(http.StatusBadRequest, utils.ErrKindValidation, "reason is required", ctx)
		return
	}

	var res models.Reservation
	if err := storage.DB.First(&res, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if !models.CanTransitionReservation(res.Status, models.ReservationCancelled) {
		utils.CreateConflict("reservation cannot be cancelled from status "+res.Status, ctx)
		return
	}

	before := res
	res.Status = models.ReservationCancelled
	res.Note = body.Reason
	if err := storage.DB.Save(&res).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.Audit(ctx, "reservation.cancel", "reservation", res.ID, before, res)

	var plot models.Plot
	if err := storage.DB.First(&plot, res.PlotID).Error; err == nil {
		go services.NewNotificationService().SendReservationDecisionToRenter(
			res.ID, res.PlotID, res.RenterID, plot.Title, res.Status)
	}

	ctx.JSON(iris.Map{"data": &res})
}

// PATCH /admin/reservations/:id/status { status }
func AdminUpdateReservationStatus(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(http.StatusBadRequest, utils.ErrKindValidation, "invalid id", ctx)
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := ctx.ReadJSON(&body); err != nil || body.Status == "" {
		utils.CreateError(http.StatusBadRequest, utils.ErrKindValidation, "status is required", ctx)
		return
	}

	var res models.Reservation
	if err := storage.DB.First(&res, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if !models.CanTransitionReservation(res.Status, body.Status) {
		utils.CreateConflict("cannot transition reservation from "+res.Status+" to "+body.Status, ctx)
		return
	}

	before := res
	res.Status = body.Status
	if err := storage.DB.Save(&res).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.Audit(ctx, "reservation.status_update", "reservation", res.ID, before, res)
	ctx.JSON(iris.Map{"data": &res})
}

package routes

import (
	"errors"
	"time"

	"github.com/jartman86/growshare-sub005/models"
	"github.com/jartman86/growshare-sub005/services"
	"github.com/jartman86/growshare-sub005/storage"
	"github.com/jartman86/growshare-sub005/utils"

	"github.com/kataras/iris/v12"
)

// GetPlotAvailability returns everything that blocks part of the window:
// open reservations and blackout ranges, each sorted by start date. The
// window defaults to [today, today+1y) when not given.
//
// GET /api/plot/{id}/availability?start=2026-06-01&end=2026-09-01
func GetPlotAvailability(ctx iris.Context) {
	plotID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, utils.ErrKindValidation, "Invalid plot ID", ctx)
		return
	}

	window := services.DefaultAvailabilityWindow()

	if startStr := ctx.URLParam("start"); startStr != "" {
		start, parseErr := time.Parse("2006-01-02", startStr)
		if parseErr != nil {
			utils.CreateError(iris.StatusBadRequest, utils.ErrKindValidation, "Invalid start date, expected YYYY-MM-DD", ctx)
			return
		}
		window.Start = start
	}
	if endStr := ctx.URLParam("end"); endStr != "" {
		end, parseErr := time.Parse("2006-01-02", endStr)
		if parseErr != nil {
			utils.CreateError(iris.StatusBadRequest, utils.ErrKindValidation, "Invalid end date, expected YYYY-MM-DD", ctx)
			return
		}
		window.End = end
	}

	if !window.Start.Before(window.End) {
		utils.CreateError(iris.StatusBadRequest, utils.ErrKindValidation, "end must be after start", ctx)
		return
	}

	result, err := services.PlotAvailability(storage.DB, plotID, window)
	if err != nil {
		if errors.Is(err, services.ErrPlotNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(result)
}

type BlackoutInput struct {
	PlotID    uint      `json:"plotID" validate:"required"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
	Reason    string    `json:"reason" validate:"max=200"`
}

// CreateBlackoutRange takes a window off the market, independent of any
// reservation. Owner only.
func CreateBlackoutRange(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input BlackoutInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if !input.StartDate.Before(input.EndDate) {
		utils.CreateError(iris.StatusBadRequest, utils.ErrKindValidation, "endDate must be after startDate", ctx)
		return
	}

	var plot models.Plot
	if err := storage.DB.Where("id = ? AND owner_id = ?", input.PlotID, userID).First(&plot).Error; err != nil {
		utils.CreateForbidden(ctx)
		return
	}

	blackout := models.BlackoutRange{
		PlotID:    input.PlotID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Reason:    input.Reason,
	}
	if err := storage.DB.Create(&blackout).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(&blackout)
}

func GetPlotBlackoutRanges(ctx iris.Context) {
	plotID := ctx.Params().Get("id")

	var blackouts []models.BlackoutRange
	if err := storage.DB.Where("plot_id = ?", plotID).
		Order("start_date ASC").Find(&blackouts).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(blackouts)
}

func DeleteBlackoutRange(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().Get("id")

	var blackout models.BlackoutRange
	if err := storage.DB.Preload("Plot").First(&blackout, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if blackout.Plot == nil || blackout.Plot.OwnerID != userID {
		utils.CreateForbidden(ctx)
		return
	}

	if err := storage.DB.Delete(&blackout).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"deleted": true})
}

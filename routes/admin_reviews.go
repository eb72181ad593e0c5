package routes

import (
	"net/http"
	"strconv"

	"github.com/jartman86/growshare-sub005/models"
	"github.com/jartman86/growshare-sub005/storage"
	"github.com/jartman86/growshare-sub005/utils"

	"github.com/kataras/iris/v12"
)

// GET /admin/reviews?plot_id=&stars=&page=&per_page=
func AdminListReviews(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	plotID := ctx.URLParamDefault("plot_id", "")
	stars := ctx.URLParamDefault("stars", "")

	q := storage.DB.Model(&models.Review{})
	if plotID != "" {
		q = q.Where("plot_id = ?", plotID)
	}
	if stars != "" {
		if s, err := strconv.Atoi(stars); err == nil {
			q = q.Where("stars = ?", s)
		}
	}

	var total int64
	q.Count(&total)

	var items []models.Review
	if err := q.Preload("User").Preload("Plot").Offset((page - 1) * perPage).
		Limit(perPage).Order("created_at DESC").Find(&items).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.JSONPage(ctx, items, page, perPage, total)
}

// PATCH /admin/reviews/:id/visibility { hidden }
func AdminUpdateReviewVisibility(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(http.StatusBadRequest, utils.ErrKindValidation, "invalid id", ctx)
		return
	}
	var body struct {
		Hidden bool `json:"hidden"`
	}
	if err := ctx.ReadJSON(&body); err != nil {
		utils.CreateError(http.StatusBadRequest, utils.ErrKindValidation, "invalid body", ctx)
		return
	}

	var rev models.Review
	if err := storage.DB.First(&rev, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	before := rev
	rev.Hidden = body.Hidden
	if err := storage.DB.Save(&rev).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	refreshPlotRating(rev.PlotID)

	utils.Audit(ctx, "review.visibility_update", "review", rev.ID, before, rev)
	ctx.JSON(iris.Map{"data": &rev})
}

// DELETE /admin/reviews/:id
func AdminDeleteReview(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(http.StatusBadRequest, utils.ErrKindValidation, "invalid id", ctx)
		return
	}

	var rev models.Review
	if err := storage.DB.First(&rev, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	before := rev
	if err := storage.DB.Delete(&rev).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	refreshPlotRating(before.PlotID)

	utils.Audit(ctx, "review.delete", "review", before.ID, before, nil)
	ctx.StatusCode(http.StatusNoContent)
}

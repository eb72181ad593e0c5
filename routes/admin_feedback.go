package routes

import (
	"strconv"

	"github.com/jartman86/growshare-sub005/models"
	"github.com/jartman86/growshare-sub005/storage"
	"github.com/jartman86/growshare-sub005/utils"

	"github.com/kataras/iris/v12"
)

// GET /admin/feedback?rating=&page=&per_page=
func AdminListFeedback(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	rating := ctx.URLParamDefault("rating", "")

	q := storage.DB.Model(&models.Feedback{})
	if rating != "" {
		if r, err := strconv.Atoi(rating); err == nil {
			q = q.Where("rating = ?", r)
		}
	}

	var total int64
	q.Count(&total)

	var items []models.Feedback
	if err := q.Preload("User").Offset((page - 1) * perPage).Limit(perPage).
		Order("created_at DESC").Find(&items).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.JSONPage(ctx, items, page, perPage, total)
}

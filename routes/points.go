package routes

import (
	"github.com/jartman86/growshare-sub005/models"
	"github.com/jartman86/growshare-sub005/services"
	"github.com/jartman86/growshare-sub005/storage"
	"github.com/jartman86/growshare-sub005/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
)

// GetMyPointsHistory lists the authenticated account's ledger, newest first.
func GetMyPointsHistory(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("perPage", 50)
	if perPage <= 0 || perPage > 200 {
		perPage = 50
	}

	var total int64
	storage.DB.Model(&models.PointsEvent{}).Where("user_id = ?", claims.ID).Count(&total)

	var events []models.PointsEvent
	if err := storage.DB.Where("user_id = ?", claims.ID).
		Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&events).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, events, page, perPage, total)
}

// GetMyLevel returns the level card: total, level, thresholds and progress.
func GetMyLevel(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var user models.User
	if err := storage.DB.Select("id, total_points, level").First(&user, claims.ID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	level := services.CurrentLevel(user.TotalPoints)
	ctx.JSON(iris.Map{
		"totalPoints":     user.TotalPoints,
		"level":           level,
		"levelStartsAt":   services.LevelThreshold(level),
		"nextLevelAt":     services.PointsForNextLevel(level),
		"progressPercent": services.LevelProgress(user.TotalPoints),
	})
}

// GetMyActivity returns the authenticated account's activity feed.
func GetMyActivity(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var activities []models.Activity
	if err := storage.DB.Where("user_id = ?", claims.ID).
		Order("created_at DESC").Limit(100).
		Find(&activities).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(activities)
}

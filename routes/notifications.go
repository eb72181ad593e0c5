package routes

import (
	"time"

	"github.com/jartman86/growshare-sub005/models"
	"github.com/jartman86/growshare-sub005/storage"
	"github.com/jartman86/growshare-sub005/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
)

func ListMyNotifications(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var notifications []models.Notification
	if err := storage.DB.Where("user_id = ?", claims.ID).
		Order("created_at DESC").Limit(100).Find(&notifications).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var unread int64
	storage.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", claims.ID).Count(&unread)

	ctx.JSON(iris.Map{"notifications": notifications, "unread": unread})
}

func MarkNotificationRead(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	var notification models.Notification
	if err := storage.DB.Where("id = ? AND user_id = ?", id, claims.ID).
		First(&notification).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	now := time.Now()
	notification.IsRead = true
	notification.ReadAt = &now
	if err := storage.DB.Save(&notification).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(&notification)
}

func MarkAllNotificationsRead(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	now := time.Now()
	res := storage.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", claims.ID).
		Updates(map[string]interface{}{"is_read": true, "read_at": now})
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"marked": res.RowsAffected})
}

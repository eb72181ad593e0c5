package routes

import (
	"time"

	"github.com/jartman86/growshare-sub005/models"
	"github.com/jartman86/growshare-sub005/storage"

	"github.com/kataras/iris/v12"
)

// GET /admin/stats
func AdminStats(ctx iris.Context) {
	var flaggedPlots int64
	storage.DB.Model(&models.Plot{}).Where("status = ?", models.PlotStatusFlagged).Count(&flaggedPlots)
	var pendingVerifications int64
	storage.DB.Model(&models.User{}).Where("verification_status = ?", "pending").Count(&pendingVerifications)
	var pendingDisputes int64
	storage.DB.Model(&models.Dispute{}).Where("status = ?", models.DisputePending).Count(&pendingDisputes)

	since7 := time.Now().AddDate(0, 0, -7)
	since30 := time.Now().AddDate(0, 0, -30)
	var newRes7, newRes30 int64
	storage.DB.Model(&models.Reservation{}).Where("created_at >= ?", since7).Count(&newRes7)
	storage.DB.Model(&models.Reservation{}).Where("created_at >= ?", since30).Count(&newRes30)
	var newUsers30 int64
	storage.DB.Model(&models.User{}).Where("created_at >= ?", since30).Count(&newUsers30)
	var pointsAwarded30 int64
	storage.DB.Model(&models.PointsEvent{}).Where("created_at >= ?", since30).
		Select("COALESCE(SUM(points), 0)").Row().Scan(&pointsAwarded30)

	ctx.JSON(iris.Map{
		"data": iris.Map{
			"flagged_plots":         flaggedPlots,
			"pending_verifications": pendingVerifications,
			"pending_disputes":      pendingDisputes,
			"new_reservations_7d":   newRes7,
			"new_reservations_30d":  newRes30,
			"new_users_30d":         newUsers30,
			"points_awarded_30d":    pointsAwarded30,
		},
	})
}

// GET /admin/activity
func AdminActivity(ctx iris.Context) {
	var logs []models.AuditLog
	storage.DB.Order("created_at DESC").Limit(100).Find(&logs)
	ctx.JSON(iris.Map{"data": logs})
}

package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/jartman86/growshare-sub005/models"
	"github.com/jartman86/growshare-sub005/storage"
	"github.com/jartman86/growshare-sub005/utils"

	"github.com/kataras/iris/v12"
)

// GET /admin/plots?status=&resource_type=&owner_id=&search=&created_from=&created_to=
func AdminListPlots(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	status := ctx.URLParamDefault("status", "")
	resourceType := ctx.URLParamDefault("resource_type", "")
	ownerID := ctx.URLParamDefault("owner_id", "")
	search := strings.TrimSpace(ctx.URLParamDefault("search", ""))
	createdFrom := ctx.URLParamDefault("created_from", "")
	createdTo := ctx.URLParamDefault("created_to", "")

	q := storage.DB.Model(&models.Plot{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if resourceType != "" {
		q = q.Where("resource_type = ?", resourceType)
	}
	if ownerID != "" {
		q = q.Where("owner_id = ?", ownerID)
	}
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("lower(title) LIKE ? OR lower(description) LIKE ? OR lower(city) LIKE ?", like, like, like)
	}
	if createdFrom != "" {
		if t, err := time.Parse(time.RFC3339, createdFrom); err == nil {
			q = q.Where("created_at >= ?", t)
		}
	}
	if createdTo != "" {
		if t, err := time.Parse(time.RFC3339, createdTo); err == nil {
			q = q.Where("created_at <= ?", t)
		}
	}

	var total int64
	q.Count(&total)

	var plots []models.Plot
	if err := q.Preload("Owner").Offset((page - 1) * perPage).Limit(perPage).
		Order("created_at DESC").Find(&plots).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.JSONPage(ctx, plots, page, perPage, total)
}

// GET /admin/plots/:id?include=owner,reservations,reviews
func AdminGetPlot(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(http.StatusBadRequest, utils.ErrKindValidation, "invalid id", ctx)
		return
	}
	include := strings.Split(strings.TrimSpace(ctx.URLParamDefault("include", "")), ",")

	q := storage.DB.Model(&models.Plot{})
	for _, inc := range include {
		switch strings.TrimSpace(inc) {
		case "owner":
			q = q.Preload("Owner")
		case "reservations":
			q = q.Preload("Reservations")
		case "reviews":
			q = q.Preload("Reviews")
		case "blackouts":
			q = q.Preload("BlackoutRanges")
		}
	}

	var plot models.Plot
	if err := q.First(&plot, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": &plot})
}

// PATCH /admin/plots/:id/status { status, note }
func AdminUpdatePlotStatus(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(http.StatusBadRequest, utils.ErrKindValidation, "invalid id", ctx)
		return
	}
	var body struct {
		Status string `json:"status"`
		Note   string `json:"note"`
	}
	if err := ctx.ReadJSON(&body); err != nil || body.Status == "" {
		utils.CreateError(http.StatusBadRequest, utils.ErrKindValidation, "status is required", ctx)
		return
	}
	switch body.Status {
	case models.PlotStatusActive, models.PlotStatusSuspended, models.PlotStatusFlagged:
	default:
		utils.CreateError(http.StatusBadRequest, utils.ErrKindValidation, "unknown status", ctx)
		return
	}

	var plot models.Plot
	if err := storage.DB.First(&plot, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	before := plot
	plot.Status = body.Status
	if body.Note != "" {
		plot.FlagReason = body.Note
	}
	if err := storage.DB.Save(&plot).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.Audit(ctx, "plot.status_update", "plot", plot.ID, before, plot)

	if before.Status != plot.Status {
		notification := models.Notification{
			UserID:  plot.OwnerID,
			Type:    "listing_status",
			Title:   "Listing update",
			Message: "Your listing " + plot.Title + " is now " + plot.Status,
			RefType: "plot",
			RefID:   plot.ID,
		}
		storage.DB.Create(&notification)
	}

	ctx.JSON(iris.Map{"data": &plot})
}

// POST /admin/plots/:id/flag { reason }
func AdminFlagPlot(ctx iris.Context) {
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

	var plot models.Plot
	if err := storage.DB.First(&plot, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	before := plot
	plot.Status = models.PlotStatusFlagged
	plot.FlagReason = body.Reason
	if err := storage.DB.Save(&plot).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.Audit(ctx, "plot.flag", "plot", plot.ID, before, plot)
	ctx.JSON(iris.Map{"data": &plot})
}

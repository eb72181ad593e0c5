package routes

import (
	"net/http"
	"time"

	"github.com/jartman86/growshare-sub005/models"
	"github.com/jartman86/growshare-sub005/services"
	"github.com/jartman86/growshare-sub005/storage"
	"github.com/jartman86/growshare-sub005/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
)

// GET /admin/disputes?status=&page=&per_page=
func AdminListDisputes(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	status := ctx.URLParamDefault("status", "")

	q := storage.DB.Model(&models.Dispute{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	q.Count(&total)

	var items []models.Dispute
	if err := q.Preload("Reporter").Preload("Reported").Preload("Reservation").
		Offset((page - 1) * perPage).Limit(perPage).
		Order("created_at ASC").Find(&items).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.JSONPage(ctx, items, page, perPage, total)
}

// POST /admin/disputes/:id/resolve { status, resolution }
func AdminResolveDispute(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(http.StatusBadRequest, utils.ErrKindValidation, "invalid id", ctx)
		return
	}

	var body struct {
		Status     string `json:"status"` // resolved or dismissed
		Resolution string `json:"resolution"`
	}
	if err := ctx.ReadJSON(&body); err != nil ||
		(body.Status != models.DisputeResolved && body.Status != models.DisputeDismissed) {
		utils.CreateError(http.StatusBadRequest, utils.ErrKindValidation, "status must be resolved or dismissed", ctx)
		return
	}

	var dispute models.Dispute
	if err := storage.DB.First(&dispute, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if dispute.Status != models.DisputePending {
		utils.CreateConflict("dispute is already "+dispute.Status, ctx)
		return
	}

	before := dispute
	now := time.Now()
	dispute.Status = body.Status
	dispute.Resolution = body.Resolution
	dispute.ResolvedByID = &claims.ID
	dispute.ResolvedAt = &now
	if err := storage.DB.Save(&dispute).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "dispute.resolve", "dispute", dispute.ID, before, dispute)

	notification := models.Notification{
		UserID:  dispute.ReporterID,
		Type:    "dispute_update",
		Title:   "Dispute update",
		Message: "Your report has been " + dispute.Status,
		RefType: "dispute",
		RefID:   dispute.ID,
	}
	storage.DB.Create(&notification)
	go services.NewNotificationService().SendDisputeUpdateToReporter(dispute.ID, dispute.ReporterID, dispute.Status)

	ctx.JSON(iris.Map{"data": &dispute})
}

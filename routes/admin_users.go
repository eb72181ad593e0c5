package routes

import (
	"log"
	"net/http"

	"github.com/jartman86/growshare-sub005/models"
	"github.com/jartman86/growshare-sub005/services"
	"github.com/jartman86/growshare-sub005/storage"
	"github.com/jartman86/growshare-sub005/utils"

	"github.com/kataras/iris/v12"
)

// GET /admin/users handled in admin.go (AdminListUsers)

// GET /admin/users/:id — full user record plus recent points events and
// admin actions touching this account.
func AdminGetUser(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(http.StatusBadRequest, utils.ErrKindValidation, "invalid id", ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var events []models.PointsEvent
	storage.DB.Where("user_id = ?", id).Order("created_at DESC").Limit(20).Find(&events)

	var actions []models.AuditLog
	storage.DB.Where("resource_type = ? AND resource_id = ?", "user", id).
		Order("created_at DESC").Limit(50).Find(&actions)

	ctx.JSON(iris.Map{
		"data": iris.Map{
			"user":         &user,
			"pointsEvents": events,
			"adminActions": actions,
		},
	})
}

// POST /admin/users/:id/verify { status, notes } — approves or rejects a
// submitted identity verification. First approval awards identity points.
func AdminVerifyUser(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(http.StatusBadRequest, utils.ErrKindValidation, "invalid id", ctx)
		return
	}

	var body struct {
		Status string `json:"status"` // pending, approved, rejected
		Notes  string `json:"notes"`
	}
	if err := ctx.ReadJSON(&body); err != nil ||
		(body.Status != "approved" && body.Status != "rejected" && body.Status != "pending") {
		utils.CreateError(http.StatusBadRequest, utils.ErrKindValidation, "status must be pending/approved/rejected", ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	before := user
	firstApproval := body.Status == "approved" && (user.IDVerified == nil || !*user.IDVerified)

	user.VerificationStatus = body.Status
	if body.Status == "approved" {
		verified := true
		user.IDVerified = &verified
	}
	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if firstApproval {
		if _, err := services.AwardStandardPoints(storage.DB, user.ID, models.PointsVerifiedIdentity, "Identity verified", nil); err != nil {
			log.Printf("⚠️  points award failed (verified identity, user %d): %v", user.ID, err)
		}
	}

	notification := models.Notification{
		UserID:  user.ID,
		Type:    "verification",
		Title:   "Identity verification",
		Message: "Your identity verification was " + body.Status,
		RefType: "user",
		RefID:   user.ID,
	}
	storage.DB.Create(&notification)

	utils.Audit(ctx, "user.verify", "user", user.ID, before, user)
	ctx.JSON(iris.Map{"data": &user})
}

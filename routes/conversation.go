package routes

import (
	"github.com/jartman86/growshare-sub005/models"
	"github.com/jartman86/growshare-sub005/storage"
	"github.com/jartman86/growshare-sub005/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm"
)

type CreateConversationInput struct {
	OwnerID  uint  `json:"ownerID" validate:"required"`
	RenterID uint  `json:"renterID" validate:"required"`
	PlotID   *uint `json:"plotID"`
}

// canMessage gates new conversations on the target's messaging permission.
func canMessage(target *models.User) bool {
	return target.AllowsMessages == nil || *target.AllowsMessages
}

func CreateConversation(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var input CreateConversationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if claims.ID != input.OwnerID && claims.ID != input.RenterID {
		utils.CreateForbidden(ctx)
		return
	}

	otherID := input.OwnerID
	if claims.ID == input.OwnerID {
		otherID = input.RenterID
	}
	var other models.User
	if err := storage.DB.First(&other, otherID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if !canMessage(&other) {
		utils.CreateForbidden(ctx)
		return
	}

	// Reuse an existing thread for the same pair and plot.
	var existing models.Conversation
	query := storage.DB.Where("owner_id = ? AND renter_id = ?", input.OwnerID, input.RenterID)
	if input.PlotID != nil {
		query = query.Where("plot_id = ?", *input.PlotID)
	}
	if err := query.First(&existing).Error; err == nil {
		ctx.JSON(&existing)
		return
	}

	conversation := models.Conversation{
		OwnerID:  input.OwnerID,
		RenterID: input.RenterID,
		PlotID:   input.PlotID,
	}
	if err := storage.DB.Create(&conversation).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(&conversation)
}

func GetConversationByID(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	var conversation models.Conversation
	if err := storage.DB.Preload("Owner").Preload("Renter").Preload("Plot").
		Preload("Messages", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&conversation, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if conversation.OwnerID != claims.ID && conversation.RenterID != claims.ID {
		utils.CreateForbidden(ctx)
		return
	}

	ctx.JSON(&conversation)
}

func GetConversationsByUserID(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var conversations []models.Conversation
	if err := storage.DB.Preload("Owner").Preload("Renter").Preload("Plot").
		Where("owner_id = ? OR renter_id = ?", id, id).
		Order("updated_at DESC").Find(&conversations).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(conversations)
}

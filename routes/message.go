package routes

import (
	"fmt"
	"time"

	"github.com/jartman86/growshare-sub005/models"
	"github.com/jartman86/growshare-sub005/services"
	"github.com/jartman86/growshare-sub005/storage"
	"github.com/jartman86/growshare-sub005/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
)

type CreateMessageInput struct {
	ConversationID uint   `json:"conversationID" validate:"required"`
	Text           string `json:"text" validate:"required,max=4000"`
	Type           string `json:"type" validate:"omitempty,oneof=text plot_card"`
	RefID          *uint  `json:"refID"`
}

func CreateMessage(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var input CreateMessageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var conversation models.Conversation
	if err := storage.DB.First(&conversation, input.ConversationID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if conversation.OwnerID != claims.ID && conversation.RenterID != claims.ID {
		utils.CreateForbidden(ctx)
		return
	}

	receiverID := conversation.OwnerID
	if claims.ID == conversation.OwnerID {
		receiverID = conversation.RenterID
	}

	msgType := input.Type
	if msgType == "" {
		msgType = "text"
	}

	message := models.Message{
		ConversationID: conversation.ID,
		SenderID:       claims.ID,
		ReceiverID:     receiverID,
		Text:           input.Text,
		Type:           msgType,
		RefID:          input.RefID,
		State:          "sent",
	}
	if msgType == "plot_card" && input.RefID != nil {
		var plot models.Plot
		if err := storage.DB.First(&plot, *input.RefID).Error; err == nil {
			message.RefType = "plot"
			message.PreviewTitle = plot.Title
		}
	}

	if err := storage.DB.Create(&message).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	// Touch the thread so conversation lists sort by recency.
	storage.DB.Model(&conversation).Update("updated_at", time.Now())

	var sender models.User
	if err := storage.DB.First(&sender, claims.ID).Error; err == nil {
		senderName := fmt.Sprintf("%s %s", sender.FirstName, sender.LastName)
		preview := previewText(input.Text, 80)
		go services.NewNotificationService().SendMessageNotification(receiverID, conversation.ID, senderName, preview)
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(&message)
}

// previewText shortens s for push payloads, cutting on a rune boundary so a
// multi-byte character is never split.
func previewText(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}

func ListMessages(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	conversationID := ctx.URLParam("conversationID")
	if conversationID == "" {
		utils.CreateError(iris.StatusBadRequest, utils.ErrKindValidation, "conversationID is required", ctx)
		return
	}

	var conversation models.Conversation
	if err := storage.DB.First(&conversation, conversationID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if conversation.OwnerID != claims.ID && conversation.RenterID != claims.ID {
		utils.CreateForbidden(ctx)
		return
	}

	var messages []models.Message
	if err := storage.DB.Where("conversation_id = ?", conversation.ID).
		Order("created_at ASC").Find(&messages).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(messages)
}

type SetMessageStateInput struct {
	MessageID uint   `json:"messageID" validate:"required"`
	State     string `json:"state" validate:"required,oneof=delivered seen"`
}

func SetMessageState(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var input SetMessageStateInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var message models.Message
	if err := storage.DB.First(&message, input.MessageID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if message.ReceiverID != claims.ID {
		utils.CreateForbidden(ctx)
		return
	}

	now := time.Now()
	message.State = input.State
	if input.State == "delivered" && message.DeliveredAt == nil {
		message.DeliveredAt = &now
	}
	if input.State == "seen" {
		if message.DeliveredAt == nil {
			message.DeliveredAt = &now
		}
		message.SeenAt = &now
	}

	if err := storage.DB.Save(&message).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(&message)
}

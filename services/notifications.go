package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"github.com/jartman86/growshare-sub005/models"
	"github.com/jartman86/growshare-sub005/storage"
	"github.com/jartman86/growshare-sub005/utils"
)

// NotificationService handles all push notification logic
type NotificationService struct{}

// NewNotificationService creates a new notification service instance
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotificationData represents the data payload for notifications
type NotificationData struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	PlotID   string `json:"plotId,omitempty"`
	UserID   string `json:"userId,omitempty"`
	OwnerID  string `json:"ownerId,omitempty"`
	Screen   string `json:"screen"` // target screen to navigate to
	ParamsJS string `json:"params"` // JSON string of navigation parameters
}

// getUserPushTokens retrieves all push tokens for a user, respecting the
// opt-out flag.
func (ns *NotificationService) getUserPushTokens(userID uint) ([]string, error) {
	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %v", err)
	}

	if user.AllowsNotifications == nil || !*user.AllowsNotifications || user.PushTokens == nil {
		return nil, fmt.Errorf("user %d has notifications disabled or no tokens", userID)
	}

	var tokens []string
	if err := json.Unmarshal(user.PushTokens, &tokens); err != nil {
		return nil, fmt.Errorf("failed to unmarshal push tokens: %v", err)
	}
	return tokens, nil
}

// SendNotificationToUser sends a push notification to every device token of
// a user.
func (ns *NotificationService) SendNotificationToUser(userID uint, title, body string, data NotificationData) error {
	tokens, err := ns.getUserPushTokens(userID)
	if err != nil {
		log.Printf("push skipped for user %d: %v", userID, err)
		return err
	}

	dataMap := map[string]string{
		"type":    data.Type,
		"id":      data.ID,
		"plotId":  data.PlotID,
		"userId":  data.UserID,
		"ownerId": data.OwnerID,
		"screen":  data.Screen,
		"params":  data.ParamsJS,
	}

	var lastError error
	for _, token := range tokens {
		if err := utils.SendNotification(token, title, body, dataMap); err != nil {
			log.Printf("push to token failed for user %d: %v", userID, err)
			lastError = err
		}
	}
	return lastError
}

// SendReservationRequestToOwner notifies a plot owner of a new lease request.
func (ns *NotificationService) SendReservationRequestToOwner(reservationID, plotID, ownerID, renterID uint, renterName, plotTitle string) {
	data := NotificationData{
		Type:     "reservation_request",
		ID:       strconv.FormatUint(uint64(reservationID), 10),
		PlotID:   strconv.FormatUint(uint64(plotID), 10),
		UserID:   strconv.FormatUint(uint64(renterID), 10),
		Screen:   "OwnerReservations",
		ParamsJS: fmt.Sprintf(`{"reservationID":%d}`, reservationID),
	}
	title := "New Lease Request"
	body := fmt.Sprintf("%s wants to lease %s", renterName, plotTitle)
	ns.SendNotificationToUser(ownerID, title, body, data)
}

// SendReservationDecisionToRenter notifies a grower that their request was
// approved or rejected.
func (ns *NotificationService) SendReservationDecisionToRenter(reservationID, plotID, renterID uint, plotTitle, status string) {
	data := NotificationData{
		Type:     "reservation_status",
		ID:       strconv.FormatUint(uint64(reservationID), 10),
		PlotID:   strconv.FormatUint(uint64(plotID), 10),
		Screen:   "MyReservations",
		ParamsJS: fmt.Sprintf(`{"reservationID":%d}`, reservationID),
	}
	title := "Lease Request Update"
	body := fmt.Sprintf("Your request for %s was %s", plotTitle, status)
	ns.SendNotificationToUser(renterID, title, body, data)
}

// SendLevelUpNotification congratulates a user on reaching a new level.
func (ns *NotificationService) SendLevelUpNotification(userID uint, level int) {
	data := NotificationData{
		Type:   "level_up",
		ID:     strconv.FormatUint(uint64(userID), 10),
		Screen: "Profile",
	}
	title := "Level up!"
	body := fmt.Sprintf("You reached level %d 🌱", level)
	ns.SendNotificationToUser(userID, title, body, data)
}

// SendDisputeUpdateToReporter notifies the reporter that their dispute was
// resolved or dismissed.
func (ns *NotificationService) SendDisputeUpdateToReporter(disputeID, reporterID uint, status string) {
	data := NotificationData{
		Type:     "dispute_update",
		ID:       strconv.FormatUint(uint64(disputeID), 10),
		Screen:   "Disputes",
		ParamsJS: fmt.Sprintf(`{"disputeID":%d}`, disputeID),
	}
	title := "Dispute Update"
	body := fmt.Sprintf("Your report has been %s", status)
	ns.SendNotificationToUser(reporterID, title, body, data)
}

// SendMessageNotification notifies a user of a new direct message.
func (ns *NotificationService) SendMessageNotification(receiverID, conversationID uint, senderName, preview string) {
	data := NotificationData{
		Type:     "message",
		ID:       strconv.FormatUint(uint64(conversationID), 10),
		Screen:   "Conversation",
		ParamsJS: fmt.Sprintf(`{"conversationID":%d}`, conversationID),
	}
	ns.SendNotificationToUser(receiverID, senderName, preview, data)
}

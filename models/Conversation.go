package models

import (
	"time"

	"gorm.io/gorm"
)

// Conversation is a direct message thread between two accounts, usually
// started from a plot page or a reservation.
type Conversation struct {
	gorm.Model
	OwnerID  uint  `json:"ownerID" gorm:"not null;index"`
	RenterID uint  `json:"renterID" gorm:"not null;index"`
	PlotID   *uint `json:"plotID" gorm:"index"`

	Owner    *User     `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Renter   *User     `json:"renter,omitempty" gorm:"foreignKey:RenterID"`
	Plot     *Plot     `json:"plot,omitempty" gorm:"foreignKey:PlotID"`
	Messages []Message `json:"messages,omitempty" gorm:"foreignKey:ConversationID"`
}

type Message struct {
	gorm.Model
	ConversationID uint   `json:"conversationID" gorm:"not null;index"`
	SenderID       uint   `json:"senderID"`
	ReceiverID     uint   `json:"receiverID"`
	Text           string `json:"text"`
	// Optional typed payload for rich messages (e.g., plot card)
	Type            string `json:"type" gorm:"size:32"` // text | plot_card
	PreviewTitle    string `json:"previewTitle" gorm:"size:256"`
	PreviewImageURL string `json:"previewImageURL" gorm:"size:512"`
	RefType         string `json:"refType" gorm:"size:32"` // plot
	RefID           *uint  `json:"refID" gorm:"index"`
	// Delivery state
	State       string     `json:"state" gorm:"size:16;index"` // sent|delivered|seen
	DeliveredAt *time.Time `json:"deliveredAt"`
	SeenAt      *time.Time `json:"seenAt"`
}

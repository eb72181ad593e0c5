package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Account roles. A user can hold several at once (e.g. a landowner who
// also rents tools from others), so roles are stored as a JSON array.
const (
	RoleGrower     = "grower"
	RoleLandowner  = "landowner"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

type User struct {
	gorm.Model
	FirstName      string         `json:"firstName"`
	LastName       string         `json:"lastName"`
	Username       string         `json:"username" gorm:"uniqueIndex;size:40"`
	Email          string         `json:"email" gorm:"uniqueIndex"`
	PhoneNumber    string         `json:"phoneNumber"`
	Password       string         `json:"-"`
	SocialLogin    bool           `json:"socialLogin"`
	SocialProvider string         `json:"socialProvider"`
	AvatarURL      string         `json:"avatarURL"`
	Bio            string         `json:"bio" gorm:"type:text"`
	Roles          datatypes.JSON `json:"roles"`

	// Gamification. TotalPoints is kept in lockstep with the points_events
	// ledger inside the same transaction that appends an event.
	TotalPoints int `json:"totalPoints" gorm:"default:0"`
	Level       int `json:"level" gorm:"default:1"`

	// Verification
	EmailVerified      *bool  `json:"emailVerified"`
	PhoneVerified      *bool  `json:"phoneVerified"`
	IDVerified         *bool  `json:"idVerified"`
	VerificationStatus string `json:"verificationStatus" gorm:"size:20"` // pending, approved, rejected
	IDType             string `json:"idType"`
	IDFrontImage       string `json:"-"`
	IDBackImage        string `json:"-"`

	// Privacy
	ProfileVisibility string `json:"profileVisibility" gorm:"size:10;default:public"`
	AllowsMessages    *bool  `json:"allowsMessages"`

	// Billing snapshot, owned by the payment processor. We only cache the
	// reference and the latest status pushed by provider callbacks.
	BillingCustomerID     string     `json:"-" gorm:"size:64;index"`
	SubscriptionStatus    string     `json:"subscriptionStatus" gorm:"size:24"`
	SubscriptionPeriodEnd *time.Time `json:"subscriptionPeriodEnd"`

	SavedPlots          datatypes.JSON `json:"savedPlots"`
	PushTokens          datatypes.JSON `json:"pushTokens"`
	AllowsNotifications *bool          `json:"allowsNotifications"`

	Plots []Plot `json:"plots,omitempty" gorm:"foreignKey:OwnerID;references:ID"`
}

// HasRole reports whether the account carries the given role tag.
func (u *User) HasRole(role string) bool {
	if u.Roles == nil {
		return false
	}
	var roles []string
	if err := json.Unmarshal(u.Roles, &roles); err != nil {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the account holds any administrative role.
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin) || u.HasRole(RoleSuperAdmin)
}

// MarshalJSON renders the JSON columns as proper arrays instead of raw bytes.
func (u *User) MarshalJSON() ([]byte, error) {
	type Alias User
	aux := &struct {
		Roles      []string `json:"roles"`
		SavedPlots []int    `json:"savedPlots,omitempty"`
		PushTokens []string `json:"pushTokens,omitempty"`
		Plots      []Plot   `json:"plots,omitempty"`
		*Alias
	}{
		Roles:      []string{},
		SavedPlots: []int{},
		PushTokens: []string{},
		Alias:      (*Alias)(u),
	}

	if u.Roles != nil {
		var roles []string
		if err := json.Unmarshal(u.Roles, &roles); err == nil {
			aux.Roles = roles
		}
	}
	if u.SavedPlots != nil {
		var saved []int
		if err := json.Unmarshal(u.SavedPlots, &saved); err == nil {
			aux.SavedPlots = saved
		}
	}
	if u.PushTokens != nil {
		var tokens []string
		if err := json.Unmarshal(u.PushTokens, &tokens); err == nil {
			aux.PushTokens = tokens
		}
	}
	aux.Plots = u.Plots

	return json.Marshal(aux)
}

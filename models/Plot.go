package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Bookable resource kinds.
const (
	ResourceLandPlot = "land_plot"
	ResourceTool     = "tool"
)

// Moderation states set by admins; "active" is the default for new listings.
const (
	PlotStatusActive    = "active"
	PlotStatusSuspended = "suspended"
	PlotStatusFlagged   = "flagged"
)

// Plot is a bookable resource: a piece of land offered for growing, or a
// tool offered for rent. Both share the same booking mechanics.
type Plot struct {
	gorm.Model
	OwnerID      uint           `json:"ownerID" gorm:"not null;index"`
	Title        string         `json:"title"`
	Description  string         `json:"description" gorm:"type:text"`
	ResourceType string         `json:"resourceType" gorm:"size:20;index;default:land_plot"`
	AddressLine1 string         `json:"addressLine1"`
	City         string         `json:"city"`
	State        string         `json:"state"`
	Zip          string         `json:"zip"`
	Country      string         `json:"country"`
	Lat          float32        `json:"lat"`
	Lng          float32        `json:"lng"`
	SizeSqMeters float32        `json:"sizeSqMeters"`
	SoilType     string         `json:"soilType" gorm:"size:40"`
	SunExposure  string         `json:"sunExposure" gorm:"size:20"` // full_sun, partial_shade, shade
	WaterAccess  *bool          `json:"waterAccess"`
	DailyRate    float64        `json:"dailyRate"`
	Currency     string         `json:"currency" gorm:"size:8;default:USD"`
	MinLeaseDays int            `json:"minLeaseDays" gorm:"default:1"`
	InstantBook  *bool          `json:"instantBook"`
	Images       datatypes.JSON `json:"images"`
	Status       string         `json:"status" gorm:"size:16;index;default:active"`
	FlagReason   string         `json:"flagReason,omitempty" gorm:"size:200"`
	IsActive     *bool          `json:"isActive"`
	Rating       float32        `json:"rating"`

	Owner          *User           `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Reservations   []Reservation   `json:"reservations,omitempty" gorm:"foreignKey:PlotID"`
	BlackoutRanges []BlackoutRange `json:"blackoutRanges,omitempty" gorm:"foreignKey:PlotID"`
	Reviews        []Review        `json:"reviews,omitempty" gorm:"foreignKey:PlotID"`
}

// MarshalJSON renders Images as a proper string array.
func (p *Plot) MarshalJSON() ([]byte, error) {
	type Alias Plot
	aux := &struct {
		Images []string `json:"images"`
		*Alias
	}{
		Images: []string{},
		Alias:  (*Alias)(p),
	}
	if p.Images != nil {
		var images []string
		if err := json.Unmarshal(p.Images, &images); err == nil {
			aux.Images = images
		}
	}
	return json.Marshal(aux)
}

package designers

import (
	"time"

	"marketplace-app/internal/domain/users"
)

type Designer struct {
	ID string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	UserID uint        `gorm:"not null;uniqueIndex" json:"user_id"`
	User   *users.User `gorm:"constraint:OnDelete:CASCADE;" json:"user,omitempty"`

	LogoURL          string `gorm:"column:logo_url" json:"logo,omitempty"`
	BackgroundURL    string `gorm:"column:background_url" json:"background,omitempty"`
	ShortDescription string `json:"shortDescription,omitempty"`
	About            string `json:"about,omitempty"`

	IsApproved bool `gorm:"not null;default:false" json:"is_approved"`

	CreatedAt time.Time `json:"createdTime"`
	UpdatedAt time.Time `json:"updatedTime"`
}

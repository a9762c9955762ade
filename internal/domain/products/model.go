package products

import (
	"time"

	"marketplace-app/internal/domain/designers"
)

type Category struct {
	ID   string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name string `gorm:"not null;uniqueIndex" json:"name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Product struct {
	ID string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	DesignerID string              `gorm:"type:uuid;not null;index" json:"designer_id"`
	Designer   *designers.Designer `gorm:"constraint:OnDelete:CASCADE;" json:"designer,omitempty"`

	CategoryID *string   `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category   *Category `gorm:"constraint:OnDelete:SET NULL;" json:"category,omitempty"`

	Name     string `gorm:"not null" json:"name"`
	Price    string `json:"price,omitempty"`
	ImageURL string `gorm:"column:image_url" json:"image,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

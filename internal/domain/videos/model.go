package videos

import (
	"time"

	"marketplace-app/internal/domain/designers"
	"marketplace-app/internal/domain/products"
	"marketplace-app/internal/domain/users"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type VideoType string

const (
	NormalVideo  VideoType = "NormalVideo"
	ProductVideo VideoType = "ProductVideo"
)

// Video doubles as a pending creator application while IsApproved is
// false and no URLs have been attached yet.
type Video struct {
	ID string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	UserID uint        `gorm:"not null;index" json:"user_id"`
	User   *users.User `gorm:"constraint:OnDelete:CASCADE;" json:"user,omitempty"`

	DesignerID *string             `gorm:"type:uuid;index" json:"designer_id,omitempty"`
	Designer   *designers.Designer `gorm:"constraint:OnDelete:SET NULL;" json:"designer,omitempty"`

	TypeOfVideo VideoType `gorm:"type:varchar(20);not null;default:'NormalVideo'" json:"typeOfVideo"`

	URLs pq.StringArray `gorm:"column:urls;type:text[]" json:"videoUrls"`

	Products []products.Product `gorm:"many2many:video_products;" json:"products,omitempty"`

	IsApproved bool                      `gorm:"not null;default:false" json:"is_approved"`
	Likes      int                       `gorm:"not null;default:0" json:"likes"`
	LikedBy    datatypes.JSONSlice[uint] `json:"likedBy"`

	Comments []Comment `gorm:"constraint:OnDelete:CASCADE;" json:"comments,omitempty"`

	CreatedAt time.Time `json:"createdTime"`
	UpdatedAt time.Time `json:"updatedTime"`
}

type Comment struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	VideoID string `gorm:"type:uuid;not null;index" json:"-"`

	UserID uint        `gorm:"not null" json:"user_id"`
	User   *users.User `gorm:"constraint:OnDelete:CASCADE;" json:"user,omitempty"`

	Text string `gorm:"not null" json:"text"`

	CreatedAt time.Time `json:"created_at"`
}

// HasLike reports whether userID is present in LikedBy.
func (v *Video) HasLike(userID uint) bool {
	for _, id := range v.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

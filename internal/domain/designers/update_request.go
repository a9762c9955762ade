package designers

import (
	"time"

	"gorm.io/datatypes"
)

type RequestStatus string

const (
	StatusPending  RequestStatus = "Pending"
	StatusApproved RequestStatus = "Approved"
	StatusRejected RequestStatus = "Rejected"
)

// UpdateRequest is a pending/decided proposal to change a designer's
// content fields. The proposed changes are stored verbatim as submitted;
// filtering happens at approval time via FilterUpdates.
type UpdateRequest struct {
	ID string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	DesignerID string    `gorm:"type:uuid;not null;index" json:"designer_id"`
	Designer   *Designer `gorm:"constraint:OnDelete:CASCADE;" json:"designer,omitempty"`

	RequestedUpdates datatypes.JSONMap `json:"requestedUpdates"`

	Status        RequestStatus `gorm:"type:varchar(10);not null;default:'Pending';index" json:"status"`
	AdminComments string        `json:"adminComments,omitempty"`

	CreatedAt time.Time `json:"createdTime"`
}

type FieldKind int

const (
	KindString FieldKind = iota
	KindNumber
	KindBool
)

// MergeableFields is the allow-list of designer columns an approved
// update request may touch, with the JSON value kind expected for each.
// Identity and approval fields are deliberately absent.
var MergeableFields = map[string]FieldKind{
	"logo_url":          KindString,
	"background_url":    KindString,
	"short_description": KindString,
	"about":             KindString,
}

// aliases accepted in request payloads for the columns above
var fieldAliases = map[string]string{
	"logo":             "logo_url",
	"logoUrl":          "logo_url",
	"background":       "background_url",
	"backgroundUrl":    "background_url",
	"shortDescription": "short_description",
	"about":            "about",
}

func kindMatches(kind FieldKind, v interface{}) bool {
	switch kind {
	case KindString:
		_, ok := v.(string)
		return ok
	case KindNumber:
		switch v.(type) {
		case float64, int, int64:
			return true
		}
		return false
	case KindBool:
		_, ok := v.(bool)
		return ok
	}
	return false
}

// FilterUpdates maps a raw requestedUpdates document onto the mergeable
// column set. Unknown keys, identity keys and wrongly-typed values are
// dropped; nulls clear the column.
func FilterUpdates(raw map[string]interface{}) map[string]interface{} {
	out := map[string]interface{}{}
	for k, v := range raw {
		col := k
		if alias, ok := fieldAliases[k]; ok {
			col = alias
		}
		kind, ok := MergeableFields[col]
		if !ok {
			continue
		}
		if v == nil {
			out[col] = ""
			continue
		}
		if !kindMatches(kind, v) {
			continue
		}
		out[col] = v
	}
	return out
}

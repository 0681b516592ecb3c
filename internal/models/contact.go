package models

import (
	"time"

	"github.com/google/uuid"
)

// EmergencyContact is a personal contact stored on a user's own contact
// list. Contacts are not spatial; the personal-contacts alert notifies all
// of them that have an email.
type EmergencyContact struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	Relation  string    `json:"relation,omitempty"`
	Email     string    `json:"email"`
	Mobile    string    `json:"mobile,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

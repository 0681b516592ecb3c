package models

import (
	"time"

	"github.com/google/uuid"
)

// ServiceLocation is an emergency-service point of contact (police station,
// hospital, fire station) with a fixed position. Disabled entries are kept
// in storage but never alerted.
type ServiceLocation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Category  string    `json:"category,omitempty"`
	Email     string    `gorm:"index" json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Latitude  float64   `gorm:"index;not null" json:"latitude"`
	Longitude float64   `gorm:"index;not null" json:"longitude"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

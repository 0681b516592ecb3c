package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an app user who can raise an alert or be found nearby.
// Latitude/Longitude/LastLocationAt are written by the location heartbeat
// and may be nil for users who never reported a position.
type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name           string     `gorm:"not null" json:"name"`
	Email          string     `gorm:"uniqueIndex;not null" json:"email"`
	Phone          string     `json:"phone,omitempty"`
	Latitude       *float64   `gorm:"index" json:"latitude,omitempty"`
	Longitude      *float64   `gorm:"index" json:"longitude,omitempty"`
	LastLocationAt *time.Time `json:"last_location_at,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

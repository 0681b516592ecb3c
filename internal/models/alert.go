package models

import (
	"github.com/google/uuid"

	"sos-service/internal/geo"
)

// Candidate is a located, contactable entity eligible for one alert. It is
// a read-only snapshot for the duration of a single request.
type Candidate struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Position       geo.Coordinate `json:"position"`
	DistanceMeters *float64       `json:"distance_meters,omitempty"`
}

// AlertRequest is the inbound body of the three SOS endpoints. Message and
// MaxUsers are optional; MaxUsers only applies to the nearby-users alert.
type AlertRequest struct {
	Message  string `json:"message"`
	MaxUsers int    `json:"max_users,omitempty"`
}

// DispatchResult records the outcome of one notification attempt.
type DispatchResult struct {
	RecipientID    uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	DistanceMeters *float64  `json:"distance_meters,omitempty"`
	Success        bool      `json:"success"`
	Error          string    `json:"error,omitempty"`
}

// AlertSummary is returned to the caller after a dispatch batch resolves.
// RadiiTried/RadiusUsed/SearchOutcome are only populated by the spatial
// workflows; the personal-contacts alert leaves them empty.
type AlertSummary struct {
	Dispatched             int              `json:"dispatched"`
	TotalCandidates        int              `json:"total_candidates"`
	RadiiTried             []float64        `json:"radii_tried,omitempty"`
	RadiusUsed             *float64         `json:"radius_used,omitempty"`
	SearchOutcome          string           `json:"search_outcome,omitempty"`
	FreshnessWindowSeconds int              `json:"freshness_window_seconds,omitempty"`
	Results                []DispatchResult `json:"results"`
}

// LocationUpdateRequest is the body of the location heartbeat endpoint.
type LocationUpdateRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ContactRequest is the body for creating or updating an emergency contact.
type ContactRequest struct {
	Name     string `json:"name"`
	Relation string `json:"relation"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
}

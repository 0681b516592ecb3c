package services

import (
	"time"

	"github.com/google/uuid"

	"sos-service/internal/geo"
	"sos-service/internal/models"
	"sos-service/internal/repository"
)

// UserService handles reads of users and the location heartbeat writes that
// keep their stored coordinates fresh.
type UserService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetUser(id uuid.UUID) (*models.User, error) {
	return s.repo.GetUser(id)
}

// UpdateLocation records a heartbeat fix. Out-of-range coordinates are
// rejected here so the alert workflows never read an invalid stored value
// written through this path.
func (s *UserService) UpdateLocation(id uuid.UUID, req models.LocationUpdateRequest) error {
	position := geo.Coordinate{Latitude: req.Latitude, Longitude: req.Longitude}
	if !position.Valid() {
		return ErrInvalidCoordinate
	}
	if _, err := s.repo.GetUser(id); err != nil {
		return err
	}
	return s.repo.UpdateLocation(id, position, time.Now())
}

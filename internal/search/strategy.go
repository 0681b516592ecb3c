package search

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"sos-service/internal/geo"
	"sos-service/internal/models"
	"sos-service/internal/repository"
)

// RadiusSearcher runs one fixed-radius proximity query and returns at most
// limit candidates, nearest first.
type RadiusSearcher interface {
	SearchRadius(center geo.Coordinate, radiusMeters float64, limit int) ([]models.Candidate, error)
}

// NearbyUserSearcher answers radius queries through the user store's native
// spatial index. Freshness and requester exclusion are pushed down into the
// query itself.
type NearbyUserSearcher struct {
	repo            repository.UserRepository
	excludeID       uuid.UUID
	freshnessCutoff time.Time
}

// NewNearbyUserSearcher creates a searcher scoped to one alert request.
func NewNearbyUserSearcher(repo repository.UserRepository, excludeID uuid.UUID, freshnessCutoff time.Time) *NearbyUserSearcher {
	return &NearbyUserSearcher{
		repo:            repo,
		excludeID:       excludeID,
		freshnessCutoff: freshnessCutoff,
	}
}

// SearchRadius queries the user store for fresh, contactable users within
// the radius.
func (s *NearbyUserSearcher) SearchRadius(center geo.Coordinate, radiusMeters float64, limit int) ([]models.Candidate, error) {
	users, err := s.repo.FindUsersNear(center, radiusMeters, s.excludeID, s.freshnessCutoff, limit)
	if err != nil {
		return nil, errors.Wrap(err, "nearby user lookup failed")
	}

	candidates := make([]models.Candidate, 0, len(users))
	for _, user := range users {
		if user.Latitude == nil || user.Longitude == nil || user.Email == "" {
			continue
		}
		position := geo.Coordinate{Latitude: *user.Latitude, Longitude: *user.Longitude}
		distance := geo.HaversineDistance(center, position)
		candidates = append(candidates, models.Candidate{
			ID:             user.ID,
			Name:           user.Name,
			Email:          user.Email,
			Position:       position,
			DistanceMeters: &distance,
		})
	}
	return candidates, nil
}

// BoundingBoxSearcher answers radius queries for stores without a spatial
// index: a rectangular prefilter pulls raw rows, then an exact Haversine
// pass discards everything outside the true circle.
type BoundingBoxSearcher struct {
	repo     repository.LocationRepository
	rawLimit int
}

// NewBoundingBoxSearcher creates a searcher over the service-location store.
// rawLimit caps how many rows one bounding-box query may pull.
func NewBoundingBoxSearcher(repo repository.LocationRepository, rawLimit int) *BoundingBoxSearcher {
	return &BoundingBoxSearcher{repo: repo, rawLimit: rawLimit}
}

// SearchRadius shortlists locations via the bounding box, filters them down
// to the exact circle and returns the nearest limit entries. Ordering ties
// keep the storage order (stable sort).
func (s *BoundingBoxSearcher) SearchRadius(center geo.Coordinate, radiusMeters float64, limit int) ([]models.Candidate, error) {
	box := geo.NewBoundingBox(center, radiusMeters)

	locations, err := s.repo.FindInBoundingBox(box, s.rawLimit)
	if err != nil {
		return nil, errors.Wrap(err, "service location lookup failed")
	}

	var candidates []models.Candidate
	for _, location := range locations {
		if location.Email == "" {
			continue
		}
		position := geo.Coordinate{Latitude: location.Latitude, Longitude: location.Longitude}
		distance := geo.HaversineDistance(center, position)
		if distance > radiusMeters {
			continue
		}
		candidates = append(candidates, models.Candidate{
			ID:             location.ID,
			Name:           location.Name,
			Email:          location.Email,
			Position:       position,
			DistanceMeters: &distance,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return *candidates[i].DistanceMeters < *candidates[j].DistanceMeters
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

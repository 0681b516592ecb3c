package repository

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sos-service/internal/geo"
	"sos-service/internal/models"
)

// UserRepository defines methods for reading users and maintaining their
// last-known location.
type UserRepository interface {
	GetUser(id uuid.UUID) (*models.User, error)
	UpdateLocation(id uuid.UUID, position geo.Coordinate, at time.Time) error
	FindUsersNear(center geo.Coordinate, radiusMeters float64, excludeID uuid.UUID, freshnessCutoff time.Time, limit int) ([]models.User, error)
}

// UserRepositoryImpl provides methods to interact with the User model in the database.
type UserRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepositoryImpl instance with the provided GORM database connection.
func NewUserRepository(db *gorm.DB) *UserRepositoryImpl {
	return &UserRepositoryImpl{db: db}
}

// GetUser retrieves a User by its ID from the database.
func (r *UserRepositoryImpl) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	return &user, err
}

// UpdateLocation stores a fresh location fix for the user.
func (r *UserRepositoryImpl) UpdateLocation(id uuid.UUID, position geo.Coordinate, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"latitude":         position.Latitude,
		"longitude":        position.Longitude,
		"last_location_at": at,
	}).Error
}

// FindUsersNear finds users within the given radius, ordered nearest first.
// Users without an email, without a location fix newer than freshnessCutoff,
// or matching excludeID are never returned.
func (r *UserRepositoryImpl) FindUsersNear(center geo.Coordinate, radiusMeters float64, excludeID uuid.UUID, freshnessCutoff time.Time, limit int) ([]models.User, error) {
	var users []models.User

	// Bounding box narrows the scan before the geography distance check
	box := geo.NewBoundingBox(center, radiusMeters)

	sqlQuery := `
        SELECT * FROM users
        WHERE latitude IS NOT NULL
        AND longitude IS NOT NULL
        AND email <> ''
        AND id <> ?
        AND last_location_at >= ?
        AND latitude BETWEEN ? AND ?
        AND longitude BETWEEN ? AND ?
        AND ST_DWithin(
            ST_SetSRID(ST_MakePoint(longitude, latitude), 4326)::geography,
            ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography,
            ?
        )
        ORDER BY ST_Distance(
            ST_SetSRID(ST_MakePoint(longitude, latitude), 4326)::geography,
            ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography
        )
        LIMIT ?
    `

	err := r.db.Raw(sqlQuery,
		excludeID, freshnessCutoff,
		box.MinLat, box.MaxLat, box.MinLng, box.MaxLng,
		center.Longitude, center.Latitude, radiusMeters,
		center.Longitude, center.Latitude,
		limit,
	).Scan(&users).Error

	if err != nil {
		// Fallback to bounding box + Haversine when PostGIS is unavailable
		return r.findUsersNearSimple(center, radiusMeters, excludeID, freshnessCutoff, limit)
	}

	return users, nil
}

// findUsersNearSimple is the fallback path using a plain bounding-box query
// and Haversine filtering in application code.
func (r *UserRepositoryImpl) findUsersNearSimple(center geo.Coordinate, radiusMeters float64, excludeID uuid.UUID, freshnessCutoff time.Time, limit int) ([]models.User, error) {
	var users []models.User

	box := geo.NewBoundingBox(center, radiusMeters)

	err := r.db.Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Where("email <> ''").
		Where("id <> ?", excludeID).
		Where("last_location_at >= ?", freshnessCutoff).
		Where("latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat).
		Where("longitude BETWEEN ? AND ?", box.MinLng, box.MaxLng).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	// rows arrive in storage order; rank by exact distance before the
	// truncation so the limit keeps the nearest users
	type userHit struct {
		user     models.User
		distance float64
	}
	var hits []userHit
	for _, user := range users {
		if user.Latitude == nil || user.Longitude == nil {
			continue
		}
		distance := geo.HaversineDistance(center, geo.Coordinate{
			Latitude:  *user.Latitude,
			Longitude: *user.Longitude,
		})
		if distance <= radiusMeters {
			hits = append(hits, userHit{user: user, distance: distance})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].distance < hits[j].distance
	})

	var filtered []models.User
	for _, hit := range hits {
		filtered = append(filtered, hit.user)
		if len(filtered) >= limit {
			break
		}
	}

	return filtered, nil
}

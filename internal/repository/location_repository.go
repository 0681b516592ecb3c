package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sos-service/internal/geo"
	"sos-service/internal/models"
)

// LocationRepository defines methods for emergency-service locations.
type LocationRepository interface {
	CreateLocation(location *models.ServiceLocation) error
	GetLocation(id uuid.UUID) (*models.ServiceLocation, error)
	ListLocations() ([]models.ServiceLocation, error)
	FindInBoundingBox(box geo.BoundingBox, limit int) ([]models.ServiceLocation, error)
}

// LocationRepositoryImpl provides methods to interact with the ServiceLocation model in the database.
type LocationRepositoryImpl struct {
	db *gorm.DB
}

// NewLocationRepository creates a new LocationRepositoryImpl instance with the provided GORM database connection.
func NewLocationRepository(db *gorm.DB) *LocationRepositoryImpl {
	return &LocationRepositoryImpl{db: db}
}

// CreateLocation creates a new ServiceLocation in the database.
func (r *LocationRepositoryImpl) CreateLocation(location *models.ServiceLocation) error {
	return r.db.Create(location).Error
}

// GetLocation retrieves a ServiceLocation by its ID from the database.
func (r *LocationRepositoryImpl) GetLocation(id uuid.UUID) (*models.ServiceLocation, error) {
	var location models.ServiceLocation
	err := r.db.First(&location, "id = ?", id).Error
	return &location, err
}

// ListLocations retrieves all ServiceLocations from the database.
func (r *LocationRepositoryImpl) ListLocations() ([]models.ServiceLocation, error) {
	var locations []models.ServiceLocation
	err := r.db.Find(&locations).Error
	return locations, err
}

// FindInBoundingBox retrieves enabled, contactable locations whose stored
// coordinates fall inside the box. The box is a superset of the search
// circle; exact distance filtering happens in the search layer. When limit
// rows are hit before the box is exhausted the result may under-report
// coverage of the true circle; false negatives at the rim are accepted.
func (r *LocationRepositoryImpl) FindInBoundingBox(box geo.BoundingBox, limit int) ([]models.ServiceLocation, error) {
	var locations []models.ServiceLocation
	err := r.db.Where("disabled = ?", false).
		Where("email <> ''").
		Where("latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat).
		Where("longitude BETWEEN ? AND ?", box.MinLng, box.MaxLng).
		Limit(limit).
		Find(&locations).Error
	return locations, err
}

package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sos-service/internal/models"
)

// ContactRepository defines methods for a user's emergency-contact list.
type ContactRepository interface {
	CreateContact(contact *models.EmergencyContact) error
	GetContact(id uuid.UUID) (*models.EmergencyContact, error)
	ListContacts(userID uuid.UUID) ([]models.EmergencyContact, error)
	UpdateContact(contact *models.EmergencyContact) error
	DeleteContact(id uuid.UUID) error
}

// ContactRepositoryImpl provides methods to interact with the EmergencyContact model in the database.
type ContactRepositoryImpl struct {
	db *gorm.DB
}

// NewContactRepository creates a new ContactRepositoryImpl instance with the provided GORM database connection.
func NewContactRepository(db *gorm.DB) *ContactRepositoryImpl {
	return &ContactRepositoryImpl{db: db}
}

// CreateContact creates a new EmergencyContact in the database.
func (r *ContactRepositoryImpl) CreateContact(contact *models.EmergencyContact) error {
	return r.db.Create(contact).Error
}

// GetContact retrieves an EmergencyContact by its ID from the database.
func (r *ContactRepositoryImpl) GetContact(id uuid.UUID) (*models.EmergencyContact, error) {
	var contact models.EmergencyContact
	err := r.db.First(&contact, "id = ?", id).Error
	return &contact, err
}

// ListContacts retrieves all EmergencyContacts belonging to the given user.
func (r *ContactRepositoryImpl) ListContacts(userID uuid.UUID) ([]models.EmergencyContact, error) {
	var contacts []models.EmergencyContact
	err := r.db.Where("user_id = ?", userID).Order("created_at").Find(&contacts).Error
	return contacts, err
}

// UpdateContact updates an existing EmergencyContact in the database.
func (r *ContactRepositoryImpl) UpdateContact(contact *models.EmergencyContact) error {
	return r.db.Save(contact).Error
}

// DeleteContact deletes an EmergencyContact by its ID from the database.
func (r *ContactRepositoryImpl) DeleteContact(id uuid.UUID) error {
	return r.db.Delete(&models.EmergencyContact{}, "id = ?", id).Error
}

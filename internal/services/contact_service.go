package services

import (
	"github.com/google/uuid"

	"sos-service/internal/models"
	"sos-service/internal/repository"
)

// ContactService manages a user's emergency-contact list.
type ContactService struct {
	repo repository.ContactRepository
}

func NewContactService(repo repository.ContactRepository) *ContactService {
	return &ContactService{repo: repo}
}

func (s *ContactService) CreateContact(userID uuid.UUID, req models.ContactRequest) (*models.EmergencyContact, error) {
	contact := &models.EmergencyContact{
		UserID:   userID,
		Name:     req.Name,
		Relation: req.Relation,
		Email:    req.Email,
		Mobile:   req.Mobile,
	}
	if err := s.repo.CreateContact(contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *ContactService) ListContacts(userID uuid.UUID) ([]models.EmergencyContact, error) {
	return s.repo.ListContacts(userID)
}

func (s *ContactService) UpdateContact(id uuid.UUID, req models.ContactRequest) (*models.EmergencyContact, error) {
	contact, err := s.repo.GetContact(id)
	if err != nil {
		return nil, err
	}
	contact.Name = req.Name
	contact.Relation = req.Relation
	contact.Email = req.Email
	contact.Mobile = req.Mobile
	if err := s.repo.UpdateContact(contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *ContactService) DeleteContact(id uuid.UUID) error {
	return s.repo.DeleteContact(id)
}

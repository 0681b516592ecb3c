package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sos-service/internal/models"
	"sos-service/internal/services"
)

const ContactNotFoundError = "contact not found"

// ContactHandler defines handlers for managing emergency contacts.
type ContactHandler struct {
	Service *services.ContactService
}

// NewContactHandler creates a new ContactHandler with the given ContactService.
func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{Service: service}
}

// ListContacts handles GET /users/:id/contacts to retrieve a user's emergency contacts.
// @Summary List emergency contacts
// @Description Gets all emergency contacts stored for the user
// @Tags contacts
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} models.EmergencyContact "List of contacts"
// @Failure 400 {object} map[string]interface{} "Invalid UUID"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /users/{id}/contacts [get]
func (h *ContactHandler) ListContacts(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": InvalidUuidError,
		})
	}

	contacts, err := h.Service.ListContacts(userID)
	if err != nil {
		log.Printf("Error listing contacts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	return c.JSON(contacts)
}

// CreateContact handles POST /users/:id/contacts to add an emergency contact.
// @Summary Add an emergency contact
// @Description Stores a new emergency contact for the user
// @Tags contacts
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body models.ContactRequest true "Contact details"
// @Success 201 {object} models.EmergencyContact "Contact created"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /users/{id}/contacts [post]
func (h *ContactHandler) CreateContact(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": InvalidUuidError,
		})
	}

	var req models.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "invalid request format",
		})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "contact name is required",
		})
	}

	contact, err := h.Service.CreateContact(userID, req)
	if err != nil {
		log.Printf("Error creating contact: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	log.Printf("Created contact %s for user %s", contact.ID, userID)
	return c.Status(fiber.StatusCreated).JSON(contact)
}

// UpdateContact handles PUT /contacts/:id to edit an emergency contact.
// @Summary Update an emergency contact
// @Description Updates the stored details of an emergency contact
// @Tags contacts
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param request body models.ContactRequest true "Contact details"
// @Success 200 {object} models.EmergencyContact "Contact updated"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Contact not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /contacts/{id} [put]
func (h *ContactHandler) UpdateContact(c *fiber.Ctx) error {
	contactID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": InvalidUuidError,
		})
	}

	var req models.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "invalid request format",
		})
	}

	contact, err := h.Service.UpdateContact(contactID, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": ContactNotFoundError,
			})
		}
		log.Printf("Error updating contact: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	return c.JSON(contact)
}

// DeleteContact handles DELETE /contacts/:id to remove an emergency contact.
// @Summary Delete an emergency contact
// @Description Removes an emergency contact from the user's list
// @Tags contacts
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Success 204 "Contact deleted"
// @Failure 400 {object} map[string]interface{} "Invalid UUID"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /contacts/{id} [delete]
func (h *ContactHandler) DeleteContact(c *fiber.Ctx) error {
	contactID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": InvalidUuidError,
		})
	}

	if err := h.Service.DeleteContact(contactID); err != nil {
		log.Printf("Error deleting contact: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

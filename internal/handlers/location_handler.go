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

// LocationHandler defines the location heartbeat endpoint that keeps a
// user's stored coordinates fresh.
type LocationHandler struct {
	Service *services.UserService
}

// NewLocationHandler creates a new LocationHandler with the given UserService.
func NewLocationHandler(service *services.UserService) *LocationHandler {
	return &LocationHandler{Service: service}
}

// UpdateLocation handles PUT /users/:id/location to record a location fix.
// @Summary Record a location heartbeat
// @Description Stores the user's current coordinates and stamps the fix time
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body models.LocationUpdateRequest true "Current coordinates"
// @Success 200 {object} map[string]interface{} "Location stored"
// @Failure 400 {object} map[string]interface{} "Invalid UUID or coordinates"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /users/{id}/location [put]
func (h *LocationHandler) UpdateLocation(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": InvalidUuidError,
		})
	}

	var req models.LocationUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "invalid request format",
		})
	}

	if err := h.Service.UpdateLocation(userID, req); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCoordinate):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": err.Error(),
			})
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": UserNotFoundError,
			})
		default:
			log.Printf("Error updating location for %s: %v", userID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": true, "message": err.Error(),
			})
		}
	}
	return c.JSON(fiber.Map{"updated": true})
}

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

const InvalidUuidError = "invalid UUID"
const UserNotFoundError = "user not found"

// SosHandler defines handlers for the three alert endpoints.
type SosHandler struct {
	Service *services.SosService
}

// NewSosHandler creates a new SosHandler with the given SosService.
func NewSosHandler(service *services.SosService) *SosHandler {
	return &SosHandler{Service: service}
}

// AlertContacts handles POST /users/:id/sos/contacts to alert the user's emergency contacts.
// @Summary Alert personal emergency contacts
// @Description Sends the SOS notification to every stored contact with an email address
// @Tags sos
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body models.AlertRequest false "Optional message"
// @Success 200 {object} models.AlertSummary "Dispatch summary"
// @Failure 400 {object} map[string]interface{} "Invalid UUID or unusable location"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /users/{id}/sos/contacts [post]
func (h *SosHandler) AlertContacts(c *fiber.Ctx) error {
	return h.runAlert(c, h.Service.AlertContacts)
}

// AlertNearbyUsers handles POST /users/:id/sos/nearby-users to alert other app users close by.
// @Summary Alert nearby app users
// @Description Sends the SOS notification to users with a fresh location fix near the requester
// @Tags sos
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body models.AlertRequest false "Optional message and recipient cap"
// @Success 200 {object} models.AlertSummary "Dispatch summary"
// @Failure 400 {object} map[string]interface{} "Invalid UUID or unusable location"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /users/{id}/sos/nearby-users [post]
func (h *SosHandler) AlertNearbyUsers(c *fiber.Ctx) error {
	return h.runAlert(c, h.Service.AlertNearbyUsers)
}

// AlertNearbyServices handles POST /users/:id/sos/services to alert nearby emergency services.
// @Summary Alert nearby emergency services
// @Description Sends the SOS notification to the closest emergency-service locations, expanding the search radius as needed
// @Tags sos
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body models.AlertRequest false "Optional message"
// @Success 200 {object} models.AlertSummary "Dispatch summary"
// @Failure 400 {object} map[string]interface{} "Invalid UUID or unusable location"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /users/{id}/sos/services [post]
func (h *SosHandler) AlertNearbyServices(c *fiber.Ctx) error {
	return h.runAlert(c, h.Service.AlertNearbyServices)
}

func (h *SosHandler) runAlert(c *fiber.Ctx, workflow func(uuid.UUID, models.AlertRequest) (*models.AlertSummary, error)) error {
	idStr := c.Params("id")
	log.Printf("SOS alert - User: %s, Path: %s, IP: %s", idStr, c.Path(), c.IP())

	userID, err := uuid.Parse(idStr)
	if err != nil {
		log.Printf("Invalid UUID format: %s - Error: %v", idStr, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": InvalidUuidError,
		})
	}

	var req models.AlertRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": "invalid request format",
			})
		}
	}

	summary, err := workflow(userID, req)
	if err != nil {
		return h.alertError(c, userID, err)
	}

	log.Printf("SOS alert completed: user=%s dispatched=%d/%d", userID, summary.Dispatched, summary.TotalCandidates)
	return c.JSON(summary)
}

func (h *SosHandler) alertError(c *fiber.Ctx, userID uuid.UUID, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		log.Printf("Requester not found: ID=%s", userID)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": true, "message": UserNotFoundError,
		})
	case errors.Is(err, services.ErrLocationUnavailable),
		errors.Is(err, services.ErrInvalidCoordinate):
		log.Printf("Alert precondition failed: ID=%s, Error=%v", userID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	default:
		log.Printf("Alert failed: ID=%s, Error=%v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
}

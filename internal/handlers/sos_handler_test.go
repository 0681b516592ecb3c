package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sos-service/internal/geo"
	"sos-service/internal/metrics"
	"sos-service/internal/models"
	"sos-service/internal/notify"
	"sos-service/internal/services"
)

var testMetrics = metrics.NewMetrics()

type memoryUserRepo struct {
	users map[uuid.UUID]models.User
}

func (m *memoryUserRepo) GetUser(id uuid.UUID) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (m *memoryUserRepo) UpdateLocation(id uuid.UUID, position geo.Coordinate, at time.Time) error {
	user, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.Latitude = &position.Latitude
	user.Longitude = &position.Longitude
	user.LastLocationAt = &at
	m.users[id] = user
	return nil
}

func (m *memoryUserRepo) FindUsersNear(center geo.Coordinate, radiusMeters float64, excludeID uuid.UUID, cutoff time.Time, limit int) ([]models.User, error) {
	return nil, nil
}

type memoryLocationRepo struct {
	locations []models.ServiceLocation
}

func (m *memoryLocationRepo) CreateLocation(*models.ServiceLocation) error { return nil }
func (m *memoryLocationRepo) GetLocation(uuid.UUID) (*models.ServiceLocation, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *memoryLocationRepo) ListLocations() ([]models.ServiceLocation, error) {
	return m.locations, nil
}

func (m *memoryLocationRepo) FindInBoundingBox(box geo.BoundingBox, limit int) ([]models.ServiceLocation, error) {
	var hits []models.ServiceLocation
	for _, loc := range m.locations {
		if loc.Disabled || loc.Email == "" {
			continue
		}
		if box.Contains(geo.Coordinate{Latitude: loc.Latitude, Longitude: loc.Longitude}) {
			hits = append(hits, loc)
		}
		if len(hits) >= limit {
			break
		}
	}
	return hits, nil
}

type memoryContactRepo struct {
	contacts []models.EmergencyContact
}

func (m *memoryContactRepo) CreateContact(*models.EmergencyContact) error { return nil }
func (m *memoryContactRepo) GetContact(uuid.UUID) (*models.EmergencyContact, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *memoryContactRepo) ListContacts(uuid.UUID) ([]models.EmergencyContact, error) {
	return m.contacts, nil
}
func (m *memoryContactRepo) UpdateContact(*models.EmergencyContact) error { return nil }
func (m *memoryContactRepo) DeleteContact(uuid.UUID) error                { return nil }

type captureNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (n *captureNotifier) Send(toEmail string, msg notify.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, toEmail)
	return nil
}

func makeApp(users *memoryUserRepo, locations *memoryLocationRepo, contacts *memoryContactRepo, notifier notify.Notifier) *fiber.App {
	svc := services.NewSosService(users, locations, contacts, notifier, testMetrics, services.Settings{
		SearchRadii:      []float64{2000, 7000, 12000},
		FreshnessWindow:  10 * time.Minute,
		MaxNearbyUsers:   3,
		NearbyUsersCeil:  10,
		MaxServiceHits:   3,
		BoundingBoxLimit: 200,
	})
	handler := NewSosHandler(svc)

	app := fiber.New()
	api := app.Group("/api")
	api.Post("/users/:id/sos/contacts", handler.AlertContacts)
	api.Post("/users/:id/sos/nearby-users", handler.AlertNearbyUsers)
	api.Post("/users/:id/sos/services", handler.AlertNearbyServices)
	return app
}

func seedRequester() (models.User, *memoryUserRepo) {
	lat, lng := 9.59, 76.52
	at := time.Now().Add(-time.Minute)
	user := models.User{
		ID:             uuid.New(),
		Name:           "Asha",
		Email:          "asha@example.org",
		Latitude:       &lat,
		Longitude:      &lng,
		LastLocationAt: &at,
	}
	return user, &memoryUserRepo{users: map[uuid.UUID]models.User{user.ID: user}}
}

func TestAlertEndpointRejectsInvalidUUID(t *testing.T) {
	_, users := seedRequester()
	app := makeApp(users, &memoryLocationRepo{}, &memoryContactRepo{}, &captureNotifier{})

	req := httptest.NewRequest("POST", "/api/users/not-a-uuid/sos/contacts", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for bad UUID, got %d", res.StatusCode)
	}
}

func TestAlertEndpointUnknownUser(t *testing.T) {
	_, users := seedRequester()
	app := makeApp(users, &memoryLocationRepo{}, &memoryContactRepo{}, &captureNotifier{})

	req := httptest.NewRequest("POST", "/api/users/"+uuid.NewString()+"/sos/contacts", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", res.StatusCode)
	}
}

func TestAlertEndpointLocationUnavailable(t *testing.T) {
	user := models.User{ID: uuid.New(), Name: "Asha", Email: "asha@example.org"}
	users := &memoryUserRepo{users: map[uuid.UUID]models.User{user.ID: user}}
	app := makeApp(users, &memoryLocationRepo{}, &memoryContactRepo{}, &captureNotifier{})

	req := httptest.NewRequest("POST", "/api/users/"+user.ID.String()+"/sos/services", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 when location is unavailable, got %d", res.StatusCode)
	}
}

func TestAlertServicesEndpointReturnsSummary(t *testing.T) {
	requester, users := seedRequester()
	locations := &memoryLocationRepo{locations: []models.ServiceLocation{
		{
			ID:        uuid.New(),
			Name:      "clinic",
			Email:     "clinic@example.org",
			Latitude:  9.59 + 1500/111195.0,
			Longitude: 76.52,
		},
	}}
	notifier := &captureNotifier{}
	app := makeApp(users, locations, &memoryContactRepo{}, notifier)

	body := strings.NewReader(`{"message":"need help"}`)
	req := httptest.NewRequest("POST", "/api/users/"+requester.ID.String()+"/sos/services", body)
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var summary models.AlertSummary
	if err := json.NewDecoder(res.Body).Decode(&summary); err != nil {
		t.Fatalf("decoding summary failed: %v", err)
	}
	if summary.Dispatched != 1 || summary.TotalCandidates != 1 {
		t.Fatalf("unexpected summary counts: %+v", summary)
	}
	if summary.SearchOutcome == "" {
		t.Fatalf("summary is missing the search outcome")
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != "clinic@example.org" {
		t.Fatalf("unexpected notifications: %v", notifier.sent)
	}
}

func TestAlertContactsEndpointEmptyList(t *testing.T) {
	requester, users := seedRequester()
	app := makeApp(users, &memoryLocationRepo{}, &memoryContactRepo{}, &captureNotifier{})

	req := httptest.NewRequest("POST", "/api/users/"+requester.ID.String()+"/sos/contacts", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for empty candidate set, got %d", res.StatusCode)
	}

	var summary models.AlertSummary
	if err := json.NewDecoder(res.Body).Decode(&summary); err != nil {
		t.Fatalf("decoding summary failed: %v", err)
	}
	if summary.Dispatched != 0 || len(summary.Results) != 0 {
		t.Fatalf("expected zero-dispatch summary, got %+v", summary)
	}
}

package services

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"sos-service/internal/geo"
	"sos-service/internal/metrics"
	"sos-service/internal/models"
	"sos-service/internal/notify"
	"sos-service/internal/repository"
	"sos-service/internal/search"
)

// Workflow labels used in logs and metrics.
const (
	WorkflowContacts    = "contacts"
	WorkflowNearbyUsers = "nearby_users"
	WorkflowServices    = "services"
)

// Precondition failures surfaced to the caller as client errors. Anything
// else coming out of a workflow is a storage or internal failure.
var (
	ErrLocationUnavailable = errors.New("requester location unavailable")
	ErrInvalidCoordinate   = errors.New("requester coordinate out of valid range")
)

// Settings are the tuning values for the alert workflows. They are plain
// configuration, fixed at construction.
type Settings struct {
	SearchRadii      []float64
	FreshnessWindow  time.Duration
	MaxNearbyUsers   int
	NearbyUsersCeil  int
	MaxServiceHits   int
	BoundingBoxLimit int
}

// SosService runs the three alert workflows: personal contacts, nearby
// users and nearby emergency services. Each workflow loads the requester,
// validates their location, resolves a candidate set, composes one message
// and fans it out.
type SosService struct {
	Users     repository.UserRepository
	Locations repository.LocationRepository
	Contacts  repository.ContactRepository
	Notifier  notify.Notifier
	Metrics   *metrics.Metrics
	Settings  Settings
}

// NewSosService creates a new SosService with the given collaborators.
func NewSosService(users repository.UserRepository, locations repository.LocationRepository,
	contacts repository.ContactRepository, notifier notify.Notifier,
	m *metrics.Metrics, settings Settings) *SosService {
	return &SosService{
		Users:     users,
		Locations: locations,
		Contacts:  contacts,
		Notifier:  notifier,
		Metrics:   m,
		Settings:  settings,
	}
}

// AlertContacts notifies every personal contact of the requester that has
// an email address. No spatial search is involved.
func (s *SosService) AlertContacts(userID uuid.UUID, req models.AlertRequest) (*models.AlertSummary, error) {
	requester, position, err := s.loadRequester(userID)
	if err != nil {
		s.Metrics.IncrementAlerts(WorkflowContacts, "rejected")
		return nil, err
	}

	contacts, err := s.Contacts.ListContacts(userID)
	if err != nil {
		s.Metrics.IncrementAlerts(WorkflowContacts, "error")
		return nil, errors.Wrap(err, "loading emergency contacts failed")
	}

	var candidates []models.Candidate
	for _, contact := range contacts {
		if contact.Email == "" {
			continue
		}
		candidates = append(candidates, models.Candidate{
			ID:    contact.ID,
			Name:  contact.Name,
			Email: contact.Email,
		})
	}

	if len(candidates) == 0 {
		log.Printf("SOS contacts alert for user %s: no contactable contacts", userID)
		s.Metrics.IncrementAlerts(WorkflowContacts, "empty")
		return emptySummary(), nil
	}

	message := notify.Compose(notify.ComposeInput{
		RequesterName: requester.Name,
		Phone:         requester.Phone,
		Position:      position,
		Note:          req.Message,
	})
	return s.dispatch(WorkflowContacts, candidates, message, nil, 0), nil
}

// AlertNearbyUsers notifies other app users near the requester. Only users
// with a location fix newer than the freshness window and a contact email
// are eligible; the requester is always excluded.
func (s *SosService) AlertNearbyUsers(userID uuid.UUID, req models.AlertRequest) (*models.AlertSummary, error) {
	requester, position, err := s.loadRequester(userID)
	if err != nil {
		s.Metrics.IncrementAlerts(WorkflowNearbyUsers, "rejected")
		return nil, err
	}

	maxUsers := req.MaxUsers
	if maxUsers <= 0 {
		maxUsers = s.Settings.MaxNearbyUsers
	}
	if maxUsers > s.Settings.NearbyUsersCeil {
		maxUsers = s.Settings.NearbyUsersCeil
	}

	cutoff := time.Now().Add(-s.Settings.FreshnessWindow)
	strategy := search.NewNearbyUserSearcher(s.Users, userID, cutoff)
	result, err := s.runSearch(strategy, position, maxUsers)
	if err != nil {
		s.Metrics.IncrementAlerts(WorkflowNearbyUsers, "error")
		return nil, err
	}

	freshnessSeconds := int(s.Settings.FreshnessWindow.Seconds())
	if len(result.Candidates) == 0 {
		log.Printf("SOS nearby-users alert for user %s: no fresh users within %v", userID, result.RadiiTried)
		s.Metrics.IncrementAlerts(WorkflowNearbyUsers, "empty")
		summary := emptySummary()
		fillSearchTrace(summary, result, freshnessSeconds)
		return summary, nil
	}

	message := notify.Compose(notify.ComposeInput{
		RequesterName: requester.Name,
		Phone:         requester.Phone,
		Position:      position,
		Note:          req.Message,
	})
	return s.dispatch(WorkflowNearbyUsers, result.Candidates, message, result, freshnessSeconds), nil
}

// AlertNearbyServices notifies the nearest emergency-service locations,
// expanding the search radius until enough are found or the configured
// radii run out.
func (s *SosService) AlertNearbyServices(userID uuid.UUID, req models.AlertRequest) (*models.AlertSummary, error) {
	requester, position, err := s.loadRequester(userID)
	if err != nil {
		s.Metrics.IncrementAlerts(WorkflowServices, "rejected")
		return nil, err
	}

	strategy := search.NewBoundingBoxSearcher(s.Locations, s.Settings.BoundingBoxLimit)
	result, err := s.runSearch(strategy, position, s.Settings.MaxServiceHits)
	if err != nil {
		s.Metrics.IncrementAlerts(WorkflowServices, "error")
		return nil, err
	}

	if len(result.Candidates) == 0 {
		log.Printf("SOS services alert for user %s: no services within %v", userID, result.RadiiTried)
		s.Metrics.IncrementAlerts(WorkflowServices, "empty")
		summary := emptySummary()
		fillSearchTrace(summary, result, 0)
		return summary, nil
	}

	message := notify.Compose(notify.ComposeInput{
		RequesterName: requester.Name,
		Phone:         requester.Phone,
		Position:      position,
		Note:          req.Message,
	})
	return s.dispatch(WorkflowServices, result.Candidates, message, result, 0), nil
}

// loadRequester reads the requester and validates their stored location.
// Validation happens once here; the search layers trust the coordinate.
func (s *SosService) loadRequester(userID uuid.UUID) (*models.User, geo.Coordinate, error) {
	user, err := s.Users.GetUser(userID)
	if err != nil {
		return nil, geo.Coordinate{}, errors.Wrap(err, "loading requester failed")
	}
	if user.Latitude == nil || user.Longitude == nil || user.LastLocationAt == nil {
		return nil, geo.Coordinate{}, ErrLocationUnavailable
	}
	position := geo.Coordinate{Latitude: *user.Latitude, Longitude: *user.Longitude}
	if !position.Valid() {
		return nil, geo.Coordinate{}, ErrInvalidCoordinate
	}
	return user, position, nil
}

func (s *SosService) runSearch(strategy search.RadiusSearcher, center geo.Coordinate, maxCandidates int) (*search.Result, error) {
	start := time.Now()
	result, err := search.NewExpandingSearch(strategy, s.Settings.SearchRadii, maxCandidates).Run(center)
	if err != nil {
		return nil, err
	}
	s.Metrics.ObserveSearch(len(result.RadiiTried), time.Since(start))
	return result, nil
}

func (s *SosService) dispatch(workflow string, candidates []models.Candidate, message notify.Message, trace *search.Result, freshnessSeconds int) *models.AlertSummary {
	start := time.Now()
	results := notify.Dispatch(s.Notifier, candidates, message)
	s.Metrics.ObserveDispatch(time.Since(start))

	dispatched := 0
	for _, r := range results {
		if r.Success {
			dispatched++
		}
	}
	s.Metrics.AddDispatchOutcomes(workflow, dispatched, len(results)-dispatched)
	s.Metrics.IncrementAlerts(workflow, "dispatched")
	log.Printf("SOS %s alert: %d/%d notifications delivered", workflow, dispatched, len(results))

	summary := &models.AlertSummary{
		Dispatched:      dispatched,
		TotalCandidates: len(candidates),
		Results:         results,
	}
	fillSearchTrace(summary, trace, freshnessSeconds)
	return summary
}

func emptySummary() *models.AlertSummary {
	return &models.AlertSummary{Results: []models.DispatchResult{}}
}

func fillSearchTrace(summary *models.AlertSummary, trace *search.Result, freshnessSeconds int) {
	if trace != nil {
		summary.RadiiTried = trace.RadiiTried
		summary.RadiusUsed = trace.RadiusUsed
		summary.SearchOutcome = string(trace.Outcome)
	}
	if freshnessSeconds > 0 {
		summary.FreshnessWindowSeconds = freshnessSeconds
	}
}

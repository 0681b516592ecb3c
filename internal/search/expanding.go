package search

import (
	"log"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"sos-service/internal/geo"
	"sos-service/internal/models"
)

// Outcome is the terminal state of an expanding search. A search that found
// maxCandidates before running out of radii is satisfied; one that ran out
// of radii first is exhausted, possibly with a partial or empty result.
type Outcome string

const (
	OutcomeSatisfied Outcome = "satisfied"
	OutcomeExhausted Outcome = "exhausted"
)

// Result carries the collected candidates together with the search trace
// reported back to the caller.
type Result struct {
	Candidates []models.Candidate
	RadiiTried []float64
	RadiusUsed *float64
	Outcome    Outcome
}

// ExpandingSearch retries a single-radius strategy at successively larger
// radii until enough candidates are collected or the radii are exhausted.
// Candidates seen at a smaller radius are not collected twice.
type ExpandingSearch struct {
	strategy      RadiusSearcher
	radii         []float64
	maxCandidates int
}

// NewExpandingSearch creates an ExpandingSearch over the given ordered radii.
func NewExpandingSearch(strategy RadiusSearcher, radii []float64, maxCandidates int) *ExpandingSearch {
	return &ExpandingSearch{
		strategy:      strategy,
		radii:         radii,
		maxCandidates: maxCandidates,
	}
}

// Run executes the passes sequentially. A failed pass aborts the whole
// search; partial results from earlier passes are not salvaged.
func (s *ExpandingSearch) Run(center geo.Coordinate) (*Result, error) {
	result := &Result{Outcome: OutcomeExhausted}
	seen := make(map[uuid.UUID]bool)

	for _, radius := range s.radii {
		if len(result.Candidates) >= s.maxCandidates {
			break
		}

		// Ask for maxCandidates rather than just the shortfall: a
		// nearest-first strategy would otherwise fill the smaller limit
		// with candidates already collected at a previous radius.
		found, err := s.strategy.SearchRadius(center, radius, s.maxCandidates)
		if err != nil {
			return nil, errors.Wrapf(err, "search pass at %.0fm failed", radius)
		}

		r := radius
		result.RadiiTried = append(result.RadiiTried, radius)
		result.RadiusUsed = &r

		for _, candidate := range found {
			// the cap binds inside a pass too: a strategy that returns
			// rows in storage order can hand back a full batch sharing
			// nothing with the collected set
			if len(result.Candidates) >= s.maxCandidates {
				break
			}
			if seen[candidate.ID] {
				continue
			}
			seen[candidate.ID] = true
			result.Candidates = append(result.Candidates, candidate)
		}

		log.Printf("Search pass radius=%.0fm found=%d collected=%d/%d",
			radius, len(found), len(result.Candidates), s.maxCandidates)

		if len(result.Candidates) >= s.maxCandidates {
			result.Outcome = OutcomeSatisfied
			break
		}
	}

	return result, nil
}

package notify

import (
	"log"
	"sync"

	"sos-service/internal/models"
)

// Dispatch sends msg to every recipient concurrently and returns one result
// per recipient, in input order. A failed send is recorded on its own entry
// and never aborts the rest of the batch; every recipient gets exactly one
// attempt.
func Dispatch(notifier Notifier, recipients []models.Candidate, msg Message) []models.DispatchResult {
	results := make([]models.DispatchResult, len(recipients))

	var wg sync.WaitGroup
	for i, recipient := range recipients {
		wg.Add(1)
		go func(i int, recipient models.Candidate) {
			defer wg.Done()

			result := models.DispatchResult{
				RecipientID:    recipient.ID,
				Name:           recipient.Name,
				Email:          recipient.Email,
				DistanceMeters: recipient.DistanceMeters,
			}
			if err := notifier.Send(recipient.Email, msg); err != nil {
				result.Error = err.Error()
				log.Printf("Notification to %s failed: %v", recipient.Email, err)
			} else {
				result.Success = true
			}
			results[i] = result
		}(i, recipient)
	}
	wg.Wait()

	return results
}

package dispatch

import (
	"time"

	"medilink/models"

	"github.com/google/uuid"
)

// BuildSiblings computes the sibling copies to create when a root request is
// fanned out. It is deterministic for a given input, apart from generated ids
// and the supplied timestamp. The original doctor never receives a sibling,
// and neither does any doctor already holding a pending sibling of the same
// root, so re-running fan-out against partially created siblings cannot
// double-assign a doctor.
func BuildSiblings(root models.ServiceRequest, alternates []models.Doctor, existing []models.ServiceRequest, now time.Time) []models.ServiceRequest {
	held := make(map[string]bool, len(existing))
	for _, sibling := range existing {
		if sibling.ID == root.ID {
			continue
		}
		if sibling.Status == models.RequestStatusPending && sibling.DoctorID != "" {
			held[sibling.DoctorID] = true
		}
	}

	var siblings []models.ServiceRequest
	seen := make(map[string]bool, len(alternates))
	for _, doctor := range alternates {
		if doctor.ID == "" || doctor.ID == root.DoctorID {
			continue
		}
		if held[doctor.ID] || seen[doctor.ID] {
			continue
		}
		seen[doctor.ID] = true

		// Attributes carry over verbatim; only identity fields are fresh.
		// Siblings are born escalated: a copy that sits unanswered past the
		// staleness window must never fan out again, or each generation would
		// spawn a new sibling group the acceptance scan cannot see.
		siblings = append(siblings, models.ServiceRequest{
			ID:                uuid.New().String(),
			BusinessID:        root.BusinessID,
			ServiceID:         root.ServiceID,
			DoctorID:          doctor.ID,
			Status:            models.RequestStatusPending,
			Urgency:           root.Urgency,
			Description:       root.Description,
			Amount:            root.Amount,
			RequestedAt:       now,
			IsEscalated:       true,
			OriginalRequestID: root.ID,
		})
	}
	return siblings
}

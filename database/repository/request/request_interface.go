package requestRepo

import (
	"context"
	"time"

	"medilink/models"
)

// RequestFilter narrows a Find over service requests. Zero-valued fields are
// ignored.
type RequestFilter struct {
	// Status matches requests with exactly this status.
	Status string
	// DoctorID matches requests directly assigned to this doctor.
	DoctorID string
	// AssignedOnly keeps only requests with a non-empty doctor assignment.
	AssignedOnly bool
	// UnassignedOnly keeps only broadcast copies (no doctor assigned).
	UnassignedOnly bool
	// RequestedBefore keeps requests created strictly before this instant.
	RequestedBefore *time.Time
	// IsEscalated filters on the escalation flag when set.
	IsEscalated *bool
	// ServiceIDIn keeps requests whose service is in this set.
	ServiceIDIn []string
	// NotDeclinedBy drops requests this doctor has already declined.
	NotDeclinedBy string
	// RootID keeps requests belonging to the sibling group of this root.
	RootID string
}

// StatusPatch is the write half of a conditional status update. Only non-nil
// fields are applied.
type StatusPatch struct {
	Status      string
	DoctorID    *string
	AcceptedAt  *time.Time
	CompletedAt *time.Time
}

// RequestRepository defines data access for service requests.
type RequestRepository interface {
	// Create inserts a new service request record.
	Create(ctx context.Context, req *models.ServiceRequest) error
	// GetByID retrieves a request by its unique ID; returns (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*models.ServiceRequest, error)
	// Find returns all requests matching the filter.
	Find(ctx context.Context, filter RequestFilter) ([]models.ServiceRequest, error)
	// UpdateStatusIf applies the patch only if the request currently has
	// expectedStatus. Returns false when the precondition did not hold, which
	// is how acceptance races are lost.
	UpdateStatusIf(ctx context.Context, id, expectedStatus string, patch StatusPatch) (bool, error)
	// MarkEscalated flips is_escalated false -> true. Returns false if the
	// request was already escalated (or missing), making fan-out idempotent.
	MarkEscalated(ctx context.Context, id string) (bool, error)
	// AddDecline records that the doctor declined this specific request record.
	AddDecline(ctx context.Context, id, doctorID string) error
}

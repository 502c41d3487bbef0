package request

import (
	"context"

	businessRepo "medilink/database/repository/business"
	doctorRepo "medilink/database/repository/doctor"
	requestRepo "medilink/database/repository/request"
	"medilink/models"
	"medilink/services/notification"
)

// CreateRequestInput is the intake payload for a new root request. DoctorID
// empty means an unassigned broadcast open to any doctor offering the service.
type CreateRequestInput struct {
	BusinessID  string  `json:"businessId" binding:"required"`
	ServiceID   string  `json:"serviceId" binding:"required"`
	DoctorID    string  `json:"doctorId"`
	Urgency     string  `json:"urgency"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// RequestService manages service request intake and lifecycle outside the
// escalation engine.
type RequestService interface {
	CreateRequest(ctx context.Context, input CreateRequestInput) (*models.ServiceRequest, error)
	GetByID(ctx context.Context, id string) (*models.ServiceRequest, error)
	// Complete moves an accepted request to completed.
	Complete(ctx context.Context, id string) (*models.ServiceRequest, error)
	// Cancel retires a pending request on the business's behalf.
	Cancel(ctx context.Context, id string) (*models.ServiceRequest, error)
}

// DefaultRequestService is the production implementation.
type DefaultRequestService struct {
	RequestRepo  requestRepo.RequestRepository
	DoctorRepo   doctorRepo.DoctorRepository
	BusinessRepo businessRepo.BusinessRepository
	Notifier     notification.Gateway
}

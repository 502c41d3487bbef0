package request

import (
	"context"
	"fmt"
	"time"

	requestRepo "medilink/database/repository/request"
	"medilink/models"
	"medilink/services/dispatch"
	"medilink/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateRequest validates the intake payload and stores a new root request.
// A directly assigned doctor must exist and actually offer the service.
func (s *DefaultRequestService) CreateRequest(ctx context.Context, input CreateRequestInput) (*models.ServiceRequest, error) {
	business, err := s.BusinessRepo.GetByID(ctx, input.BusinessID)
	if err != nil {
		return nil, dispatch.NewStoreUnavailableError(err)
	}
	if business == nil {
		return nil, &dispatch.DispatchError{
			Code:    dispatch.CodeNotFound,
			Message: fmt.Sprintf("business %s not found", input.BusinessID),
		}
	}

	if input.DoctorID != "" {
		doctor, err := s.DoctorRepo.GetByID(ctx, input.DoctorID)
		if err != nil {
			return nil, dispatch.NewStoreUnavailableError(err)
		}
		if doctor == nil {
			return nil, &dispatch.DispatchError{
				Code:    dispatch.CodeNotFound,
				Message: fmt.Sprintf("doctor %s not found", input.DoctorID),
			}
		}
		if !doctor.OffersService(input.ServiceID) {
			return nil, dispatch.NewInvalidTransitionError(
				fmt.Sprintf("doctor %s does not offer service %s", input.DoctorID, input.ServiceID))
		}
	}

	req := &models.ServiceRequest{
		ID:          uuid.New().String(),
		BusinessID:  input.BusinessID,
		ServiceID:   input.ServiceID,
		DoctorID:    input.DoctorID,
		Status:      models.RequestStatusPending,
		Urgency:     input.Urgency,
		Description: input.Description,
		Amount:      input.Amount,
		RequestedAt: time.Now(),
	}
	if err := s.RequestRepo.Create(ctx, req); err != nil {
		return nil, dispatch.NewStoreUnavailableError(err)
	}

	if req.DoctorID != "" && s.Notifier != nil {
		err := s.Notifier.NotifyDoctorAssigned(ctx, models.DoctorAssignedPayload{
			DoctorID:  req.DoctorID,
			RequestID: req.ID,
			ServiceID: req.ServiceID,
			Urgency:   req.Urgency,
		})
		if err != nil {
			utils.GetLogger().Warn("CreateRequest: doctor notification failed",
				zap.String("requestID", req.ID), zap.Error(err))
		}
	}

	return req, nil
}

// GetByID fetches a single request.
func (s *DefaultRequestService) GetByID(ctx context.Context, id string) (*models.ServiceRequest, error) {
	req, err := s.RequestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, dispatch.NewStoreUnavailableError(err)
	}
	if req == nil {
		return nil, dispatch.NewNotFoundError(id)
	}
	return req, nil
}

// Complete moves an accepted request to completed.
func (s *DefaultRequestService) Complete(ctx context.Context, id string) (*models.ServiceRequest, error) {
	now := time.Now()
	updated, err := s.RequestRepo.UpdateStatusIf(ctx, id, models.RequestStatusAccepted, requestRepo.StatusPatch{
		Status:      models.RequestStatusCompleted,
		CompletedAt: &now,
	})
	if err != nil {
		return nil, dispatch.NewStoreUnavailableError(err)
	}
	if !updated {
		req, err := s.RequestRepo.GetByID(ctx, id)
		if err != nil {
			return nil, dispatch.NewStoreUnavailableError(err)
		}
		if req == nil {
			return nil, dispatch.NewNotFoundError(id)
		}
		return nil, dispatch.NewInvalidTransitionError(
			fmt.Sprintf("cannot complete request %s in status %q", id, req.Status))
	}
	return s.GetByID(ctx, id)
}

// Cancel retires a pending request. Only pending records can be cancelled this
// way; siblings are untouched.
func (s *DefaultRequestService) Cancel(ctx context.Context, id string) (*models.ServiceRequest, error) {
	updated, err := s.RequestRepo.UpdateStatusIf(ctx, id, models.RequestStatusPending, requestRepo.StatusPatch{
		Status: models.RequestStatusCancelled,
	})
	if err != nil {
		return nil, dispatch.NewStoreUnavailableError(err)
	}
	if !updated {
		req, err := s.RequestRepo.GetByID(ctx, id)
		if err != nil {
			return nil, dispatch.NewStoreUnavailableError(err)
		}
		if req == nil {
			return nil, dispatch.NewNotFoundError(id)
		}
		return nil, dispatch.NewInvalidTransitionError(
			fmt.Sprintf("cannot cancel request %s in status %q", id, req.Status))
	}
	return s.GetByID(ctx, id)
}

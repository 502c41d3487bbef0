package dispatch

import (
	"context"
	"fmt"

	requestRepo "medilink/database/repository/request"
	"medilink/models"

	"go.uber.org/zap"
)

// Accept attempts to assign the request to the doctor. Acceptance is the one
// critical section in the system: attempts within a sibling group are
// serialized by the group lock, and the pending -> accepted transition itself
// is a conditional update keyed on the current status. Exactly one contender
// observes pending and wins; every other contender maps to alreadyAssigned.
func (s *DefaultDispatchService) Accept(ctx context.Context, requestID, doctorID string) (*models.ServiceRequest, error) {
	req, err := s.RequestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, NewStoreUnavailableError(err)
	}
	if req == nil {
		return nil, NewNotFoundError(requestID)
	}

	if s.Locker != nil {
		unlock, err := s.Locker.Lock(ctx, req.RootID())
		if err != nil {
			return nil, NewStoreUnavailableError(err)
		}
		defer unlock()

		// Re-read under the lock; a sibling may have won while we waited.
		req, err = s.RequestRepo.GetByID(ctx, requestID)
		if err != nil {
			return nil, NewStoreUnavailableError(err)
		}
		if req == nil {
			return nil, NewNotFoundError(requestID)
		}
	}

	if req.DoctorID != "" && req.DoctorID != doctorID {
		return nil, NewAlreadyAssignedError(requestID)
	}
	switch req.Status {
	case models.RequestStatusPending:
		// proceed
	case models.RequestStatusCancelled:
		// A sibling won while this record was on screen.
		return nil, NewAlreadyAssignedError(requestID)
	default:
		return nil, NewInvalidTransitionError(
			fmt.Sprintf("cannot accept request %s in status %q", requestID, req.Status))
	}

	group, err := s.RequestRepo.Find(ctx, requestRepo.RequestFilter{RootID: req.RootID()})
	if err != nil {
		return nil, NewStoreUnavailableError(err)
	}
	for _, member := range group {
		// A winner whose sibling cancellations have not all landed yet still
		// blocks everyone else.
		if member.ID != requestID && member.Status == models.RequestStatusAccepted {
			return nil, NewAlreadyAssignedError(requestID)
		}
	}

	now := s.now()
	updated, err := s.RequestRepo.UpdateStatusIf(ctx, requestID, models.RequestStatusPending, requestRepo.StatusPatch{
		Status:     models.RequestStatusAccepted,
		DoctorID:   &doctorID,
		AcceptedAt: &now,
	})
	if err != nil {
		return nil, NewStoreUnavailableError(err)
	}
	if !updated {
		return nil, NewAlreadyAssignedError(requestID)
	}

	s.cancelSiblings(ctx, group, requestID)

	if s.Notifier != nil {
		err := s.Notifier.NotifyBusinessAccepted(ctx, models.BusinessAcceptedPayload{
			BusinessID: req.BusinessID,
			RequestID:  requestID,
			DoctorID:   doctorID,
		})
		if err != nil {
			s.logger().Warn("accept: business notification failed",
				zap.String("requestID", requestID), zap.Error(err))
		}
	}

	accepted, err := s.RequestRepo.GetByID(ctx, requestID)
	if err != nil || accepted == nil {
		// The write committed; reflect it even if the re-read failed.
		req.Status = models.RequestStatusAccepted
		req.DoctorID = doctorID
		req.AcceptedAt = &now
		return req, nil
	}
	return accepted, nil
}

// cancelSiblings retires every other pending member of the winner's sibling
// group. Each cancellation is itself conditional on pending, so a member that
// resolved in the meantime is left alone.
func (s *DefaultDispatchService) cancelSiblings(ctx context.Context, group []models.ServiceRequest, winnerID string) {
	logger := s.logger()

	for _, member := range group {
		if member.ID == winnerID || member.Status != models.RequestStatusPending {
			continue
		}
		cancelled, err := s.RequestRepo.UpdateStatusIf(ctx, member.ID, models.RequestStatusPending, requestRepo.StatusPatch{
			Status: models.RequestStatusCancelled,
		})
		if err != nil {
			logger.Error("accept: failed to cancel sibling",
				zap.String("requestID", member.ID), zap.Error(err))
			continue
		}
		if !cancelled {
			logger.Debug("accept: sibling no longer pending", zap.String("requestID", member.ID))
		}
	}
}

// Decline records a doctor's refusal. A directly assigned request becomes
// rejected and terminal; a broadcast copy stays pending for other doctors and
// merely disappears from the decliner's availability view. Decline never
// touches siblings.
func (s *DefaultDispatchService) Decline(ctx context.Context, requestID, doctorID string) (*models.ServiceRequest, error) {
	req, err := s.RequestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, NewStoreUnavailableError(err)
	}
	if req == nil {
		return nil, NewNotFoundError(requestID)
	}
	if req.Status != models.RequestStatusPending {
		return nil, NewInvalidTransitionError(
			fmt.Sprintf("cannot decline request %s in status %q", requestID, req.Status))
	}
	if req.DoctorID != "" && req.DoctorID != doctorID {
		return nil, NewInvalidTransitionError(
			fmt.Sprintf("request %s is assigned to another doctor", requestID))
	}

	if err := s.RequestRepo.AddDecline(ctx, requestID, doctorID); err != nil {
		return nil, NewStoreUnavailableError(err)
	}

	if req.DoctorID == doctorID {
		rejected, err := s.RequestRepo.UpdateStatusIf(ctx, requestID, models.RequestStatusPending, requestRepo.StatusPatch{
			Status: models.RequestStatusRejected,
		})
		if err != nil {
			return nil, NewStoreUnavailableError(err)
		}
		if !rejected {
			// Raced with a cancellation; the decline set still grew.
			s.logger().Debug("decline: request no longer pending", zap.String("requestID", requestID))
		}
	}

	declined, err := s.RequestRepo.GetByID(ctx, requestID)
	if err != nil || declined == nil {
		return req, nil
	}
	return declined, nil
}

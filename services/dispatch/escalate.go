package dispatch

import (
	"context"
	"fmt"

	requestRepo "medilink/database/repository/request"
	"medilink/models"

	"go.uber.org/zap"
)

// EscalateStale runs one scheduler tick. Candidate identification is a single
// store read; if it fails the whole tick is deferred to the next period.
// Per-candidate failures are isolated: they are logged and never abort the
// remaining candidates.
func (s *DefaultDispatchService) EscalateStale(ctx context.Context) error {
	now := s.now()
	cutoff := now.Add(-s.Staleness)
	notEscalated := false

	candidates, err := s.RequestRepo.Find(ctx, requestRepo.RequestFilter{
		Status:          models.RequestStatusPending,
		AssignedOnly:    true,
		RequestedBefore: &cutoff,
		IsEscalated:     &notEscalated,
	})
	if err != nil {
		return NewStoreUnavailableError(fmt.Errorf("escalation candidate query failed: %w", err))
	}

	for _, candidate := range candidates {
		s.escalateOne(ctx, candidate)
	}
	return nil
}

// escalateOne fans out a single stale request. The escalation flag is flipped
// before any sibling is created: a crash mid-fan-out surfaces as a logged,
// lost escalation rather than a duplicate one on the next tick.
func (s *DefaultDispatchService) escalateOne(ctx context.Context, root models.ServiceRequest) {
	logger := s.logger()

	marked, err := s.RequestRepo.MarkEscalated(ctx, root.ID)
	if err != nil {
		// Flag untouched, candidate comes back next tick.
		logger.Error("escalation: failed to mark request escalated",
			zap.String("requestID", root.ID), zap.Error(err))
		return
	}
	if !marked {
		// Another tick already claimed this request.
		logger.Debug("escalation: request already escalated", zap.String("requestID", root.ID))
		return
	}

	alternates, err := s.DoctorRepo.FindOfferingService(ctx, root.ServiceID, root.DoctorID)
	if err != nil {
		logger.Error("escalation: doctor lookup failed, escalation lost",
			zap.String("requestID", root.ID), zap.Error(err))
		return
	}

	existing, err := s.RequestRepo.Find(ctx, requestRepo.RequestFilter{RootID: root.ID})
	if err != nil {
		logger.Error("escalation: sibling lookup failed, escalation lost",
			zap.String("requestID", root.ID), zap.Error(err))
		return
	}

	siblings := BuildSiblings(root, alternates, existing, s.now())
	if len(siblings) == 0 {
		// Terminal for escalation purposes; the original doctor may still act.
		logger.Info("escalation: no eligible alternate doctors",
			zap.String("requestID", root.ID), zap.String("serviceID", root.ServiceID))
		return
	}

	created := 0
	for _, sibling := range siblings {
		if err := s.RequestRepo.Create(ctx, &sibling); err != nil {
			// Siblings are independent; partial escalation is still useful.
			logger.Error("escalation: failed to create sibling",
				zap.String("rootID", root.ID), zap.String("doctorID", sibling.DoctorID), zap.Error(err))
			continue
		}
		created++

		if s.Notifier != nil {
			err := s.Notifier.NotifyDoctorAssigned(ctx, models.DoctorAssignedPayload{
				DoctorID:  sibling.DoctorID,
				RequestID: sibling.ID,
				ServiceID: sibling.ServiceID,
				Urgency:   sibling.Urgency,
				Escalated: true,
			})
			if err != nil {
				logger.Warn("escalation: sibling notification failed",
					zap.String("requestID", sibling.ID), zap.Error(err))
			}
		}
	}

	logger.Info("escalation: request fanned out",
		zap.String("requestID", root.ID),
		zap.Int("siblingsCreated", created),
		zap.Int("alternates", len(alternates)))
}

package dispatch

import (
	"context"
	"time"

	doctorRepo "medilink/database/repository/doctor"
	requestRepo "medilink/database/repository/request"
	"medilink/models"
	"medilink/services/notification"

	"go.uber.org/zap"
)

// Clock abstracts wall time so the scheduler can be driven by a fake clock in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the production clock.
var SystemClock Clock = systemClock{}

// DispatchService is the escalation and race-resolution engine for service
// requests.
type DispatchService interface {
	// EscalateStale runs one scheduler tick: it fans out every pending,
	// doctor-assigned request older than the staleness threshold.
	EscalateStale(ctx context.Context) error
	// Accept resolves an acceptance attempt. At most one doctor ever wins a
	// sibling group; losers receive an alreadyAssigned error.
	Accept(ctx context.Context, requestID, doctorID string) (*models.ServiceRequest, error)
	// Decline records a doctor's refusal of a request record.
	Decline(ctx context.Context, requestID, doctorID string) (*models.ServiceRequest, error)
	// GetAvailableRequests returns the requests a doctor may currently act on.
	GetAvailableRequests(ctx context.Context, doctorID string) ([]models.ServiceRequest, error)
}

// DefaultDispatchService implements DispatchService.
type DefaultDispatchService struct {
	RequestRepo requestRepo.RequestRepository
	DoctorRepo  doctorRepo.DoctorRepository
	Notifier    notification.Gateway
	Locker      GroupLocker
	Clock       Clock
	Staleness   time.Duration
	Logger      *zap.Logger
}

func (s *DefaultDispatchService) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now()
	}
	return time.Now()
}

func (s *DefaultDispatchService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}

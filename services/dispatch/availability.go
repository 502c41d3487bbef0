package dispatch

import (
	"context"

	requestRepo "medilink/database/repository/request"
	"medilink/models"
)

// GetAvailableRequests returns the union of requests directly assigned to the
// doctor and pending broadcast copies for services the doctor offers and has
// not declined. Requests for non-matching services are never surfaced.
func (s *DefaultDispatchService) GetAvailableRequests(ctx context.Context, doctorID string) ([]models.ServiceRequest, error) {
	doctor, err := s.DoctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		return nil, NewStoreUnavailableError(err)
	}
	if doctor == nil {
		return nil, &DispatchError{
			Code:    CodeNotFound,
			Message: "doctor " + doctorID + " not found",
		}
	}

	assigned, err := s.RequestRepo.Find(ctx, requestRepo.RequestFilter{
		Status:   models.RequestStatusPending,
		DoctorID: doctorID,
	})
	if err != nil {
		return nil, NewStoreUnavailableError(err)
	}

	available := assigned
	if len(doctor.OfferedServiceIDs) > 0 {
		broadcast, err := s.RequestRepo.Find(ctx, requestRepo.RequestFilter{
			Status:         models.RequestStatusPending,
			UnassignedOnly: true,
			ServiceIDIn:    doctor.OfferedServiceIDs,
			NotDeclinedBy:  doctorID,
		})
		if err != nil {
			return nil, NewStoreUnavailableError(err)
		}
		available = append(available, broadcast...)
	}

	if available == nil {
		available = []models.ServiceRequest{}
	}
	return available, nil
}

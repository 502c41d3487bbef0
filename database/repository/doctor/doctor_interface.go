package doctorRepo

import (
	"context"

	"medilink/models"
)

// DoctorRepository defines methods for doctor data access.
type DoctorRepository interface {
	// GetByID retrieves a doctor by its unique ID; returns (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*models.Doctor, error)
	// GetByEmail retrieves a doctor by email address.
	GetByEmail(ctx context.Context, email string) (*models.Doctor, error)
	// FindOfferingService returns available, verified doctors offering the
	// service, excluding excludeDoctorID when non-empty.
	FindOfferingService(ctx context.Context, serviceID, excludeDoctorID string) ([]models.Doctor, error)
	// Create inserts a new doctor record.
	Create(ctx context.Context, doctor *models.Doctor) error
	// UpdateWithDocument patches a doctor document with the specified update document.
	UpdateWithDocument(ctx context.Context, id string, updateDoc map[string]interface{}) error
	// GetByTokenHash retrieves the doctor whose token hash matches.
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.Doctor, error)
}

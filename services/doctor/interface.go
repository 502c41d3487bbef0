package doctor

import (
	"context"

	doctorRepo "medilink/database/repository/doctor"
	"medilink/models"
)

// AuthResponse contains the doctor's ID and freshly issued token.
type AuthResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// DoctorService manages doctor accounts and authentication.
type DoctorService interface {
	RegisterDoctor(ctx context.Context, doctor *models.Doctor) (*AuthResponse, error)
	AuthenticateDoctor(ctx context.Context, email, password string) (*AuthResponse, error)
	GetDoctorByID(ctx context.Context, id string) (*models.Doctor, error)
	// UpdateDoctor patches mutable fields: availability, offered services, FCM token.
	UpdateDoctor(ctx context.Context, id string, updateDoc map[string]interface{}) (*models.Doctor, error)
	RevokeAuthToken(ctx context.Context, id string) error
}

// DefaultDoctorService is the production implementation.
type DefaultDoctorService struct {
	Repo doctorRepo.DoctorRepository
}

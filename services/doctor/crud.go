package doctor

import (
	"context"
	"fmt"
	"time"

	"medilink/models"
	"medilink/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const authTokenTTL = 72 * time.Hour

// RegisterDoctor creates a doctor account and issues an auth token. New
// doctors start unverified; an operator flips is_verified out of band.
func (s *DefaultDoctorService) RegisterDoctor(ctx context.Context, doctor *models.Doctor) (*AuthResponse, error) {
	if doctor.Email == "" || doctor.Security.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	existing, err := s.Repo.GetByEmail(ctx, doctor.Email)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("a doctor with email %s already exists", doctor.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(doctor.Security.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	doctor.ID = uuid.New().String()
	doctor.Security.Password = ""
	doctor.Security.PasswordHash = string(hash)
	doctor.IsAvailable = true
	doctor.CreatedAt = time.Now()
	doctor.UpdatedAt = doctor.CreatedAt

	token, err := utils.GenerateToken(doctor.ID, doctor.Email, authTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	doctor.Security.TokenHash = utils.HashToken(token)

	if err := s.Repo.Create(ctx, doctor); err != nil {
		return nil, err
	}

	return &AuthResponse{
		ID:    doctor.ID,
		Token: token,
		Name:  doctor.Name,
		Email: doctor.Email,
	}, nil
}

// AuthenticateDoctor verifies credentials and rotates the doctor's token.
func (s *DefaultDoctorService) AuthenticateDoctor(ctx context.Context, email, password string) (*AuthResponse, error) {
	doctor, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		utils.GetLogger().Error("AuthenticateDoctor: failed to fetch doctor", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if doctor == nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(doctor.Security.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	token, err := utils.GenerateToken(doctor.ID, doctor.Email, authTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.Repo.UpdateWithDocument(ctx, doctor.ID, map[string]interface{}{
		"security.token_hash": utils.HashToken(token),
	}); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}
	utils.InvalidateAuthCache(ctx, doctor.ID)

	return &AuthResponse{
		ID:    doctor.ID,
		Token: token,
		Name:  doctor.Name,
		Email: doctor.Email,
	}, nil
}

// GetDoctorByID fetches a doctor record.
func (s *DefaultDoctorService) GetDoctorByID(ctx context.Context, id string) (*models.Doctor, error) {
	doctor, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, fmt.Errorf("doctor %s not found", id)
	}
	return doctor, nil
}

// UpdateDoctor patches whitelisted mutable fields.
func (s *DefaultDoctorService) UpdateDoctor(ctx context.Context, id string, updateDoc map[string]interface{}) (*models.Doctor, error) {
	allowed := map[string]string{
		"name":              "name",
		"phoneNumber":       "phone_number",
		"offeredServiceIds": "offered_service_ids",
		"isAvailable":       "is_available",
		"fcmToken":          "security.fcm_token",
	}

	patch := map[string]interface{}{}
	for key, value := range updateDoc {
		if field, ok := allowed[key]; ok {
			patch[field] = value
		}
	}
	if len(patch) == 0 {
		return nil, fmt.Errorf("no updatable fields provided")
	}

	if err := s.Repo.UpdateWithDocument(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.GetDoctorByID(ctx, id)
}

// RevokeAuthToken clears the stored token hash, signing the doctor out.
func (s *DefaultDoctorService) RevokeAuthToken(ctx context.Context, id string) error {
	if err := s.Repo.UpdateWithDocument(ctx, id, map[string]interface{}{
		"security.token_hash": "",
	}); err != nil {
		return err
	}
	utils.InvalidateAuthCache(ctx, id)
	return nil
}

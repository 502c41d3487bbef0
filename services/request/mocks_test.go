package request

import (
	"context"
	"errors"
	"sync"

	requestRepo "medilink/database/repository/request"
	"medilink/models"
)

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*models.ServiceRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]*models.ServiceRequest)}
}

func (r *fakeRequestRepo) put(req models.ServiceRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := req
	r.requests[req.ID] = &clone
}

func (r *fakeRequestRepo) get(id string) models.ServiceRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.requests[id]
}

func (r *fakeRequestRepo) Create(ctx context.Context, req *models.ServiceRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.requests[req.ID]; exists {
		return errors.New("duplicate id")
	}
	clone := *req
	r.requests[req.ID] = &clone
	return nil
}

func (r *fakeRequestRepo) GetByID(ctx context.Context, id string) (*models.ServiceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	clone := *req
	return &clone, nil
}

func (r *fakeRequestRepo) Find(ctx context.Context, filter requestRepo.RequestFilter) ([]models.ServiceRequest, error) {
	return nil, nil
}

func (r *fakeRequestRepo) UpdateStatusIf(ctx context.Context, id, expectedStatus string, patch requestRepo.StatusPatch) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok || req.Status != expectedStatus {
		return false, nil
	}
	req.Status = patch.Status
	if patch.DoctorID != nil {
		req.DoctorID = *patch.DoctorID
	}
	if patch.AcceptedAt != nil {
		t := *patch.AcceptedAt
		req.AcceptedAt = &t
	}
	if patch.CompletedAt != nil {
		t := *patch.CompletedAt
		req.CompletedAt = &t
	}
	return true, nil
}

func (r *fakeRequestRepo) MarkEscalated(ctx context.Context, id string) (bool, error) {
	return false, nil
}

func (r *fakeRequestRepo) AddDecline(ctx context.Context, id, doctorID string) error {
	return nil
}

type fakeDoctorRepo struct {
	doctors map[string]models.Doctor
}

func newFakeDoctorRepo(doctors ...models.Doctor) *fakeDoctorRepo {
	repo := &fakeDoctorRepo{doctors: make(map[string]models.Doctor)}
	for _, doc := range doctors {
		repo.doctors[doc.ID] = doc
	}
	return repo
}

func (r *fakeDoctorRepo) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	doc, ok := r.doctors[id]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (r *fakeDoctorRepo) GetByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	return nil, nil
}

func (r *fakeDoctorRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.Doctor, error) {
	return nil, nil
}

func (r *fakeDoctorRepo) FindOfferingService(ctx context.Context, serviceID, excludeDoctorID string) ([]models.Doctor, error) {
	return nil, nil
}

func (r *fakeDoctorRepo) Create(ctx context.Context, doctor *models.Doctor) error {
	r.doctors[doctor.ID] = *doctor
	return nil
}

func (r *fakeDoctorRepo) UpdateWithDocument(ctx context.Context, id string, update map[string]interface{}) error {
	return nil
}

type fakeBusinessRepo struct {
	businesses map[string]models.Business
}

func newFakeBusinessRepo(businesses ...models.Business) *fakeBusinessRepo {
	repo := &fakeBusinessRepo{businesses: make(map[string]models.Business)}
	for _, biz := range businesses {
		repo.businesses[biz.ID] = biz
	}
	return repo
}

func (r *fakeBusinessRepo) GetByID(ctx context.Context, id string) (*models.Business, error) {
	biz, ok := r.businesses[id]
	if !ok {
		return nil, nil
	}
	return &biz, nil
}

func (r *fakeBusinessRepo) Create(ctx context.Context, business *models.Business) error {
	r.businesses[business.ID] = *business
	return nil
}

type fakeGateway struct {
	doctorNotified []models.DoctorAssignedPayload
}

func (g *fakeGateway) NotifyDoctorAssigned(ctx context.Context, payload models.DoctorAssignedPayload) error {
	g.doctorNotified = append(g.doctorNotified, payload)
	return nil
}

func (g *fakeGateway) NotifyBusinessAccepted(ctx context.Context, payload models.BusinessAcceptedPayload) error {
	return nil
}

package dispatch

import (
	"context"
	"errors"
	"sync"
	"time"

	requestRepo "medilink/database/repository/request"
	"medilink/models"

	"go.uber.org/zap"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{now: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeRequestRepo is an in-memory RequestRepository. Every mutation holds the
// mutex for its whole duration, mirroring the atomicity of the Mongo
// conditional updates.
type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*models.ServiceRequest

	findErr            error
	doctorCreateErrFor map[string]bool
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

func (r *fakeRequestRepo) all() []models.ServiceRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.ServiceRequest, 0, len(r.requests))
	for _, req := range r.requests {
		out = append(out, *req)
	}
	return out
}

func (r *fakeRequestRepo) Create(ctx context.Context, req *models.ServiceRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.doctorCreateErrFor[req.DoctorID] {
		return errors.New("simulated create failure")
	}
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
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []models.ServiceRequest
	for _, req := range r.requests {
		if matches(req, filter) {
			out = append(out, *req)
		}
	}
	return out, nil
}

func matches(req *models.ServiceRequest, filter requestRepo.RequestFilter) bool {
	if filter.Status != "" && req.Status != filter.Status {
		return false
	}
	if filter.DoctorID != "" && req.DoctorID != filter.DoctorID {
		return false
	}
	if filter.AssignedOnly && req.DoctorID == "" {
		return false
	}
	if filter.UnassignedOnly && req.DoctorID != "" {
		return false
	}
	if filter.RequestedBefore != nil && !req.RequestedAt.Before(*filter.RequestedBefore) {
		return false
	}
	if filter.IsEscalated != nil && req.IsEscalated != *filter.IsEscalated {
		return false
	}
	if len(filter.ServiceIDIn) > 0 {
		found := false
		for _, id := range filter.ServiceIDIn {
			if req.ServiceID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.NotDeclinedBy != "" && req.DeclinedBy(filter.NotDeclinedBy) {
		return false
	}
	if filter.RootID != "" && req.ID != filter.RootID && req.OriginalRequestID != filter.RootID {
		return false
	}
	return true
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
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok || req.IsEscalated {
		return false, nil
	}
	req.IsEscalated = true
	return true, nil
}

func (r *fakeRequestRepo) AddDecline(ctx context.Context, id, doctorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return errors.New("request not found")
	}
	if !req.DeclinedBy(doctorID) {
		req.DeclinedByDoctors = append(req.DeclinedByDoctors, doctorID)
	}
	return nil
}

// fakeDoctorRepo is an in-memory DoctorRepository.
type fakeDoctorRepo struct {
	mu      sync.Mutex
	doctors map[string]*models.Doctor
	findErr error
}

func newFakeDoctorRepo(doctors ...models.Doctor) *fakeDoctorRepo {
	repo := &fakeDoctorRepo{doctors: make(map[string]*models.Doctor)}
	for _, d := range doctors {
		clone := d
		repo.doctors[d.ID] = &clone
	}
	return repo
}

func (r *fakeDoctorRepo) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doctor, ok := r.doctors[id]
	if !ok {
		return nil, nil
	}
	clone := *doctor
	return &clone, nil
}

func (r *fakeDoctorRepo) GetByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, doctor := range r.doctors {
		if doctor.Email == email {
			clone := *doctor
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeDoctorRepo) FindOfferingService(ctx context.Context, serviceID, excludeDoctorID string) ([]models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []models.Doctor
	for _, doctor := range r.doctors {
		if doctor.ID == excludeDoctorID || !doctor.IsAvailable || !doctor.IsVerified {
			continue
		}
		if doctor.OffersService(serviceID) {
			out = append(out, *doctor)
		}
	}
	return out, nil
}

func (r *fakeDoctorRepo) Create(ctx context.Context, doctor *models.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *doctor
	r.doctors[doctor.ID] = &clone
	return nil
}

func (r *fakeDoctorRepo) UpdateWithDocument(ctx context.Context, id string, updateDoc map[string]interface{}) error {
	return nil
}

func (r *fakeDoctorRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.Doctor, error) {
	return nil, nil
}

// fakeGateway records every notification it is asked to deliver.
type fakeGateway struct {
	mu             sync.Mutex
	doctorNotified []models.DoctorAssignedPayload
	businessNotes  []models.BusinessAcceptedPayload
}

func (g *fakeGateway) NotifyDoctorAssigned(ctx context.Context, payload models.DoctorAssignedPayload) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.doctorNotified = append(g.doctorNotified, payload)
	return nil
}

func (g *fakeGateway) NotifyBusinessAccepted(ctx context.Context, payload models.BusinessAcceptedPayload) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.businessNotes = append(g.businessNotes, payload)
	return nil
}

func groupFilter(rootID string) requestRepo.RequestFilter {
	return requestRepo.RequestFilter{RootID: rootID}
}

func newTestService(reqs *fakeRequestRepo, docs *fakeDoctorRepo, clock Clock, staleness time.Duration) (*DefaultDispatchService, *fakeGateway) {
	gateway := &fakeGateway{}
	svc := &DefaultDispatchService{
		RequestRepo: reqs,
		DoctorRepo:  docs,
		Notifier:    gateway,
		Locker:      NewLocalGroupLocker(),
		Clock:       clock,
		Staleness:   staleness,
		Logger:      zap.NewNop(),
	}
	return svc, gateway
}

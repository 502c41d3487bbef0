package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"medilink/models"
	"medilink/services/dispatch"
	"medilink/services/request"
	"medilink/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDispatch returns canned results for the dispatch operations.
type stubDispatch struct {
	acceptErr error
	accepted  *models.ServiceRequest
}

func (s *stubDispatch) EscalateStale(ctx context.Context) error { return nil }

func (s *stubDispatch) Accept(ctx context.Context, requestID, doctorID string) (*models.ServiceRequest, error) {
	return s.accepted, s.acceptErr
}

func (s *stubDispatch) Decline(ctx context.Context, requestID, doctorID string) (*models.ServiceRequest, error) {
	return nil, s.acceptErr
}

func (s *stubDispatch) GetAvailableRequests(ctx context.Context, doctorID string) ([]models.ServiceRequest, error) {
	return []models.ServiceRequest{}, nil
}

type stubRequestSvc struct {
	getErr error
	req    *models.ServiceRequest
}

func (s *stubRequestSvc) CreateRequest(ctx context.Context, input request.CreateRequestInput) (*models.ServiceRequest, error) {
	return s.req, s.getErr
}

func (s *stubRequestSvc) GetByID(ctx context.Context, id string) (*models.ServiceRequest, error) {
	return s.req, s.getErr
}

func (s *stubRequestSvc) Complete(ctx context.Context, id string) (*models.ServiceRequest, error) {
	return s.req, s.getErr
}

func (s *stubRequestSvc) Cancel(ctx context.Context, id string) (*models.ServiceRequest, error) {
	return s.req, s.getErr
}

func newRequestRouter(dispatchSvc dispatch.DispatchService, requestSvc request.RequestService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewRequestHandler(requestSvc, dispatchSvc, utils.GetLogger())
	r := gin.New()
	r.GET("/api/service-requests/:id", h.GetRequest)
	r.PUT("/api/service-requests/:id/accept", h.AcceptRequest)
	return r
}

func TestStatusForErrorMapping(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusForError(dispatch.NewNotFoundError("r")))
	assert.Equal(t, http.StatusConflict, statusForError(dispatch.NewAlreadyAssignedError("r")))
	assert.Equal(t, http.StatusUnprocessableEntity, statusForError(dispatch.NewInvalidTransitionError("bad")))
	assert.Equal(t, http.StatusServiceUnavailable, statusForError(dispatch.NewStoreUnavailableError(errors.New("store down"))))
}

func TestAcceptRequestRaceLossReturnsConflict(t *testing.T) {
	r := newRequestRouter(&stubDispatch{acceptErr: dispatch.NewAlreadyAssignedError("req-1")}, &stubRequestSvc{})

	req := httptest.NewRequest(http.MethodPut, "/api/service-requests/req-1/accept",
		strings.NewReader(`{"doctorId":"doc-b"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "acceptance failed", body.Message)
	assert.NotEmpty(t, body.Details)
}

func TestGetRequestNotFoundShape(t *testing.T) {
	r := newRequestRouter(&stubDispatch{}, &stubRequestSvc{getErr: dispatch.NewNotFoundError("req-9")})

	req := httptest.NewRequest(http.MethodGet, "/api/service-requests/req-9", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "request lookup failed", body.Message)
}

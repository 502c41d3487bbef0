package handlers

import (
	"net/http"

	"medilink/services/dispatch"
	"medilink/services/request"
	"medilink/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestHandler serves service-request endpoints.
type RequestHandler struct {
	RequestSvc  request.RequestService
	DispatchSvc dispatch.DispatchService
	Logger      *zap.Logger
}

func NewRequestHandler(requestSvc request.RequestService, dispatchSvc dispatch.DispatchService, logger *zap.Logger) *RequestHandler {
	return &RequestHandler{
		RequestSvc:  requestSvc,
		DispatchSvc: dispatchSvc,
		Logger:      logger,
	}
}

// statusForError maps dispatch error codes to HTTP statuses.
func statusForError(err error) int {
	switch {
	case dispatch.HasCode(err, dispatch.CodeNotFound):
		return http.StatusNotFound
	case dispatch.HasCode(err, dispatch.CodeAlreadyAssigned):
		return http.StatusConflict
	case dispatch.HasCode(err, dispatch.CodeInvalidTransition):
		return http.StatusUnprocessableEntity
	case dispatch.HasCode(err, dispatch.CodeStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// CreateRequest handles POST /api/service-requests.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var input request.CreateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	created, err := h.RequestSvc.CreateRequest(c.Request.Context(), input)
	if err != nil {
		h.Logger.Error("CreateRequest failed", zap.Error(err))
		utils.JSONError(c, statusForError(err), "request creation failed", err.Error())
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetRequest handles GET /api/service-requests/:id.
func (h *RequestHandler) GetRequest(c *gin.Context) {
	req, err := h.RequestSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, statusForError(err), "request lookup failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, req)
}

// AcceptRequest handles PUT /api/service-requests/:id/accept.
func (h *RequestHandler) AcceptRequest(c *gin.Context) {
	var body struct {
		DoctorID string `json:"doctorId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	accepted, err := h.DispatchSvc.Accept(c.Request.Context(), c.Param("id"), body.DoctorID)
	if err != nil {
		if dispatch.HasCode(err, dispatch.CodeAlreadyAssigned) {
			h.Logger.Info("acceptance race lost",
				zap.String("requestID", c.Param("id")), zap.String("doctorID", body.DoctorID))
		} else {
			h.Logger.Error("AcceptRequest failed", zap.Error(err))
		}
		utils.JSONError(c, statusForError(err), "acceptance failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, accepted)
}

// RejectRequest handles PUT /api/service-requests/:id/reject.
func (h *RequestHandler) RejectRequest(c *gin.Context) {
	var body struct {
		DoctorID string `json:"doctorId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	declined, err := h.DispatchSvc.Decline(c.Request.Context(), c.Param("id"), body.DoctorID)
	if err != nil {
		h.Logger.Error("RejectRequest failed", zap.Error(err))
		utils.JSONError(c, statusForError(err), "decline failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, declined)
}

// CompleteRequest handles PUT /api/service-requests/:id/complete.
func (h *RequestHandler) CompleteRequest(c *gin.Context) {
	completed, err := h.RequestSvc.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, statusForError(err), "completion failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, completed)
}

// CancelRequest handles PUT /api/service-requests/:id/cancel.
func (h *RequestHandler) CancelRequest(c *gin.Context) {
	cancelled, err := h.RequestSvc.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, statusForError(err), "cancellation failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, cancelled)
}

// GetAvailableRequests handles GET /api/service-requests/available/:doctorId.
func (h *RequestHandler) GetAvailableRequests(c *gin.Context) {
	available, err := h.DispatchSvc.GetAvailableRequests(c.Request.Context(), c.Param("doctorId"))
	if err != nil {
		h.Logger.Error("GetAvailableRequests failed",
			zap.String("doctorID", c.Param("doctorId")), zap.Error(err))
		utils.JSONError(c, statusForError(err), "availability lookup failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": available})
}

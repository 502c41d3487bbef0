package handlers

import (
	"net/http"

	"medilink/models"
	"medilink/services/doctor"
	"medilink/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DoctorHandler serves doctor account endpoints.
type DoctorHandler struct {
	Svc    doctor.DoctorService
	Logger *zap.Logger
}

func NewDoctorHandler(svc doctor.DoctorService, logger *zap.Logger) *DoctorHandler {
	return &DoctorHandler{Svc: svc, Logger: logger}
}

// RegisterDoctor handles POST /api/doctors/register.
func (h *DoctorHandler) RegisterDoctor(c *gin.Context) {
	var input models.Doctor
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Svc.RegisterDoctor(c.Request.Context(), &input)
	if err != nil {
		h.Logger.Error("RegisterDoctor failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "registration failed", err.Error())
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AuthenticateDoctor handles POST /api/doctors/login.
func (h *DoctorHandler) AuthenticateDoctor(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Svc.AuthenticateDoctor(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "authentication failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetDoctor handles GET /api/doctors/:id.
func (h *DoctorHandler) GetDoctor(c *gin.Context) {
	doc, err := h.Svc.GetDoctorByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "doctor not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, doc)
}

// UpdateDoctor handles PATCH /api/doctors/:id.
func (h *DoctorHandler) UpdateDoctor(c *gin.Context) {
	var updateDoc map[string]interface{}
	if err := c.ShouldBindJSON(&updateDoc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	doc, err := h.Svc.UpdateDoctor(c.Request.Context(), c.Param("id"), updateDoc)
	if err != nil {
		h.Logger.Error("UpdateDoctor failed", zap.String("doctorID", c.Param("id")), zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "update failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, doc)
}

// RevokeDoctorToken handles DELETE /api/doctors/revoke/:id.
func (h *DoctorHandler) RevokeDoctorToken(c *gin.Context) {
	if err := h.Svc.RevokeAuthToken(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "revocation failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "revoked"})
}

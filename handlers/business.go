package handlers

import (
	"net/http"
	"time"

	"medilink/database/repository"
	"medilink/models"
	"medilink/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BusinessHandler serves business account endpoints.
type BusinessHandler struct {
	Repo   repository.BusinessRepository
	Logger *zap.Logger
}

func NewBusinessHandler(repo repository.BusinessRepository, logger *zap.Logger) *BusinessHandler {
	return &BusinessHandler{Repo: repo, Logger: logger}
}

// CreateBusiness handles POST /api/businesses.
func (h *BusinessHandler) CreateBusiness(c *gin.Context) {
	var business models.Business
	if err := c.ShouldBindJSON(&business); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if business.Name == "" || business.Email == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "name and email are required")
		return
	}

	business.ID = uuid.New().String()
	business.CreatedAt = time.Now()
	if err := h.Repo.Create(c.Request.Context(), &business); err != nil {
		h.Logger.Error("CreateBusiness failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to create business", "")
		return
	}
	c.JSON(http.StatusCreated, business)
}

// GetBusiness handles GET /api/businesses/:id.
func (h *BusinessHandler) GetBusiness(c *gin.Context) {
	business, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "business lookup failed", err.Error())
		return
	}
	if business == nil {
		utils.JSONError(c, http.StatusNotFound, "business not found", "")
		return
	}
	c.JSON(http.StatusOK, business)
}

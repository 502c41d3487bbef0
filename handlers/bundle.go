package handlers

import (
	"medilink/database/repository"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers and the repositories middleware
// needs, assembled once in main.
type HandlerBundle struct {
	DoctorRepo repository.DoctorRepository

	// Service request endpoints.
	CreateRequest        gin.HandlerFunc
	GetRequest           gin.HandlerFunc
	AcceptRequest        gin.HandlerFunc
	RejectRequest        gin.HandlerFunc
	CompleteRequest      gin.HandlerFunc
	CancelRequest        gin.HandlerFunc
	GetAvailableRequests gin.HandlerFunc

	// Doctor endpoints.
	RegisterDoctor     gin.HandlerFunc
	AuthenticateDoctor gin.HandlerFunc
	GetDoctor          gin.HandlerFunc
	UpdateDoctor       gin.HandlerFunc
	RevokeDoctorToken  gin.HandlerFunc

	// Business endpoints.
	CreateBusiness gin.HandlerFunc
	GetBusiness    gin.HandlerFunc
}

package routes

import (
	"net/http"
	"time"

	"medilink/handlers"
	"medilink/middleware"
	"medilink/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRequestRoutes registers service-request endpoints.
func RegisterRequestRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/service-requests")
	{
		api.POST("", hb.CreateRequest)
		api.GET("/:id", hb.GetRequest)
		api.PUT("/:id/complete", hb.CompleteRequest)
		api.PUT("/:id/cancel", hb.CancelRequest)

		// Doctor-facing actions require doctor authentication.
		protected := api.Group("")
		protected.Use(middleware.JWTAuthDoctorMiddleware(hb.DoctorRepo))
		protected.PUT("/:id/accept", hb.AcceptRequest)
		protected.PUT("/:id/reject", hb.RejectRequest)
		protected.GET("/available/:doctorId", hb.GetAvailableRequests)
	}
}

// RegisterDoctorRoutes registers doctor management endpoints.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/doctors")
	{
		api.POST("/register", hb.RegisterDoctor)
		api.POST("/login", hb.AuthenticateDoctor)
		api.GET("/:id", hb.GetDoctor)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthDoctorMiddleware(hb.DoctorRepo))
		protected.PATCH("/:id", hb.UpdateDoctor)
		protected.DELETE("/revoke/:id", hb.RevokeDoctorToken)
	}
}

// RegisterBusinessRoutes registers business endpoints.
func RegisterBusinessRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/businesses")
	{
		api.POST("", hb.CreateBusiness)
		api.GET("/:id", hb.GetBusiness)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterRequestRoutes(r, hb)
	RegisterDoctorRoutes(r, hb)
	RegisterBusinessRoutes(r, hb)
	RegisterHealthRoute(r)
}

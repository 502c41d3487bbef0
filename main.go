// File: medilink/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medilink/config"
	"medilink/cron"
	"medilink/database"
	businessRepoPkg "medilink/database/repository/business"
	doctorRepoPkg "medilink/database/repository/doctor"
	requestRepoPkg "medilink/database/repository/request"
	"medilink/handlers"
	"medilink/middleware"
	"medilink/routes"
	"medilink/services/dispatch"
	"medilink/services/doctor"
	"medilink/services/notification"
	"medilink/services/request"
	"medilink/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	requestRepo := requestRepoPkg.NewMongoRequestRepo()
	doctorRepo := doctorRepoPkg.NewMongoDoctorRepo()
	businessRepo := businessRepoPkg.NewMongoBusinessRepo()

	// notification queue.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()

	notifier, err := notification.NewQueueGateway(asynqClient)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification gateway: %v", err)
	}
	cron.InitNotificationWorker(&notification.PushSender{
		Doctors:    doctorRepo,
		Businesses: businessRepo,
	})

	// services.
	dispatchService := &dispatch.DefaultDispatchService{
		RequestRepo: requestRepo,
		DoctorRepo:  doctorRepo,
		Notifier:    notifier,
		Locker:      dispatch.NewRedisGroupLocker(utils.GetCacheClient()),
		Clock:       dispatch.SystemClock,
		Staleness:   config.RequestStaleness(),
		Logger:      logger,
	}
	requestService := &request.DefaultRequestService{
		RequestRepo:  requestRepo,
		DoctorRepo:   doctorRepo,
		BusinessRepo: businessRepo,
		Notifier:     notifier,
	}
	doctorService := &doctor.DefaultDoctorService{
		Repo: doctorRepo,
	}

	requestHandler := handlers.NewRequestHandler(requestService, dispatchService, logger)
	doctorHandler := handlers.NewDoctorHandler(doctorService, logger)
	businessHandler := handlers.NewBusinessHandler(businessRepo, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		DoctorRepo: doctorRepo,

		// Service request endpoints.
		CreateRequest:        requestHandler.CreateRequest,
		GetRequest:           requestHandler.GetRequest,
		AcceptRequest:        requestHandler.AcceptRequest,
		RejectRequest:        requestHandler.RejectRequest,
		CompleteRequest:      requestHandler.CompleteRequest,
		CancelRequest:        requestHandler.CancelRequest,
		GetAvailableRequests: requestHandler.GetAvailableRequests,

		// Doctor endpoints.
		RegisterDoctor:     doctorHandler.RegisterDoctor,
		AuthenticateDoctor: doctorHandler.AuthenticateDoctor,
		GetDoctor:          doctorHandler.GetDoctor,
		UpdateDoctor:       doctorHandler.UpdateDoctor,
		RevokeDoctorToken:  doctorHandler.RevokeDoctorToken,

		// Business endpoints.
		CreateBusiness: businessHandler.CreateBusiness,
		GetBusiness:    businessHandler.GetBusiness,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient()}, database.MongoClient)

	// Start the escalation scheduler.
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()
	go cron.StartEscalationScheduler(schedulerCtx, dispatchService, utils.GetCacheClient(), config.EscalationInterval())

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stopScheduler()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

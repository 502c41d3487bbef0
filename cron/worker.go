package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"medilink/config"
	"medilink/models"
	"medilink/services/notification"

	"github.com/hibiken/asynq"
)

// InitNotificationWorker runs the async notification worker in background.
func InitNotificationWorker(sender *notification.PushSender) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeDoctorAssigned, handleDoctorAssigned(sender))
	mux.HandleFunc(notification.TypeBusinessAccepted, handleBusinessAccepted(sender))

	// Start async worker with retry logic
	go func() {
		log.Println("[NotificationWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NotificationWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NotificationWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleDoctorAssigned(sender *notification.PushSender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.DoctorAssignedPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[NotificationWorker] invalid doctor_assigned payload: %v", err)
			return err
		}

		title := "New service request"
		body := "A business needs your service. Open the app to respond."
		if p.Escalated {
			title = "Urgent: request needs a doctor"
			body = "An unanswered request was escalated to you. First to accept takes it."
		}

		err := sender.SendDoctorPush(ctx, p.DoctorID, title, body, map[string]string{
			"type":      "request_assigned",
			"requestId": p.RequestID,
			"serviceId": p.ServiceID,
			"urgency":   p.Urgency,
			"escalated": fmt.Sprintf("%t", p.Escalated),
		})
		if err != nil {
			log.Printf("[NotificationWorker] failed to notify doctor %s: %v", p.DoctorID, err)
		}
		return err
	}
}

func handleBusinessAccepted(sender *notification.PushSender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.BusinessAcceptedPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[NotificationWorker] invalid business_accepted payload: %v", err)
			return err
		}

		err := sender.SendBusinessPush(ctx, p.BusinessID, "Request accepted",
			"A doctor accepted your service request.", map[string]string{
				"type":      "request_accepted",
				"requestId": p.RequestID,
				"doctorId":  p.DoctorID,
			})
		if err != nil {
			log.Printf("[NotificationWorker] failed to notify business %s: %v", p.BusinessID, err)
		}
		return err
	}
}

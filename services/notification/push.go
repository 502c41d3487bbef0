package notification

import (
	"context"
	"fmt"

	businessRepo "medilink/database/repository/business"
	doctorRepo "medilink/database/repository/doctor"
	"medilink/utils"

	"firebase.google.com/go/v4/messaging"
)

// PushSender delivers FCM pushes to doctors and businesses. It is consumed by
// the queue worker, never called on the request path.
type PushSender struct {
	Doctors    doctorRepo.DoctorRepository
	Businesses businessRepo.BusinessRepository
}

// SendDoctorPush looks up a doctor's FCM token and sends a high-priority push.
func (s *PushSender) SendDoctorPush(ctx context.Context, doctorID, title, body string, data map[string]string) error {
	doctor, err := s.Doctors.GetByID(ctx, doctorID)
	if err != nil || doctor == nil {
		return fmt.Errorf("SendDoctorPush: could not find doctor %s: %w", doctorID, err)
	}
	token := doctor.Security.FCMToken
	if token == "" {
		return fmt.Errorf("SendDoctorPush: doctor %s has no FCM token", doctorID)
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendDoctorPush: failed to send FCM message: %w", err)
	}
	return nil
}

// SendBusinessPush looks up a business's FCM token and sends a push.
func (s *PushSender) SendBusinessPush(ctx context.Context, businessID, title, body string, data map[string]string) error {
	business, err := s.Businesses.GetByID(ctx, businessID)
	if err != nil || business == nil {
		return fmt.Errorf("SendBusinessPush: could not find business %s: %w", businessID, err)
	}
	if business.FCMToken == "" {
		return fmt.Errorf("SendBusinessPush: business %s has no FCM token", businessID)
	}

	msg := &messaging.Message{
		Token: business.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendBusinessPush: failed to send FCM message: %w", err)
	}
	return nil
}

package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"medilink/models"

	"github.com/hibiken/asynq"
)

// Task type names for the notification queue.
const (
	TypeDoctorAssigned   = "notify:doctor_assigned"
	TypeBusinessAccepted = "notify:business_accepted"
)

// Gateway informs doctors of new or escalated requests and businesses of
// acceptance. Delivery guarantees (retries, formatting) live behind the queue.
type Gateway interface {
	NotifyDoctorAssigned(ctx context.Context, payload models.DoctorAssignedPayload) error
	NotifyBusinessAccepted(ctx context.Context, payload models.BusinessAcceptedPayload) error
}

// QueueGateway enqueues notification tasks on asynq; a background worker
// performs the actual push delivery.
type QueueGateway struct {
	Client *asynq.Client
}

func NewQueueGateway(client *asynq.Client) (*QueueGateway, error) {
	if client == nil {
		return nil, fmt.Errorf("notification gateway initialization error: asynq client is nil")
	}
	return &QueueGateway{Client: client}, nil
}

func (g *QueueGateway) NotifyDoctorAssigned(ctx context.Context, payload models.DoctorAssignedPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("NotifyDoctorAssigned: failed to marshal payload: %w", err)
	}
	if _, err := g.Client.EnqueueContext(ctx, asynq.NewTask(TypeDoctorAssigned, data)); err != nil {
		return fmt.Errorf("NotifyDoctorAssigned: failed to enqueue task: %w", err)
	}
	return nil
}

func (g *QueueGateway) NotifyBusinessAccepted(ctx context.Context, payload models.BusinessAcceptedPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("NotifyBusinessAccepted: failed to marshal payload: %w", err)
	}
	if _, err := g.Client.EnqueueContext(ctx, asynq.NewTask(TypeBusinessAccepted, data)); err != nil {
		return fmt.Errorf("NotifyBusinessAccepted: failed to enqueue task: %w", err)
	}
	return nil
}

package models

import "time"

// ServiceRequest statuses.
const (
	RequestStatusPending   = "pending"
	RequestStatusAccepted  = "accepted"
	RequestStatusRejected  = "rejected"
	RequestStatusCompleted = "completed"
	RequestStatusCancelled = "cancelled"
)

// ServiceRequest represents a medical service request from a business.
// A request is either directly assigned to one doctor (DoctorID set) or an
// unassigned broadcast copy open to any doctor offering the service (DoctorID empty).
type ServiceRequest struct {
	ID                string     `bson:"id" json:"id"`
	BusinessID        string     `bson:"business_id" json:"businessId"`
	ServiceID         string     `bson:"service_id" json:"serviceId"`
	DoctorID          string     `bson:"doctor_id,omitempty" json:"doctorId,omitempty"`
	Status            string     `bson:"status" json:"status"`
	Urgency           string     `bson:"urgency,omitempty" json:"urgency,omitempty"`
	Description       string     `bson:"description,omitempty" json:"description,omitempty"`
	Amount            float64    `bson:"amount,omitempty" json:"amount,omitempty"`
	RequestedAt       time.Time  `bson:"requested_at" json:"requestedAt"`
	IsEscalated       bool       `bson:"is_escalated" json:"isEscalated"`
	OriginalRequestID string     `bson:"original_request_id,omitempty" json:"originalRequestId,omitempty"`
	DeclinedByDoctors []string   `bson:"declined_by_doctors,omitempty" json:"declinedByDoctors,omitempty"`
	AcceptedAt        *time.Time `bson:"accepted_at,omitempty" json:"acceptedAt,omitempty"`
	CompletedAt       *time.Time `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
}

// RootID returns the id of the sibling group's root request.
func (r *ServiceRequest) RootID() string {
	if r.OriginalRequestID != "" {
		return r.OriginalRequestID
	}
	return r.ID
}

// IsBroadcast reports whether the request is open to any doctor.
func (r *ServiceRequest) IsBroadcast() bool {
	return r.DoctorID == ""
}

// DeclinedBy reports whether the given doctor already declined this record.
func (r *ServiceRequest) DeclinedBy(doctorID string) bool {
	for _, id := range r.DeclinedByDoctors {
		if id == doctorID {
			return true
		}
	}
	return false
}

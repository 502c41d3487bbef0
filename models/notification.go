package models

// DoctorAssignedPayload is the queue payload for a doctor-facing push about a
// new or escalated request.
type DoctorAssignedPayload struct {
	DoctorID  string `json:"doctorId"`
	RequestID string `json:"requestId"`
	ServiceID string `json:"serviceId"`
	Urgency   string `json:"urgency,omitempty"`
	Escalated bool   `json:"escalated"`
}

// BusinessAcceptedPayload is the queue payload telling a business which doctor
// accepted its request.
type BusinessAcceptedPayload struct {
	BusinessID string `json:"businessId"`
	RequestID  string `json:"requestId"`
	DoctorID   string `json:"doctorId"`
}

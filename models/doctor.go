package models

import "time"

// DoctorSecurity holds credential material. Plaintext fields never persist.
type DoctorSecurity struct {
	Password     string `bson:"-" json:"password,omitempty"`
	PasswordHash string `bson:"password_hash" json:"-"`
	Token        string `bson:"-" json:"token,omitempty"`
	TokenHash    string `bson:"token_hash" json:"-"`
	FCMToken     string `bson:"fcm_token,omitempty" json:"-"`
}

// Doctor represents a practitioner who can take service requests.
type Doctor struct {
	ID                string         `bson:"id" json:"id"`
	Name              string         `bson:"name" json:"name"`
	Email             string         `bson:"email" json:"email"`
	PhoneNumber       string         `bson:"phone_number,omitempty" json:"phoneNumber,omitempty"`
	OfferedServiceIDs []string       `bson:"offered_service_ids" json:"offeredServiceIds"`
	IsAvailable       bool           `bson:"is_available" json:"isAvailable"`
	IsVerified        bool           `bson:"is_verified" json:"isVerified"`
	Security          DoctorSecurity `bson:"security" json:"security,omitzero"`
	CreatedAt         time.Time      `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time      `bson:"updated_at" json:"updatedAt"`
}

// OffersService reports whether the doctor provides the given service.
func (d *Doctor) OffersService(serviceID string) bool {
	for _, id := range d.OfferedServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

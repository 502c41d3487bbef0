package models

import "time"

// Business represents an organization that raises service requests.
type Business struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email"`
	PhoneNumber string    `bson:"phone_number,omitempty" json:"phoneNumber,omitempty"`
	Address     string    `bson:"address,omitempty" json:"address,omitempty"`
	FCMToken    string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}

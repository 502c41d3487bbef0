package models

// Service is a medical service offered on the platform.
type Service struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}

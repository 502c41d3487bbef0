package repository

import (
	businessRepo "medilink/database/repository/business"
	doctorRepo "medilink/database/repository/doctor"
	requestRepo "medilink/database/repository/request"
)

// Re-export the RequestRepository interface and constructor.
type RequestRepository = requestRepo.RequestRepository

type RequestFilter = requestRepo.RequestFilter

var NewMongoRequestRepo = requestRepo.NewMongoRequestRepo

// Re-export the DoctorRepository interface and constructor.
type DoctorRepository = doctorRepo.DoctorRepository

var NewMongoDoctorRepo = doctorRepo.NewMongoDoctorRepo

// Re-export the BusinessRepository interface and constructor.
type BusinessRepository = businessRepo.BusinessRepository

var NewMongoBusinessRepo = businessRepo.NewMongoBusinessRepo

package requestRepo

import (
	"context"
	"fmt"
	"time"

	"medilink/database"
	"medilink/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRequestRepo implements RequestRepository using MongoDB.
type MongoRequestRepo struct {
	coll *mongo.Collection
}

// NewMongoRequestRepo creates a new instance of RequestRepository using MongoDB.
func NewMongoRequestRepo() RequestRepository {
	coll := database.MongoClient.Database("medilink").Collection("service_requests")
	repo := &MongoRequestRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// ensureIndexes creates indexes for fields that are frequently used in queries.
func (r *MongoRequestRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "doctor_id", Value: 1}}},
		{Keys: bson.D{{Key: "service_id", Value: 1}}},
		{Keys: bson.D{{Key: "original_request_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "is_escalated", Value: 1}, {Key: "requested_at", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new service request document.
func (r *MongoRequestRepo) Create(ctx context.Context, req *models.ServiceRequest) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to create service request: %w", err)
	}
	return nil
}

// GetByID retrieves a request by its unique ID.
func (r *MongoRequestRepo) GetByID(ctx context.Context, id string) (*models.ServiceRequest, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var req models.ServiceRequest
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch service request %s: %w", id, err)
	}
	return &req, nil
}

// Find returns all requests matching the filter.
func (r *MongoRequestRepo) Find(ctx context.Context, filter RequestFilter) ([]models.ServiceRequest, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	query := buildQuery(filter)
	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find service requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.ServiceRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode service requests: %w", err)
	}
	return requests, nil
}

// buildQuery translates a RequestFilter into a Mongo query document. Clauses
// that each need their own $or are collected under $and so combining filter
// fields never overwrites an earlier clause.
func buildQuery(filter RequestFilter) bson.M {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.DoctorID != "" {
		query["doctor_id"] = filter.DoctorID
	} else if filter.AssignedOnly {
		query["doctor_id"] = bson.M{"$exists": true, "$nin": bson.A{nil, ""}}
	}
	if filter.RequestedBefore != nil {
		query["requested_at"] = bson.M{"$lt": *filter.RequestedBefore}
	}
	if filter.IsEscalated != nil {
		query["is_escalated"] = *filter.IsEscalated
	}
	if len(filter.ServiceIDIn) > 0 {
		query["service_id"] = bson.M{"$in": filter.ServiceIDIn}
	}
	if filter.NotDeclinedBy != "" {
		query["declined_by_doctors"] = bson.M{"$ne": filter.NotDeclinedBy}
	}

	var ors bson.A
	if filter.UnassignedOnly {
		ors = append(ors, bson.M{"$or": bson.A{
			bson.M{"doctor_id": bson.M{"$exists": false}},
			bson.M{"doctor_id": ""},
		}})
	}
	if filter.RootID != "" {
		ors = append(ors, bson.M{"$or": bson.A{
			bson.M{"id": filter.RootID},
			bson.M{"original_request_id": filter.RootID},
		}})
	}
	switch len(ors) {
	case 0:
	case 1:
		query["$or"] = ors[0].(bson.M)["$or"]
	default:
		query["$and"] = ors
	}
	return query
}

// UpdateStatusIf applies the patch only when the request still has expectedStatus.
// The status precondition lives in the update filter, so the check-and-set is a
// single Mongo operation and two concurrent acceptors cannot both match.
func (r *MongoRequestRepo) UpdateStatusIf(ctx context.Context, id, expectedStatus string, patch StatusPatch) (bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"status": patch.Status}
	if patch.DoctorID != nil {
		set["doctor_id"] = *patch.DoctorID
	}
	if patch.AcceptedAt != nil {
		set["accepted_at"] = *patch.AcceptedAt
	}
	if patch.CompletedAt != nil {
		set["completed_at"] = *patch.CompletedAt
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "status": expectedStatus},
		bson.M{"$set": set},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update status of request %s: %w", id, err)
	}
	return res.MatchedCount > 0, nil
}

// MarkEscalated flips the escalation flag exactly once per request.
func (r *MongoRequestRepo) MarkEscalated(ctx context.Context, id string) (bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "is_escalated": false},
		bson.M{"$set": bson.M{"is_escalated": true}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark request %s escalated: %w", id, err)
	}
	return res.MatchedCount > 0, nil
}

// AddDecline appends the doctor to the request's decline set.
func (r *MongoRequestRepo) AddDecline(ctx context.Context, id, doctorID string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$addToSet": bson.M{"declined_by_doctors": doctorID}},
	)
	if err != nil {
		return fmt.Errorf("failed to record decline on request %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("request %s not found", id)
	}
	return nil
}

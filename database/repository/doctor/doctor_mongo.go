package doctorRepo

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

// MongoDoctorRepo implements DoctorRepository using MongoDB.
type MongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo creates a new instance of DoctorRepository using MongoDB.
func NewMongoDoctorRepo() DoctorRepository {
	coll := database.MongoClient.Database("medilink").Collection("doctors")
	repo := &MongoDoctorRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (r *MongoDoctorRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "offered_service_ids", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a doctor by its unique ID.
func (r *MongoDoctorRepo) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var doctor models.Doctor
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doctor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch doctor %s: %w", id, err)
	}
	return &doctor, nil
}

// GetByEmail retrieves a doctor by email address.
func (r *MongoDoctorRepo) GetByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var doctor models.Doctor
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doctor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch doctor by email %s: %w", email, err)
	}
	return &doctor, nil
}

// FindOfferingService returns available, verified doctors who offer the service.
func (r *MongoDoctorRepo) FindOfferingService(ctx context.Context, serviceID, excludeDoctorID string) ([]models.Doctor, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	query := bson.M{
		"offered_service_ids": serviceID,
		"is_available":        true,
		"is_verified":         true,
	}
	if excludeDoctorID != "" {
		query["id"] = bson.M{"$ne": excludeDoctorID}
	}

	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find doctors offering service %s: %w", serviceID, err)
	}
	defer cursor.Close(ctx)

	var doctors []models.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("failed to decode doctors: %w", err)
	}
	return doctors, nil
}

// Create inserts a new doctor record.
func (r *MongoDoctorRepo) Create(ctx context.Context, doctor *models.Doctor) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, doctor); err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

// UpdateWithDocument patches a doctor document with the specified update document.
func (r *MongoDoctorRepo) UpdateWithDocument(ctx context.Context, id string, updateDoc map[string]interface{}) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{}
	for k, v := range updateDoc {
		set[k] = v
	}
	set["updated_at"] = time.Now()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update doctor %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("doctor %s not found", id)
	}
	return nil
}

// GetByTokenHash retrieves the doctor whose token hash matches the provided hash.
func (r *MongoDoctorRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.Doctor, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetProjection(bson.M{"id": 1, "security.token_hash": 1})
	var result struct {
		ID string `bson:"id"`
	}
	if err := r.coll.FindOne(ctx, bson.M{"security.token_hash": tokenHash}, opts).Decode(&result); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve doctor by token hash: %w", err)
	}
	return r.GetByID(ctx, result.ID)
}

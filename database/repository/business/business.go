package businessRepo

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

// BusinessRepository defines methods for business data access.
type BusinessRepository interface {
	GetByID(ctx context.Context, id string) (*models.Business, error)
	Create(ctx context.Context, business *models.Business) error
}

// MongoBusinessRepo implements BusinessRepository using MongoDB.
type MongoBusinessRepo struct {
	coll *mongo.Collection
}

// NewMongoBusinessRepo creates a new instance of BusinessRepository using MongoDB.
func NewMongoBusinessRepo() BusinessRepository {
	coll := database.MongoClient.Database("medilink").Collection("businesses")
	repo := &MongoBusinessRepo{coll: coll}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// GetByID retrieves a business by its unique ID; returns (nil, nil) when absent.
func (r *MongoBusinessRepo) GetByID(ctx context.Context, id string) (*models.Business, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var business models.Business
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&business); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch business %s: %w", id, err)
	}
	return &business, nil
}

// Create inserts a new business record.
func (r *MongoBusinessRepo) Create(ctx context.Context, business *models.Business) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, business); err != nil {
		return fmt.Errorf("failed to create business: %w", err)
	}
	return nil
}

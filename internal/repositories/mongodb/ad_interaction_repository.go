package mongodb

import (
	"context"
	"time"

	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var _ repositories.AdInteractionRepository = (*AdInteractionRepository)(nil)

// AdInteractionRepository appends interaction events. Records are never updated.
type AdInteractionRepository struct {
	collection *mongo.Collection
}

// NewAdInteractionRepository creates a new AdInteractionRepository
func NewAdInteractionRepository(db *mongo.Database) *AdInteractionRepository {
	return &AdInteractionRepository{
		collection: db.Collection("ad_interactions"),
	}
}

// Create inserts one interaction
func (r *AdInteractionRepository) Create(ctx context.Context, in *models.AdInteraction) error {
	in.ID = primitive.NewObjectID()
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, in)
	return err
}

package mongodb

import (
	"context"
	"time"

	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ repositories.PrayerGroupRepository = (*PrayerGroupRepository)(nil)

// PrayerGroupRepository handles MongoDB operations for PrayerGroup
type PrayerGroupRepository struct {
	collection *mongo.Collection
}

// NewPrayerGroupRepository creates a new PrayerGroupRepository
func NewPrayerGroupRepository(db *mongo.Database) *PrayerGroupRepository {
	return &PrayerGroupRepository{
		collection: db.Collection("prayer_groups"),
	}
}

// Create inserts a prayer group
func (r *PrayerGroupRepository) Create(ctx context.Context, g *models.PrayerGroup) error {
	g.ID = primitive.NewObjectID()
	g.CreatedAt = time.Now()
	g.UpdatedAt = g.CreatedAt
	_, err := r.collection.InsertOne(ctx, g)
	return err
}

// FindByID finds a prayer group by ID
func (r *PrayerGroupRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.PrayerGroup, error) {
	var g models.PrayerGroup
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return nil, err
	}
	return &g, nil
}

// FindVisible lists public groups and private groups the viewer belongs to
func (r *PrayerGroupRepository) FindVisible(ctx context.Context, viewerID primitive.ObjectID) ([]models.PrayerGroup, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"isPrivate": false},
		bson.M{"members": viewerID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	groups := []models.PrayerGroup{}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// AddMember adds userID to the group
func (r *PrayerGroupRepository) AddMember(ctx context.Context, id, userID primitive.ObjectID) error {
	return updateOne(ctx, r.collection, bson.M{"_id": id}, bson.M{
		"$addToSet": bson.M{"members": userID},
		"$set":      bson.M{"updatedAt": time.Now()},
	})
}

// RemoveMember removes userID from the group
func (r *PrayerGroupRepository) RemoveMember(ctx context.Context, id, userID primitive.ObjectID) error {
	return updateOne(ctx, r.collection, bson.M{"_id": id}, bson.M{
		"$pull": bson.M{"members": userID},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
}

package mongodb

import (
	"context"
	"time"

	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var _ repositories.AdvertiserRepository = (*AdvertiserRepository)(nil)

// AdvertiserRepository handles MongoDB operations for Advertiser
type AdvertiserRepository struct {
	collection *mongo.Collection
}

// NewAdvertiserRepository creates a new AdvertiserRepository
func NewAdvertiserRepository(db *mongo.Database) *AdvertiserRepository {
	return &AdvertiserRepository{
		collection: db.Collection("advertisers"),
	}
}

// Create inserts a new advertiser account
func (r *AdvertiserRepository) Create(ctx context.Context, a *models.Advertiser) error {
	a.ID = primitive.NewObjectID()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	_, err := r.collection.InsertOne(ctx, a)
	return err
}

// FindByID finds an advertiser by ID
func (r *AdvertiserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Advertiser, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByUserID finds the advertiser account owned by a member
func (r *AdvertiserRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Advertiser, error) {
	return r.findOne(ctx, bson.M{"userId": userID})
}

// FindByEmail finds an advertiser by account email
func (r *AdvertiserRepository) FindByEmail(ctx context.Context, email string) (*models.Advertiser, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// UpdateStatus applies an admin decision
func (r *AdvertiserRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.AccountStatus, reason string, at time.Time) error {
	set := bson.M{"accountStatus": status, "statusReason": reason, "updatedAt": at}
	if status == models.AccountApproved {
		set["approvedAt"] = at
	}
	return updateOne(ctx, r.collection, bson.M{"_id": id}, bson.M{"$set": set})
}

// Count counts advertisers, all of them when status is empty
func (r *AdvertiserRepository) Count(ctx context.Context, status models.AccountStatus) (int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["accountStatus"] = status
	}
	return r.collection.CountDocuments(ctx, filter)
}

func (r *AdvertiserRepository) findOne(ctx context.Context, filter bson.M) (*models.Advertiser, error) {
	var a models.Advertiser
	if err := r.collection.FindOne(ctx, filter).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

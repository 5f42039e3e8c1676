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

var _ repositories.AdvertisementRepository = (*AdvertisementRepository)(nil)

// AdvertisementRepository handles MongoDB operations for Advertisement
type AdvertisementRepository struct {
	collection *mongo.Collection
}

// NewAdvertisementRepository creates a new AdvertisementRepository
func NewAdvertisementRepository(db *mongo.Database) *AdvertisementRepository {
	return &AdvertisementRepository{
		collection: db.Collection("advertisements"),
	}
}

// Create inserts a new advertisement
func (r *AdvertisementRepository) Create(ctx context.Context, ad *models.Advertisement) error {
	ad.ID = primitive.NewObjectID()
	ad.CreatedAt = time.Now()
	ad.UpdatedAt = ad.CreatedAt
	_, err := r.collection.InsertOne(ctx, ad)
	return err
}

// FindByID finds an advertisement by ID
func (r *AdvertisementRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Advertisement, error) {
	var ad models.Advertisement
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ad); err != nil {
		return nil, err
	}
	return &ad, nil
}

// FindByAdvertiser lists an advertiser's ads, newest first
func (r *AdvertisementRepository) FindByAdvertiser(ctx context.Context, advertiserID primitive.ObjectID) ([]models.Advertisement, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{"advertiserId": advertiserID}, opts)
}

// FindApproved lists approved, active ads. Schedule windows are checked by the caller.
func (r *AdvertisementRepository) FindApproved(ctx context.Context) ([]models.Advertisement, error) {
	filter := bson.M{"status": models.AdApproved, "isActive": true}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}}))
}

// Update saves the content, targeting and review state of an advertisement.
// Metrics are only changed through IncrementMetrics and SetCTR.
func (r *AdvertisementRepository) Update(ctx context.Context, ad *models.Advertisement) error {
	ad.UpdatedAt = time.Now()
	update := newFieldUpdate().
		Set("title", ad.Title).
		SetOrUnset("description", ad.Description, ad.Description == "").
		SetOrUnset("imageUrl", ad.ImageURL, ad.ImageURL == "").
		Set("targetUrl", ad.TargetURL).
		SetOrUnset("callToAction", ad.CallToAction, ad.CallToAction == "").
		Set("adType", ad.AdType).
		Set("status", ad.Status).
		Set("isActive", ad.IsActive).
		Set("targeting", ad.Targeting).
		Set("budget", ad.Budget).
		SetOrUnset("reviewNotes", ad.ReviewNotes, ad.ReviewNotes == "").
		SetOrUnset("reviewedAt", ad.ReviewedAt, ad.ReviewedAt == nil).
		Set("updatedAt", ad.UpdatedAt)
	return updateOne(ctx, r.collection, bson.M{"_id": ad.ID}, update.Doc())
}

// Delete removes an advertisement
func (r *AdvertisementRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// IncrementMetrics bumps the counters with $inc and returns the document after the update
func (r *AdvertisementRepository) IncrementMetrics(ctx context.Context, id primitive.ObjectID, d repositories.MetricsDelta) (*models.Advertisement, error) {
	inc := bson.M{}
	if d.Impressions != 0 {
		inc["metrics.impressions"] = d.Impressions
	}
	if d.Clicks != 0 {
		inc["metrics.clicks"] = d.Clicks
	}
	if d.Conversions != 0 {
		inc["metrics.conversions"] = d.Conversions
	}
	if d.Shares != 0 {
		inc["metrics.shares"] = d.Shares
	}
	if d.Spent != 0 {
		inc["metrics.totalSpent"] = d.Spent
	}
	update := bson.M{"$set": bson.M{"updatedAt": time.Now()}}
	if len(inc) > 0 {
		update["$inc"] = inc
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var ad models.Advertisement
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&ad); err != nil {
		return nil, err
	}
	return &ad, nil
}

// SetCTR stores a recomputed click-through rate
func (r *AdvertisementRepository) SetCTR(ctx context.Context, id primitive.ObjectID, ctr float64, at time.Time) error {
	return updateOne(ctx, r.collection, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"metrics.ctr":         ctr,
		"metrics.lastUpdated": at,
	}})
}

// Count counts ads, all of them when status is empty
func (r *AdvertisementRepository) Count(ctx context.Context, status models.AdStatus) (int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.collection.CountDocuments(ctx, filter)
}

func (r *AdvertisementRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Advertisement, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	ads := []models.Advertisement{}
	if err := cursor.All(ctx, &ads); err != nil {
		return nil, err
	}
	return ads, nil
}

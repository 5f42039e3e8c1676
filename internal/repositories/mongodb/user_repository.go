package mongodb

import (
	"context"
	"regexp"
	"time"

	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure UserRepository implements the interface
var _ repositories.UserRepository = (*UserRepository)(nil)

// UserRepository handles MongoDB operations for User
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.ID = primitive.NewObjectID()
	if user.JoinDate.IsZero() {
		user.JoinDate = now
	}
	user.CreatedAt = now
	user.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// FindByID finds a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDs returns the users matching ids in no particular order
func (r *UserRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.User, error) {
	if len(ids) == 0 {
		return []*models.User{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, nil)
}

// Update saves the editable profile fields of a user. Emptied fields are
// removed. Activity, connections and prayer requests have their own methods.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	update := newFieldUpdate().
		Set("firstName", user.FirstName).
		Set("lastName", user.LastName).
		SetOrUnset("profilePicture", user.ProfilePicture, user.ProfilePicture == "").
		SetOrUnset("bio", user.Bio, user.Bio == "").
		SetOrUnset("denomination", user.Denomination, user.Denomination == "").
		SetOrUnset("location", user.Location, user.Location == nil).
		SetOrUnset("interests", user.Interests, len(user.Interests) == 0).
		SetOrUnset("relationshipStatus", user.RelationshipStatus, user.RelationshipStatus == "").
		SetOrUnset("privacy", user.Privacy, user.Privacy == nil).
		Set("updatedAt", user.UpdatedAt)
	return r.updateOne(ctx, bson.M{"_id": user.ID}, update.Doc())
}

// FindActive lists active users newest first, skipping exclude
func (r *UserRepository) FindActive(ctx context.Context, exclude []primitive.ObjectID, limit int) ([]*models.User, error) {
	filter := bson.M{"isActive": true}
	if len(exclude) > 0 {
		filter["_id"] = bson.M{"$nin": exclude}
	}
	opts := options.Find().SetSort(bson.D{{Key: "joinDate", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return r.find(ctx, filter, opts)
}

// SetActive flips the soft-delete flag
func (r *UserRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	return r.updateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"isActive": active, "updatedAt": time.Now()}})
}

// UpdateLastLogin records a successful login
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	return r.updateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"lastLogin": at}})
}

// AddConnection links a and b in both directions
func (r *UserRepository) AddConnection(ctx context.Context, a, b primitive.ObjectID) error {
	now := time.Now()
	if err := r.updateOne(ctx, bson.M{"_id": a}, bson.M{
		"$addToSet": bson.M{"connections": b},
		"$set":      bson.M{"updatedAt": now},
	}); err != nil {
		return err
	}
	return r.updateOne(ctx, bson.M{"_id": b}, bson.M{
		"$addToSet": bson.M{"connections": a},
		"$set":      bson.M{"updatedAt": now},
	})
}

// AddPrayerRequest pushes a prayer request onto the user's document
func (r *UserRepository) AddPrayerRequest(ctx context.Context, userID primitive.ObjectID, req models.PrayerRequest) error {
	return r.updateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$push": bson.M{"prayerRequests": req},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
}

// MarkPrayerAnswered sets isAnswered on one embedded prayer request
func (r *UserRepository) MarkPrayerAnswered(ctx context.Context, userID, requestID primitive.ObjectID, at time.Time) error {
	filter := bson.M{"_id": userID, "prayerRequests._id": requestID}
	return r.updateOne(ctx, filter, bson.M{"$set": bson.M{
		"prayerRequests.$.isAnswered": true,
		"prayerRequests.$.answeredAt": at,
		"updatedAt":                   at,
	}})
}

// List pages through users for the back office, newest first
func (r *UserRepository) List(ctx context.Context, f repositories.UserListFilter) ([]*models.User, int64, error) {
	filter := bson.M{}
	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"firstName": pattern},
			bson.M{"lastName": pattern},
			bson.M{"email": pattern},
		}
	}
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "joinDate", Value: -1}}).
		SetSkip(pageSkip(f.Page, f.Limit)).
		SetLimit(int64(f.Limit))
	users, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Count counts users, optionally only active ones or those joined since a time
func (r *UserRepository) Count(ctx context.Context, activeOnly bool, joinedSince *time.Time) (int64, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}
	if joinedSince != nil {
		filter["joinDate"] = bson.M{"$gte": *joinedSince}
	}
	return r.collection.CountDocuments(ctx, filter)
}

func (r *UserRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.User, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []*models.User{}
	}
	return users, nil
}

func (r *UserRepository) updateOne(ctx context.Context, filter, update bson.M) error {
	return updateOne(ctx, r.collection, filter, update)
}

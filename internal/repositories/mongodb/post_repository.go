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

var _ repositories.PostRepository = (*PostRepository)(nil)

// PostRepository handles MongoDB operations for Post
type PostRepository struct {
	collection *mongo.Collection
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{
		collection: db.Collection("posts"),
	}
}

// Create inserts a post
func (r *PostRepository) Create(ctx context.Context, p *models.Post) error {
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	if p.Likes == nil {
		p.Likes = []models.Like{}
	}
	if p.Comments == nil {
		p.Comments = []models.Comment{}
	}
	_, err := r.collection.InsertOne(ctx, p)
	return err
}

// FindByID finds a post by ID
func (r *PostRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// FindVisible returns the viewer's own posts, public posts and
// connections-only posts written by the viewer's connections.
func (r *PostRepository) FindVisible(ctx context.Context, viewerID primitive.ObjectID, connections []primitive.ObjectID, page, limit int) ([]models.Post, error) {
	or := bson.A{
		bson.M{"authorId": viewerID},
		bson.M{"visibility": models.VisibilityPublic},
	}
	if len(connections) > 0 {
		or = append(or, bson.M{
			"visibility": models.VisibilityConnections,
			"authorId":   bson.M{"$in": connections},
		})
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(pageSkip(page, limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"$or": or}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// AddLike appends a like unless the user already liked the post
func (r *PostRepository) AddLike(ctx context.Context, id primitive.ObjectID, like models.Like) error {
	filter := bson.M{"_id": id, "likes.userId": bson.M{"$ne": like.UserID}}
	_, err := r.collection.UpdateOne(ctx, filter, bson.M{"$push": bson.M{"likes": like}})
	return err
}

// RemoveLike pulls the user's like
func (r *PostRepository) RemoveLike(ctx context.Context, id, userID primitive.ObjectID) error {
	return updateOne(ctx, r.collection, bson.M{"_id": id}, bson.M{
		"$pull": bson.M{"likes": bson.M{"userId": userID}},
	})
}

// AddComment appends a comment
func (r *PostRepository) AddComment(ctx context.Context, id primitive.ObjectID, c models.Comment) error {
	return updateOne(ctx, r.collection, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"comments": c},
		"$set":  bson.M{"updatedAt": c.CreatedAt},
	})
}

// Delete removes a post
func (r *PostRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Count counts all posts
func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

package services

import (
	"context"
	"strings"
	"time"

	"github.com/spiritualpurity/spiritual-purity-backend/internal/apperrors"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/logger"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostService handles posts, likes and comments
type PostService struct {
	posts repositories.PostRepository
	users repositories.UserRepository
	now   func() time.Time
}

// NewPostService creates a new PostService
func NewPostService(posts repositories.PostRepository, users repositories.UserRepository) *PostService {
	return &PostService{posts: posts, users: users, now: time.Now}
}

// CreatePost publishes a post authored by the viewer
func (s *PostService) CreatePost(ctx context.Context, viewerID primitive.ObjectID, req *models.CreatePostRequest) (*models.Post, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.Validation("Validation failed", map[string]string{"content": "is required"})
	}
	visibility := req.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}
	if !visibility.Valid() {
		return nil, apperrors.Validation("Validation failed", map[string]string{"visibility": "must be one of: public connections private"})
	}

	post := &models.Post{
		AuthorID:   viewerID,
		Content:    content,
		Media:      req.Media,
		Visibility: visibility,
		Tags:       CleanInterests(req.Tags),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, apperrors.Internal(err)
	}
	return post, nil
}

// ListFeed returns the posts the viewer can read, newest first
func (s *PostService) ListFeed(ctx context.Context, viewerID primitive.ObjectID, page, limit int) ([]models.PostView, error) {
	viewer, err := s.users.FindByID(ctx, viewerID)
	if err != nil {
		return nil, apperrors.Wrap(err, "User not found")
	}

	page, limit = normalizePage(page, limit)
	posts, err := s.posts.FindVisible(ctx, viewer.ID, viewer.Connections, page, limit)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	views := make([]models.PostView, 0, len(posts))
	for i := range posts {
		views = append(views, viewOf(&posts[i], viewer.ID))
	}
	return views, nil
}

// ToggleLike likes the post, or removes the viewer's like if present
func (s *PostService) ToggleLike(ctx context.Context, viewerID, postID primitive.ObjectID) (*models.LikeResult, error) {
	post, err := s.readablePost(ctx, viewerID, postID)
	if err != nil {
		return nil, err
	}

	if post.LikedBy(viewerID) {
		if err := s.posts.RemoveLike(ctx, post.ID, viewerID); err != nil {
			return nil, apperrors.Wrap(err, "Post not found")
		}
		return &models.LikeResult{Liked: false, LikeCount: len(post.Likes) - 1}, nil
	}

	if err := s.posts.AddLike(ctx, post.ID, models.Like{UserID: viewerID, CreatedAt: s.now()}); err != nil {
		return nil, apperrors.Internal(err)
	}
	return &models.LikeResult{Liked: true, LikeCount: len(post.Likes) + 1}, nil
}

// AddComment appends a comment from the viewer
func (s *PostService) AddComment(ctx context.Context, viewerID, postID primitive.ObjectID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.Validation("Validation failed", map[string]string{"content": "is required"})
	}
	post, err := s.readablePost(ctx, viewerID, postID)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		UserID:    viewerID,
		Content:   content,
		CreatedAt: s.now(),
	}
	if err := s.posts.AddComment(ctx, post.ID, comment); err != nil {
		return nil, apperrors.Wrap(err, "Post not found")
	}
	return &comment, nil
}

// DeletePost removes a post. Only the author or an admin may delete it.
func (s *PostService) DeletePost(ctx context.Context, viewer Viewer, postID primitive.ObjectID) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return apperrors.Wrap(err, "Post not found")
	}
	if post.AuthorID != viewer.ID && !viewer.IsAdmin() {
		return apperrors.Forbidden("You can only delete your own posts")
	}
	if err := s.posts.Delete(ctx, post.ID); err != nil {
		return apperrors.Wrap(err, "Post not found")
	}
	if viewer.IsAdmin() && post.AuthorID != viewer.ID {
		logger.Info("post removed by admin", "post", post.ID.Hex(), "admin", viewer.ID.Hex())
	}
	return nil
}

// readablePost loads a post and hides it as not found when the viewer may not read it
func (s *PostService) readablePost(ctx context.Context, viewerID, postID primitive.ObjectID) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, apperrors.Wrap(err, "Post not found")
	}
	switch post.Visibility {
	case models.VisibilityPublic:
		return post, nil
	case models.VisibilityConnections:
		if post.AuthorID == viewerID {
			return post, nil
		}
		viewer, err := s.users.FindByID(ctx, viewerID)
		if err != nil {
			return nil, apperrors.Wrap(err, "User not found")
		}
		if viewer.IsConnectedTo(post.AuthorID) {
			return post, nil
		}
	default:
		if post.AuthorID == viewerID {
			return post, nil
		}
	}
	return nil, apperrors.NotFound("Post not found")
}

func viewOf(p *models.Post, viewerID primitive.ObjectID) models.PostView {
	return models.PostView{
		Post:         p,
		LikeCount:    len(p.Likes),
		CommentCount: len(p.Comments),
		LikedByMe:    p.LikedBy(viewerID),
	}
}

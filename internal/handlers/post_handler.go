package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/services"
)

// PostHandler handles posts, likes and comments
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// ListFeed handles GET /api/posts
func (h *PostHandler) ListFeed(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	page, limit := pageParams(c)
	posts, err := h.postService.ListFeed(c.Request.Context(), v.ID, page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, posts)
}

// CreatePost handles POST /api/posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	var req models.CreatePostRequest
	if !bindJSON(c, &req) {
		return
	}
	post, err := h.postService.CreatePost(c.Request.Context(), v.ID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, "Post created", post)
}

// ToggleLike handles POST /api/posts/:id/like
func (h *PostHandler) ToggleLike(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	res, err := h.postService.ToggleLike(c.Request.Context(), v.ID, id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, res)
}

// AddComment handles POST /api/posts/:id/comments
func (h *PostHandler) AddComment(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req models.CommentRequest
	if !bindJSON(c, &req) {
		return
	}
	comment, err := h.postService.AddComment(c.Request.Context(), v.ID, id, req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, "Comment added", comment)
}

// DeletePost handles DELETE /api/posts/:id and DELETE /api/admin/posts/:id
func (h *PostHandler) DeletePost(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.postService.DeletePost(c.Request.Context(), v, id); err != nil {
		fail(c, err)
		return
	}
	message(c, "Post deleted")
}

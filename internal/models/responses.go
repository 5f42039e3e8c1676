package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Response is the success envelope returned by every endpoint
type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// ErrorResponse is the failure envelope
type ErrorResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// AuthResult is returned by register and login
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// MemberList is a plain list of public profiles
type MemberList struct {
	Members []PublicProfile `json:"members"`
	Count   int             `json:"count"`
}

// FeaturedFeed is the personalized featured members page
type FeaturedFeed struct {
	Members           []FeaturedMember `json:"members"`
	Count             int              `json:"count"`
	PersonalizedCount int              `json:"personalizedCount"`
}

// ConversationSummary is a conversation as seen by one participant
type ConversationSummary struct {
	ID          primitive.ObjectID `json:"id"`
	Other       PublicProfile      `json:"participant"`
	LastMessage *LastMessage       `json:"lastMessage,omitempty"`
	Unread      int                `json:"unreadCount"`
}

// ConversationThread is a conversation with its messages
type ConversationThread struct {
	Conversation *Conversation `json:"conversation"`
	Messages     []Message     `json:"messages"`
}

// PostView is a post annotated for the viewer
type PostView struct {
	*Post
	LikeCount    int  `json:"likeCount"`
	CommentCount int  `json:"commentCount"`
	LikedByMe    bool `json:"likedByMe"`
}

// LikeResult reports the like state after a toggle
type LikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"likeCount"`
}

// AdvertiserDashboard aggregates an advertiser's campaigns
type AdvertiserDashboard struct {
	Advertiser     *Advertiser     `json:"advertiser"`
	Advertisements []Advertisement `json:"advertisements"`
	Totals         AdMetrics       `json:"totals"`
}

// AdminStats is the back office overview
type AdminStats struct {
	TotalUsers          int64 `json:"totalUsers"`
	ActiveUsers         int64 `json:"activeUsers"`
	NewUsersLast30Days  int64 `json:"newUsersLast30Days"`
	TotalPosts          int64 `json:"totalPosts"`
	TotalAdvertisers    int64 `json:"totalAdvertisers"`
	PendingAdvertisers  int64 `json:"pendingAdvertisers"`
	TotalAdvertisements int64 `json:"totalAdvertisements"`
	PendingReviews      int64 `json:"pendingReviews"`
	ActiveAds           int64 `json:"activeAds"`
}

// Page is a paginated result
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

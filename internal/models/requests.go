package models

// RegisterRequest creates a new member account
type RegisterRequest struct {
	FirstName          string             `json:"firstName" binding:"required,max=50"`
	LastName           string             `json:"lastName" binding:"required,max=50"`
	Email              string             `json:"email" binding:"required,email"`
	Password           string             `json:"password" binding:"required,min=8,max=128"`
	Denomination       string             `json:"denomination" binding:"max=100"`
	Location           *Location          `json:"location"`
	Interests          []string           `json:"interests" binding:"max=20,dive,max=50"`
	RelationshipStatus RelationshipStatus `json:"relationshipStatus"`
}

// LoginRequest exchanges credentials for a token
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries a partial profile update. Nil fields are untouched.
type UpdateProfileRequest struct {
	FirstName          *string             `json:"firstName" binding:"omitempty,min=1,max=50"`
	LastName           *string             `json:"lastName" binding:"omitempty,min=1,max=50"`
	Bio                *string             `json:"bio" binding:"omitempty,max=500"`
	Denomination       *string             `json:"denomination" binding:"omitempty,max=100"`
	ProfilePicture     *string             `json:"profilePicture" binding:"omitempty,url"`
	Location           *Location           `json:"location"`
	RelationshipStatus *RelationshipStatus `json:"relationshipStatus"`
}

// UpdateInterestsRequest replaces the member's interest list
type UpdateInterestsRequest struct {
	Interests []string `json:"interests" binding:"max=20,dive,min=1,max=50"`
}

// UpdatePrivacyRequest toggles individual privacy flags
type UpdatePrivacyRequest struct {
	ShowLocation           *bool `json:"showLocation"`
	ShowRelationshipStatus *bool `json:"showRelationshipStatus"`
	ShowInterests          *bool `json:"showInterests"`
	AllowMessages          *bool `json:"allowMessages"`
}

// PrayerRequestInput adds a prayer request to the caller's profile
type PrayerRequestInput struct {
	Request   string `json:"request" binding:"required,max=1000"`
	IsPrivate bool   `json:"isPrivate"`
}

// CreateConversationRequest opens (or returns) a conversation with another member
type CreateConversationRequest struct {
	ParticipantID string `json:"participantId" binding:"required,len=24,hexadecimal"`
}

// SendMessageRequest posts a message into a conversation
type SendMessageRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// CreatePostRequest publishes a post
type CreatePostRequest struct {
	Content    string         `json:"content" binding:"required,max=5000"`
	Media      []MediaItem    `json:"media" binding:"max=10"`
	Visibility PostVisibility `json:"visibility"`
	Tags       []string       `json:"tags" binding:"max=10,dive,max=30"`
}

// CommentRequest adds a comment to a post
type CommentRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}

// CreatePrayerGroupRequest creates a prayer group
type CreatePrayerGroupRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=1000"`
	IsPrivate   bool   `json:"isPrivate"`
}

// AdvertiserRegisterRequest upgrades a member to an advertiser account
type AdvertiserRegisterRequest struct {
	BusinessName string    `json:"businessName" binding:"required,max=120"`
	BusinessType string    `json:"businessType" binding:"max=60"`
	Website      string    `json:"website" binding:"omitempty,url"`
	Phone        string    `json:"phone" binding:"max=30"`
	Description  string    `json:"description" binding:"max=1000"`
	Address      *Location `json:"address"`
	Plan         string    `json:"plan" binding:"omitempty,oneof=basic standard premium"`
}

// AdvertisementInput creates or updates an advertisement
type AdvertisementInput struct {
	Title        string    `json:"title" binding:"required,max=100"`
	Description  string    `json:"description" binding:"max=500"`
	ImageURL     string    `json:"imageUrl" binding:"omitempty,url"`
	TargetURL    string    `json:"targetUrl" binding:"required,url"`
	CallToAction string    `json:"callToAction" binding:"max=30"`
	AdType       AdType    `json:"adType" binding:"omitempty,oneof=banner sidebar feed sponsored_post"`
	Targeting    Targeting `json:"targeting"`
	Budget       Budget    `json:"budget"`
}

// InteractionRequest records an ad event
type InteractionRequest struct {
	Type     InteractionType `json:"type" binding:"required,oneof=impression click conversion share"`
	Device   DeviceInfo      `json:"device"`
	Location *Location       `json:"location"`
	Referrer string          `json:"referrer"`
}

// AdvertiserStatusRequest is an admin decision on an advertiser account
type AdvertiserStatusRequest struct {
	Status AccountStatus `json:"status" binding:"required,oneof=pending approved suspended cancelled"`
	Reason string        `json:"reason" binding:"max=500"`
}

// AdReviewRequest is an admin decision on a submitted ad
type AdReviewRequest struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes" binding:"max=500"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RelationshipStatus is the self-declared relationship status of a member
type RelationshipStatus string

const (
	RelationshipSingle         RelationshipStatus = "single"
	RelationshipDating         RelationshipStatus = "dating"
	RelationshipEngaged        RelationshipStatus = "engaged"
	RelationshipMarried        RelationshipStatus = "married"
	RelationshipWidowed        RelationshipStatus = "widowed"
	RelationshipDivorced       RelationshipStatus = "divorced"
	RelationshipPreferNotToSay RelationshipStatus = "prefer_not_to_say"
)

// Valid reports whether s is a known status. The empty status is valid (unset).
func (s RelationshipStatus) Valid() bool {
	switch s {
	case "", RelationshipSingle, RelationshipDating, RelationshipEngaged, RelationshipMarried,
		RelationshipWidowed, RelationshipDivorced, RelationshipPreferNotToSay:
		return true
	}
	return false
}

// Role is the authorization role carried in tokens
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Location holds a member's city/state/country
type Location struct {
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	Country string `bson:"country,omitempty" json:"country,omitempty"`
}

// PrivacySettings gates which profile fields other members can see
type PrivacySettings struct {
	ShowLocation           bool `bson:"showLocation" json:"showLocation"`
	ShowRelationshipStatus bool `bson:"showRelationshipStatus" json:"showRelationshipStatus"`
	ShowInterests          bool `bson:"showInterests" json:"showInterests"`
	AllowMessages          bool `bson:"allowMessages" json:"allowMessages"`
}

// DefaultPrivacy is applied at registration
func DefaultPrivacy() *PrivacySettings {
	return &PrivacySettings{
		ShowLocation:           true,
		ShowRelationshipStatus: false,
		ShowInterests:          true,
		AllowMessages:          true,
	}
}

// PrayerRequest is embedded in the owning user's document
type PrayerRequest struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	Request    string             `bson:"request" json:"request"`
	IsPrivate  bool               `bson:"isPrivate" json:"isPrivate"`
	IsAnswered bool               `bson:"isAnswered" json:"isAnswered"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	AnsweredAt *time.Time         `bson:"answeredAt,omitempty" json:"answeredAt,omitempty"`
}

// User represents a community member
type User struct {
	ID                 primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	FirstName          string               `bson:"firstName" json:"firstName"`
	LastName           string               `bson:"lastName" json:"lastName"`
	Email              string               `bson:"email" json:"email"`
	PasswordHash       string               `bson:"passwordHash" json:"-"`
	ProfilePicture     string               `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	Bio                string               `bson:"bio,omitempty" json:"bio,omitempty"`
	Denomination       string               `bson:"denomination,omitempty" json:"denomination,omitempty"`
	Location           *Location            `bson:"location,omitempty" json:"location,omitempty"`
	Interests          []string             `bson:"interests,omitempty" json:"interests,omitempty"`
	RelationshipStatus RelationshipStatus   `bson:"relationshipStatus,omitempty" json:"relationshipStatus,omitempty"`
	Privacy            *PrivacySettings     `bson:"privacy,omitempty" json:"privacy,omitempty"`
	PrayerRequests     []PrayerRequest      `bson:"prayerRequests,omitempty" json:"prayerRequests,omitempty"`
	Connections        []primitive.ObjectID `bson:"connections,omitempty" json:"connections,omitempty"`
	Role               Role                 `bson:"role" json:"role"`
	IsActive           bool                 `bson:"isActive" json:"isActive"`
	JoinDate           time.Time            `bson:"joinDate" json:"joinDate"`
	LastLogin          *time.Time           `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt          time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// IsConnectedTo reports whether other is in u's connections
func (u *User) IsConnectedTo(other primitive.ObjectID) bool {
	for _, id := range u.Connections {
		if id == other {
			return true
		}
	}
	return false
}

// PublicProfile is a privacy-filtered view of a User
type PublicProfile struct {
	ID                 primitive.ObjectID `json:"id"`
	FirstName          string             `json:"firstName"`
	LastName           string             `json:"lastName"`
	ProfilePicture     string             `json:"profilePicture"`
	Bio                string             `json:"bio"`
	Denomination       string             `json:"denomination,omitempty"`
	JoinDate           time.Time          `json:"joinDate"`
	Location           *Location          `json:"location,omitempty"`
	RelationshipStatus RelationshipStatus `json:"relationshipStatus,omitempty"`
	Interests          []string           `json:"interests,omitempty"`
}

// FeaturedMember is one entry of the featured members feed
type FeaturedMember struct {
	PublicProfile
	CompatibilityScore int  `json:"compatibilityScore"`
	IsPersonalized     bool `json:"isPersonalized"`
}

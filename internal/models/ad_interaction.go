package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InteractionType of an ad event
type InteractionType string

const (
	InteractionImpression InteractionType = "impression"
	InteractionClick      InteractionType = "click"
	InteractionConversion InteractionType = "conversion"
	InteractionShare      InteractionType = "share"
)

// Valid reports whether t is a known interaction type
func (t InteractionType) Valid() bool {
	switch t {
	case InteractionImpression, InteractionClick, InteractionConversion, InteractionShare:
		return true
	}
	return false
}

// DeviceInfo describes the client that produced an interaction
type DeviceInfo struct {
	Type      string `bson:"type,omitempty" json:"type,omitempty"`
	UserAgent string `bson:"userAgent,omitempty" json:"userAgent,omitempty"`
}

// AdInteraction is an append-only event record
type AdInteraction struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	AdvertisementID primitive.ObjectID  `bson:"advertisementId" json:"advertisementId"`
	UserID          *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	Type            InteractionType     `bson:"type" json:"type"`
	Device          DeviceInfo          `bson:"device" json:"device"`
	IPAddress       string              `bson:"ipAddress,omitempty" json:"-"`
	Location        *Location           `bson:"location,omitempty" json:"location,omitempty"`
	Referrer        string              `bson:"referrer,omitempty" json:"referrer,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
}

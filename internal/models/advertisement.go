package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdStatus is the review lifecycle of an advertisement
type AdStatus string

const (
	AdDraft         AdStatus = "draft"
	AdPendingReview AdStatus = "pending_review"
	AdApproved      AdStatus = "approved"
	AdRejected      AdStatus = "rejected"
	AdPaused        AdStatus = "paused"
	AdExpired       AdStatus = "expired"
)

// Valid reports whether s is a known ad status
func (s AdStatus) Valid() bool {
	switch s {
	case AdDraft, AdPendingReview, AdApproved, AdRejected, AdPaused, AdExpired:
		return true
	}
	return false
}

// AdType is where an advertisement renders
type AdType string

const (
	AdTypeBanner    AdType = "banner"
	AdTypeSidebar   AdType = "sidebar"
	AdTypeFeed      AdType = "feed"
	AdTypeSponsored AdType = "sponsored_post"
)

// Schedule bounds when an ad may run. Nil bounds are unbounded.
type Schedule struct {
	StartDate *time.Time `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate   *time.Time `bson:"endDate,omitempty" json:"endDate,omitempty"`
}

// Targeting narrows the audience of an ad
type Targeting struct {
	States    []string `bson:"states,omitempty" json:"states,omitempty"`
	Interests []string `bson:"interests,omitempty" json:"interests,omitempty"`
	Schedule  Schedule `bson:"schedule" json:"schedule"`
}

// Budget of an ad campaign
type Budget struct {
	TotalBudget  float64 `bson:"totalBudget" json:"totalBudget"`
	DailyBudget  float64 `bson:"dailyBudget,omitempty" json:"dailyBudget,omitempty"`
	CostPerClick float64 `bson:"costPerClick" json:"costPerClick"`
}

// AdMetrics are counters kept on the advertisement. CTR is derived.
type AdMetrics struct {
	Impressions int64      `bson:"impressions" json:"impressions"`
	Clicks      int64      `bson:"clicks" json:"clicks"`
	CTR         float64    `bson:"ctr" json:"ctr"`
	Conversions int64      `bson:"conversions" json:"conversions"`
	Shares      int64      `bson:"shares" json:"shares"`
	TotalSpent  float64    `bson:"totalSpent" json:"totalSpent"`
	LastUpdated *time.Time `bson:"lastUpdated,omitempty" json:"lastUpdated,omitempty"`
}

// Advertisement belongs to one Advertiser
type Advertisement struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	AdvertiserID primitive.ObjectID `bson:"advertiserId" json:"advertiserId"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL     string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	TargetURL    string             `bson:"targetUrl" json:"targetUrl"`
	CallToAction string             `bson:"callToAction,omitempty" json:"callToAction,omitempty"`
	AdType       AdType             `bson:"adType" json:"adType"`
	Status       AdStatus           `bson:"status" json:"status"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	Targeting    Targeting          `bson:"targeting" json:"targeting"`
	Budget       Budget             `bson:"budget" json:"budget"`
	Metrics      AdMetrics          `bson:"metrics" json:"metrics"`
	ReviewNotes  string             `bson:"reviewNotes,omitempty" json:"reviewNotes,omitempty"`
	ReviewedAt   *time.Time         `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

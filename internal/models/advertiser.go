package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccountStatus tracks admin approval of an advertiser account
type AccountStatus string

const (
	AccountPending   AccountStatus = "pending"
	AccountApproved  AccountStatus = "approved"
	AccountSuspended AccountStatus = "suspended"
	AccountCancelled AccountStatus = "cancelled"
)

// Valid reports whether s is a known account status
func (s AccountStatus) Valid() bool {
	switch s {
	case AccountPending, AccountApproved, AccountSuspended, AccountCancelled:
		return true
	}
	return false
}

// SubscriptionStatus of an advertiser's plan
type SubscriptionStatus string

const (
	SubscriptionInactive  SubscriptionStatus = "inactive"
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionPastDue   SubscriptionStatus = "past_due"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// Advertiser is a business account, one per member email
type Advertiser struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID             primitive.ObjectID `bson:"userId" json:"userId"`
	Email              string             `bson:"email" json:"email"`
	BusinessName       string             `bson:"businessName" json:"businessName"`
	BusinessType       string             `bson:"businessType,omitempty" json:"businessType,omitempty"`
	Website            string             `bson:"website,omitempty" json:"website,omitempty"`
	Phone              string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Description        string             `bson:"description,omitempty" json:"description,omitempty"`
	Address            *Location          `bson:"address,omitempty" json:"address,omitempty"`
	AccountStatus      AccountStatus      `bson:"accountStatus" json:"accountStatus"`
	StatusReason       string             `bson:"statusReason,omitempty" json:"statusReason,omitempty"`
	CurrentPlan        string             `bson:"currentPlan" json:"currentPlan"`
	SubscriptionStatus SubscriptionStatus `bson:"subscriptionStatus" json:"subscriptionStatus"`
	ApprovedAt         *time.Time         `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

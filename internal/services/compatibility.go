package services

import (
	"strings"
	"time"

	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
)

// Compatibility weights
const (
	SharedInterestPoints     = 10
	SameStatePoints          = 5
	SameCityPoints           = 3
	SameRelationshipPoints   = 2
	RecentlyJoinedPoints     = 1
	RecentlyJoinedWindowDays = 30
)

// CompatibilityScore is an additive affinity score of candidate for viewer.
// Missing fields contribute nothing, so the score is never negative.
func CompatibilityScore(viewer, candidate *models.User, now time.Time) int {
	score := SharedInterests(viewer.Interests, candidate.Interests) * SharedInterestPoints

	if sameLocationField(stateOf(viewer), stateOf(candidate)) {
		score += SameStatePoints
		if sameLocationField(cityOf(viewer), cityOf(candidate)) {
			score += SameCityPoints
		}
	}

	if viewer.RelationshipStatus != "" && viewer.RelationshipStatus == candidate.RelationshipStatus {
		score += SameRelationshipPoints
	}

	if JoinedRecently(candidate, now) {
		score += RecentlyJoinedPoints
	}
	return score
}

// SharedInterests counts distinct interests present in both lists, ignoring case
func SharedInterests(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		if k := normalizeInterest(s); k != "" {
			set[k] = struct{}{}
		}
	}
	shared := 0
	for _, s := range b {
		k := normalizeInterest(s)
		if _, ok := set[k]; ok {
			shared++
			delete(set, k)
		}
	}
	return shared
}

// JoinedRecently reports whether u joined within the recency window before now
func JoinedRecently(u *models.User, now time.Time) bool {
	if u.JoinDate.IsZero() {
		return false
	}
	return now.Sub(u.JoinDate) <= RecentlyJoinedWindowDays*24*time.Hour
}

func normalizeInterest(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func sameLocationField(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}

func stateOf(u *models.User) string {
	if u.Location == nil {
		return ""
	}
	return u.Location.State
}

func cityOf(u *models.User) string {
	if u.Location == nil {
		return ""
	}
	return u.Location.City
}

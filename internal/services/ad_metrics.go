package services

import (
	"time"

	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
)

// RecalculateMetrics refreshes the derived click-through rate before an
// advertisement is written. With no impressions the previous CTR is kept.
func RecalculateMetrics(ad *models.Advertisement, now time.Time) {
	ad.Metrics.CTR = ComputeCTR(ad.Metrics.Impressions, ad.Metrics.Clicks, ad.Metrics.CTR)
	ad.Metrics.LastUpdated = &now
}

// ComputeCTR returns 100*clicks/impressions, or prior when there are no impressions
func ComputeCTR(impressions, clicks int64, prior float64) float64 {
	if impressions <= 0 {
		return prior
	}
	return float64(clicks) / float64(impressions) * 100
}

// ShouldBeActive reports whether ad may be served at now. Missing schedule
// bounds are open on that side.
func ShouldBeActive(ad *models.Advertisement, now time.Time) bool {
	if ad.Status != models.AdApproved || !ad.IsActive {
		return false
	}
	s := ad.Targeting.Schedule
	if s.StartDate != nil && now.Before(*s.StartDate) {
		return false
	}
	if s.EndDate != nil && now.After(*s.EndDate) {
		return false
	}
	return true
}

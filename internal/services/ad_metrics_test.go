package services

import (
	"testing"
	"time"

	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalculateMetrics(t *testing.T) {
	tests := []struct {
		name        string
		impressions int64
		clicks      int64
		prior       float64
		want        float64
	}{
		{"no impressions keeps zero", 0, 0, 0, 0},
		{"no impressions keeps prior", 0, 3, 12.5, 12.5},
		{"quarter", 4, 1, 0, 25},
		{"all clicked", 10, 10, 3, 100},
		{"none clicked", 10, 0, 50, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ad := &models.Advertisement{Metrics: models.AdMetrics{Impressions: tt.impressions, Clicks: tt.clicks, CTR: tt.prior}}
			RecalculateMetrics(ad, testNow)
			assert.InDelta(t, tt.want, ad.Metrics.CTR, 1e-9)
			require.NotNil(t, ad.Metrics.LastUpdated)
			assert.Equal(t, testNow, *ad.Metrics.LastUpdated)
		})
	}
}

func TestRecalculateMetrics_BoundedAndIdempotent(t *testing.T) {
	for impressions := int64(1); impressions <= 50; impressions++ {
		for clicks := int64(0); clicks <= impressions; clicks++ {
			ad := &models.Advertisement{Metrics: models.AdMetrics{Impressions: impressions, Clicks: clicks}}
			RecalculateMetrics(ad, testNow)
			first := ad.Metrics.CTR
			RecalculateMetrics(ad, testNow.Add(time.Minute))

			assert.Equal(t, first, ad.Metrics.CTR)
			assert.GreaterOrEqual(t, first, 0.0)
			assert.LessOrEqual(t, first, 100.0)
		}
	}
}

func TestShouldBeActive(t *testing.T) {
	past := testNow.Add(-24 * time.Hour)
	future := testNow.Add(24 * time.Hour)

	tests := []struct {
		name     string
		status   models.AdStatus
		isActive bool
		start    *time.Time
		end      *time.Time
		want     bool
	}{
		{"approved unbounded", models.AdApproved, true, nil, nil, true},
		{"approved within window", models.AdApproved, true, &past, &future, true},
		{"not started", models.AdApproved, true, &future, nil, false},
		{"ended", models.AdApproved, true, nil, &past, false},
		{"ends now", models.AdApproved, true, nil, &testNow, true},
		{"paused flag", models.AdApproved, false, nil, nil, false},
		{"pending review", models.AdPendingReview, true, nil, nil, false},
		{"paused status", models.AdPaused, true, &past, &future, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ad := &models.Advertisement{
				Status:    tt.status,
				IsActive:  tt.isActive,
				Targeting: models.Targeting{Schedule: models.Schedule{StartDate: tt.start, EndDate: tt.end}},
			}
			assert.Equal(t, tt.want, ShouldBeActive(ad, testNow))
		})
	}
}

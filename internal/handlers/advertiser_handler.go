package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/middleware"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/services"
)

// AdvertiserHandler handles advertiser accounts, campaigns and public ad serving
type AdvertiserHandler struct {
	advertiserService *services.AdvertiserService
}

// NewAdvertiserHandler creates a new AdvertiserHandler
func NewAdvertiserHandler(advertiserService *services.AdvertiserService) *AdvertiserHandler {
	return &AdvertiserHandler{advertiserService: advertiserService}
}

// Register handles POST /api/advertisers/register
func (h *AdvertiserHandler) Register(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	var req models.AdvertiserRegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	advertiser, err := h.advertiserService.Register(c.Request.Context(), v.ID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, "Advertiser account created and pending approval", advertiser)
}

// Dashboard handles GET /api/advertisers/dashboard
func (h *AdvertiserHandler) Dashboard(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	dashboard, err := h.advertiserService.Dashboard(c.Request.Context(), v.ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, dashboard)
}

// ListAds handles GET /api/advertisers/advertisements
func (h *AdvertiserHandler) ListAds(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	ads, err := h.advertiserService.ListAds(c.Request.Context(), v.ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, ads)
}

// CreateAd handles POST /api/advertisers/advertisements
func (h *AdvertiserHandler) CreateAd(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	var req models.AdvertisementInput
	if !bindJSON(c, &req) {
		return
	}
	ad, err := h.advertiserService.CreateAd(c.Request.Context(), v.ID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, "Advertisement created", ad)
}

// GetAd handles GET /api/advertisers/advertisements/:id
func (h *AdvertiserHandler) GetAd(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	ad, err := h.advertiserService.GetAd(c.Request.Context(), v.ID, id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, ad)
}

// UpdateAd handles PUT /api/advertisers/advertisements/:id
func (h *AdvertiserHandler) UpdateAd(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req models.AdvertisementInput
	if !bindJSON(c, &req) {
		return
	}
	ad, err := h.advertiserService.UpdateAd(c.Request.Context(), v.ID, id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, ad)
}

// DeleteAd handles DELETE /api/advertisers/advertisements/:id
func (h *AdvertiserHandler) DeleteAd(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.advertiserService.DeleteAd(c.Request.Context(), v.ID, id); err != nil {
		fail(c, err)
		return
	}
	message(c, "Advertisement deleted")
}

// SubmitAd handles POST /api/advertisers/advertisements/:id/submit
func (h *AdvertiserHandler) SubmitAd(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	ad, err := h.advertiserService.SubmitAd(c.Request.Context(), v.ID, id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, ad)
}

// ActiveAds handles GET /api/ads/active
func (h *AdvertiserHandler) ActiveAds(c *gin.Context) {
	ads, err := h.advertiserService.ActiveAds(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, ads)
}

// TrackInteraction handles POST /api/ads/:id/interactions. Authentication is optional.
func (h *AdvertiserHandler) TrackInteraction(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req models.InteractionRequest
	if !bindJSON(c, &req) {
		return
	}

	ic := services.InteractionContext{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if v, found := middleware.CurrentViewer(c); found {
		ic.UserID = &v.ID
	}

	metrics, err := h.advertiserService.TrackInteraction(c.Request.Context(), id, &req, ic)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, metrics)
}

package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/services"
)

// AdminHandler handles the moderation back office
type AdminHandler struct {
	adminService *services.AdminService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, stats)
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit := pageParams(c)
	users, err := h.adminService.ListUsers(c.Request.Context(), c.Query("search"), page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, users)
}

// DeactivateUser handles PUT /api/admin/users/:id/deactivate
func (h *AdminHandler) DeactivateUser(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.adminService.DeactivateUser(c.Request.Context(), v, id); err != nil {
		fail(c, err)
		return
	}
	message(c, "User deactivated")
}

// SetAdvertiserStatus handles PUT /api/admin/advertisers/:id/status
func (h *AdminHandler) SetAdvertiserStatus(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req models.AdvertiserStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	advertiser, err := h.adminService.SetAdvertiserStatus(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, advertiser)
}

// ReviewAd handles PUT /api/admin/advertisements/:id/review
func (h *AdminHandler) ReviewAd(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req models.AdReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	ad, err := h.adminService.ReviewAd(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, ad)
}

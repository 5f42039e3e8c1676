package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/apperrors"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/logger"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/services"
)

// UserHandler handles profile and member discovery requests
type UserHandler struct {
	userService   *services.UserService
	memberService *services.MemberService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService, memberService *services.MemberService) *UserHandler {
	return &UserHandler{userService: userService, memberService: memberService}
}

// NewestMembers handles GET /api/users/newest-members
func (h *UserHandler) NewestMembers(c *gin.Context) {
	list, err := h.memberService.NewestMembers(c.Request.Context(), queryInt(c, "limit", 0))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, list)
}

// PersonalizedFeatured handles GET /api/users/personalized-featured.
// An unknown viewer gets the newest members instead.
func (h *UserHandler) PersonalizedFeatured(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	limit := queryInt(c, "limit", 0)

	feed, err := h.memberService.PersonalizedFeatured(c.Request.Context(), v.ID, limit)
	if apperrors.IsNotFound(err) {
		logger.Warn("featured feed viewer missing, serving newest members", "user", v.ID.Hex())
		list, err := h.memberService.NewestMembers(c.Request.Context(), limit)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, newestAsFeatured(list))
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, feed)
}

func newestAsFeatured(list *models.MemberList) *models.FeaturedFeed {
	members := make([]models.FeaturedMember, 0, len(list.Members))
	for _, m := range list.Members {
		members = append(members, models.FeaturedMember{PublicProfile: m})
	}
	return &models.FeaturedFeed{Members: members, Count: len(members)}
}

// GetMe handles GET /api/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	user, err := h.userService.GetMe(c.Request.Context(), v.ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, user)
}

// GetProfile handles GET /api/users/:id
func (h *UserHandler) GetProfile(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	profile, err := h.userService.GetPublicProfile(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, profile)
}

// UpdateProfile handles PUT /api/users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	var req models.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userService.UpdateProfile(c.Request.Context(), v.ID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, user)
}

// UpdateInterests handles PUT /api/users/interests
func (h *UserHandler) UpdateInterests(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	var req models.UpdateInterestsRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userService.UpdateInterests(c.Request.Context(), v.ID, req.Interests)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, user)
}

// UpdatePrivacy handles PUT /api/users/privacy
func (h *UserHandler) UpdatePrivacy(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	var req models.UpdatePrivacyRequest
	if !bindJSON(c, &req) {
		return
	}
	privacy, err := h.userService.UpdatePrivacy(c.Request.Context(), v.ID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, privacy)
}

// DeleteMe handles DELETE /api/users/me
func (h *UserHandler) DeleteMe(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	if err := h.userService.Deactivate(c.Request.Context(), v.ID); err != nil {
		fail(c, err)
		return
	}
	message(c, "Account deactivated")
}

// Connect handles POST /api/users/:id/connect
func (h *UserHandler) Connect(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.userService.Connect(c.Request.Context(), v.ID, id); err != nil {
		fail(c, err)
		return
	}
	message(c, "Connected")
}

// MyPrayerRequests handles GET /api/users/prayer-requests
func (h *UserHandler) MyPrayerRequests(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	requests, err := h.userService.ListPrayerRequests(c.Request.Context(), v.ID, v.ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, requests)
}

// MemberPrayerRequests handles GET /api/users/:id/prayer-requests
func (h *UserHandler) MemberPrayerRequests(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	requests, err := h.userService.ListPrayerRequests(c.Request.Context(), v.ID, id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, requests)
}

// AddPrayerRequest handles POST /api/users/prayer-requests
func (h *UserHandler) AddPrayerRequest(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	var req models.PrayerRequestInput
	if !bindJSON(c, &req) {
		return
	}
	pr, err := h.userService.AddPrayerRequest(c.Request.Context(), v.ID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, "Prayer request added", pr)
}

// MarkPrayerAnswered handles PUT /api/users/prayer-requests/:requestId/answered
func (h *UserHandler) MarkPrayerAnswered(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	requestID, valid := pathID(c, "requestId")
	if !valid {
		return
	}
	if err := h.userService.MarkPrayerAnswered(c.Request.Context(), v.ID, requestID); err != nil {
		fail(c, err)
		return
	}
	message(c, "Prayer request marked as answered")
}

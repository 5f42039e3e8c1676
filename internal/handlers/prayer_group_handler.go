package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/services"
)

// PrayerGroupHandler handles prayer group requests
type PrayerGroupHandler struct {
	groupService *services.PrayerGroupService
}

// NewPrayerGroupHandler creates a new PrayerGroupHandler
func NewPrayerGroupHandler(groupService *services.PrayerGroupService) *PrayerGroupHandler {
	return &PrayerGroupHandler{groupService: groupService}
}

// ListGroups handles GET /api/prayer-groups
func (h *PrayerGroupHandler) ListGroups(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	groups, err := h.groupService.ListGroups(c.Request.Context(), v.ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, groups)
}

// CreateGroup handles POST /api/prayer-groups
func (h *PrayerGroupHandler) CreateGroup(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	var req models.CreatePrayerGroupRequest
	if !bindJSON(c, &req) {
		return
	}
	group, err := h.groupService.CreateGroup(c.Request.Context(), v.ID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, "Prayer group created", group)
}

// Join handles POST /api/prayer-groups/:id/join
func (h *PrayerGroupHandler) Join(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.groupService.Join(c.Request.Context(), v.ID, id); err != nil {
		fail(c, err)
		return
	}
	message(c, "Joined prayer group")
}

// Leave handles POST /api/prayer-groups/:id/leave
func (h *PrayerGroupHandler) Leave(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.groupService.Leave(c.Request.Context(), v.ID, id); err != nil {
		fail(c, err)
		return
	}
	message(c, "Left prayer group")
}

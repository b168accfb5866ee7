package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Amaan112005/mindmate/internal/middleware"
	"github.com/Amaan112005/mindmate/internal/repository"
)

// ProfileHandler covers the caller's own care-store profile and activity
// trail.
type ProfileHandler struct {
	profiles repository.ProfileRepository
	activity repository.ActivityRepository
	logger   *zap.Logger
}

func NewProfileHandler(profiles repository.ProfileRepository, activity repository.ActivityRepository, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, activity: activity, logger: logger}
}

// Me handles GET /v1/me
func (h *ProfileHandler) Me(c *gin.Context) {
	profile, err := h.profiles.GetByID(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

type updateProfileRequest struct {
	DisplayName    string `json:"display_name"`
	Bio            string `json:"bio"`
	Specialization string `json:"specialization"`
	Available      *bool  `json:"available"`
}

// Update handles PUT /v1/me
func (h *ProfileHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profiles.GetByID(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	if req.DisplayName != "" {
		profile.DisplayName = req.DisplayName
	}
	if req.Bio != "" {
		profile.Bio = req.Bio
	}
	if req.Specialization != "" {
		profile.Specialization = req.Specialization
	}
	if req.Available != nil {
		profile.Available = *req.Available
	}

	if err := h.profiles.Update(c.Request.Context(), profile); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Activity handles GET /v1/me/activity?limit=20
func (h *ProfileHandler) Activity(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	entries, err := h.activity.Recent(c.Request.Context(), middleware.GetUserID(c), limit)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

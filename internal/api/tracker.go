package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Amaan112005/mindmate/internal/middleware"
	"github.com/Amaan112005/mindmate/internal/service"
)

// TrackerHandler covers the mood, sleep and meditation trackers plus the
// dashboard that aggregates them.
type TrackerHandler struct {
	wellness *service.WellnessService
	logger   *zap.Logger
}

func NewTrackerHandler(wellness *service.WellnessService, logger *zap.Logger) *TrackerHandler {
	return &TrackerHandler{wellness: wellness, logger: logger}
}

type moodRequest struct {
	Score int    `json:"mood_score" binding:"required,min=1,max=10"`
	Notes string `json:"notes"`
	Tags  string `json:"tags"`
}

// AddMood handles POST /v1/mood
func (h *TrackerHandler) AddMood(c *gin.Context) {
	var req moodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.wellness.AddMood(c.Request.Context(), middleware.GetUserID(c), req.Score, req.Notes, req.Tags)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// MoodHistory handles GET /v1/mood?limit=50
func (h *TrackerHandler) MoodHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.wellness.MoodHistory(c.Request.Context(), middleware.GetUserID(c), limit)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// MoodTrends handles GET /v1/mood/trends?days=30
func (h *TrackerHandler) MoodTrends(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	points, err := h.wellness.MoodTrends(c.Request.Context(), middleware.GetUserID(c), days)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

type sleepRequest struct {
	Date    string  `json:"date" binding:"required"`
	Hours   float64 `json:"hours" binding:"required"`
	Quality int     `json:"quality" binding:"required,min=1,max=10"`
	Notes   string  `json:"notes"`
}

// AddSleep handles POST /v1/sleep
func (h *TrackerHandler) AddSleep(c *gin.Context) {
	var req sleepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want YYYY-MM-DD"})
		return
	}

	entry, err := h.wellness.AddSleep(c.Request.Context(), middleware.GetUserID(c), date, req.Hours, req.Quality, req.Notes)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// SleepHistory handles GET /v1/sleep?limit=50
func (h *TrackerHandler) SleepHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.wellness.SleepHistory(c.Request.Context(), middleware.GetUserID(c), limit)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

type meditationRequest struct {
	SessionType string `json:"session_type"`
	Minutes     int    `json:"minutes" binding:"required,min=1"`
	Notes       string `json:"notes"`
}

// LogMeditation handles POST /v1/meditation
func (h *TrackerHandler) LogMeditation(c *gin.Context) {
	var req meditationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.wellness.LogMeditation(c.Request.Context(), middleware.GetUserID(c), req.SessionType, req.Minutes, req.Notes)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// MeditationHistory handles GET /v1/meditation?limit=50
func (h *TrackerHandler) MeditationHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	sessions, err := h.wellness.MeditationHistory(c.Request.Context(), middleware.GetUserID(c), limit)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// Dashboard handles GET /v1/dashboard
func (h *TrackerHandler) Dashboard(c *gin.Context) {
	data, err := h.wellness.Dashboard(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

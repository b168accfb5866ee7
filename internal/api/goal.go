package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Amaan112005/mindmate/internal/middleware"
	"github.com/Amaan112005/mindmate/internal/models"
	"github.com/Amaan112005/mindmate/internal/service"
)

// GoalHandler covers wellness goals.
type GoalHandler struct {
	wellness *service.WellnessService
	logger   *zap.Logger
}

func NewGoalHandler(wellness *service.WellnessService, logger *zap.Logger) *GoalHandler {
	return &GoalHandler{wellness: wellness, logger: logger}
}

type goalRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Type        string `json:"type" binding:"required"`
	TargetDate  string `json:"target_date" binding:"required"`
	TargetValue int    `json:"target_value" binding:"required,min=1"`
}

// Create handles POST /v1/goals
func (h *GoalHandler) Create(c *gin.Context) {
	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	targetDate, err := time.Parse("2006-01-02", req.TargetDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target_date, want YYYY-MM-DD"})
		return
	}

	goal := &models.Goal{
		UserID:      middleware.GetUserID(c),
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		TargetDate:  targetDate,
		TargetValue: req.TargetValue,
	}
	if err := h.wellness.CreateGoal(c.Request.Context(), goal); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, goal)
}

// List handles GET /v1/goals
func (h *GoalHandler) List(c *gin.Context) {
	goals, err := h.wellness.ListGoals(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

type progressRequest struct {
	Progress int `json:"progress" binding:"min=0"`
}

// UpdateProgress handles PUT /v1/goals/:id/progress
func (h *GoalHandler) UpdateProgress(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal ID"})
		return
	}

	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.wellness.UpdateGoalProgress(c.Request.Context(), id, middleware.GetUserID(c), req.Progress); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

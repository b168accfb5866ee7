package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Amaan112005/mindmate/internal/middleware"
	"github.com/Amaan112005/mindmate/internal/service"
)

// RelationshipHandler covers the relationship registry.
type RelationshipHandler struct {
	care   *service.CareService
	logger *zap.Logger
}

func NewRelationshipHandler(care *service.CareService, logger *zap.Logger) *RelationshipHandler {
	return &RelationshipHandler{care: care, logger: logger}
}

type assignRequest struct {
	ClientID string `json:"client_id" binding:"required"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// Assign handles POST /v1/therapists/me/clients — direct assignment outside
// the request flow.
func (h *RelationshipHandler) Assign(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.care.Assign(c.Request.Context(), req.ClientID, middleware.GetUserID(c), req.Name, req.Email)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusCreated)
}

// Unassign handles DELETE /v1/therapists/me/clients/:id
func (h *RelationshipHandler) Unassign(c *gin.Context) {
	err := h.care.Unassign(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MyTherapist handles GET /v1/me/therapist
func (h *RelationshipHandler) MyTherapist(c *gin.Context) {
	therapist, err := h.care.TherapistFor(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if therapist == nil {
		c.JSON(http.StatusOK, gin.H{"therapist": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"therapist": therapist})
}

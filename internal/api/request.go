package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Amaan112005/mindmate/internal/middleware"
	"github.com/Amaan112005/mindmate/internal/service"
)

// RequestHandler covers the therapist-request ledger.
type RequestHandler struct {
	care   *service.CareService
	logger *zap.Logger
}

func NewRequestHandler(care *service.CareService, logger *zap.Logger) *RequestHandler {
	return &RequestHandler{care: care, logger: logger}
}

type submitRequestBody struct {
	TherapistID string     `json:"therapist_id" binding:"required"`
	Name        string     `json:"name" binding:"required"`
	Email       string     `json:"email" binding:"required,email"`
	Phone       string     `json:"phone" binding:"required"`
	Description string     `json:"problem_description"`
	PreferredAt *time.Time `json:"appointment_at"`
}

// Submit handles POST /v1/requests
func (h *RequestHandler) Submit(c *gin.Context) {
	var body submitRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := h.care.SubmitRequest(c.Request.Context(), service.RequestInput{
		ClientID:    middleware.GetUserID(c),
		TherapistID: body.TherapistID,
		Name:        body.Name,
		Email:       body.Email,
		Phone:       body.Phone,
		Description: body.Description,
		PreferredAt: body.PreferredAt,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// ListMine handles GET /v1/requests — the caller's own pending requests.
func (h *RequestHandler) ListMine(c *gin.Context) {
	requests, err := h.care.ListPendingForClient(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// ListPending handles GET /v1/therapists/me/requests — therapist inbox.
func (h *RequestHandler) ListPending(c *gin.Context) {
	requests, err := h.care.ListPending(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// Accept handles POST /v1/therapists/me/requests/:id/accept
func (h *RequestHandler) Accept(c *gin.Context) {
	req, err := h.care.AcceptRequest(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// Decline handles POST /v1/therapists/me/requests/:id/decline
func (h *RequestHandler) Decline(c *gin.Context) {
	req, err := h.care.DeclineRequest(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// Cancel handles DELETE /v1/requests/:id — client withdraws a pending ask.
func (h *RequestHandler) Cancel(c *gin.Context) {
	err := h.care.CancelRequest(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Amaan112005/mindmate/internal/middleware"
	"github.com/Amaan112005/mindmate/internal/service"
)

// MessageHandler covers the client/therapist messaging log.
type MessageHandler struct {
	messaging *service.MessagingService
	logger    *zap.Logger
}

func NewMessageHandler(messaging *service.MessagingService, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{messaging: messaging, logger: logger}
}

type sendMessageRequest struct {
	RecipientID string `json:"recipient_id" binding:"required"`
	Content     string `json:"content" binding:"required"`
}

// Send handles POST /v1/messages
func (h *MessageHandler) Send(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.messaging.Send(c.Request.Context(), middleware.GetUserID(c), req.RecipientID, req.Content)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// History handles GET /v1/messages/:peer?limit=100&order=asc
func (h *MessageHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	ascending := c.DefaultQuery("order", "asc") != "desc"

	messages, err := h.messaging.History(c.Request.Context(), middleware.GetUserID(c), c.Param("peer"), limit, ascending)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// ClientHistory handles GET /v1/therapists/me/clients/:id/messages — the
// relationship-gated conversation view.
func (h *MessageHandler) ClientHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	messages, err := h.messaging.TherapistClientHistory(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), limit)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// MarkRead handles POST /v1/messages/:peer/read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	if err := h.messaging.MarkRead(c.Request.Context(), middleware.GetUserID(c), c.Param("peer")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UnreadCount handles GET /v1/messages/unread?from=<senderID>
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var (
		count int
		err   error
	)
	if from := c.Query("from"); from != "" {
		count, err = h.messaging.UnreadCountFrom(c.Request.Context(), userID, from)
	} else {
		count, err = h.messaging.UnreadCount(c.Request.Context(), userID)
	}
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}

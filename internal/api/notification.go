package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Amaan112005/mindmate/internal/middleware"
	"github.com/Amaan112005/mindmate/internal/models"
	"github.com/Amaan112005/mindmate/internal/repository"
)

// NotificationHandler covers the notification log, per-user settings and
// the websocket unread stream.
type NotificationHandler struct {
	notifications repository.NotificationRepository
	logger        *zap.Logger
	upgrader      websocket.Upgrader
}

func NewNotificationHandler(notifications repository.NotificationRepository, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		logger:        logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// List handles GET /v1/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.notifications.ListByUser(c.Request.Context(), middleware.GetUserID(c), 50)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkAllRead handles POST /v1/notifications/read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notifications.MarkAllRead(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UnreadCount handles GET /v1/notifications/unread
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notifications.CountUnread(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// GetSettings handles GET /v1/notifications/settings. Users who never
// saved settings get the defaults (everything on).
func (h *NotificationHandler) GetSettings(c *gin.Context) {
	userID := middleware.GetUserID(c)
	settings, err := h.notifications.GetSettings(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if settings == nil {
		settings = &models.NotificationSettings{
			UserID:               userID,
			EmailNotifications:   true,
			PushNotifications:    true,
			MessageNotifications: true,
		}
	}
	c.JSON(http.StatusOK, settings)
}

type settingsRequest struct {
	EmailNotifications   bool `json:"email_notifications"`
	PushNotifications    bool `json:"push_notifications"`
	MessageNotifications bool `json:"message_notifications"`
}

// SaveSettings handles PUT /v1/notifications/settings
func (h *NotificationHandler) SaveSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings := &models.NotificationSettings{
		UserID:               middleware.GetUserID(c),
		EmailNotifications:   req.EmailNotifications,
		PushNotifications:    req.PushNotifications,
		MessageNotifications: req.MessageNotifications,
	}
	if err := h.notifications.SaveSettings(c.Request.Context(), settings); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// streamInterval is how often the websocket stream polls the unread count.
const streamInterval = 15 * time.Second

// Stream handles GET /v1/notifications/stream. It upgrades to a websocket
// and pushes the unread count whenever it changes. Best effort only; a
// dropped connection just closes the stream and the client reconnects.
func (h *NotificationHandler) Stream(c *gin.Context) {
	userID := middleware.GetUserID(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// Reader goroutine: we never expect client frames, but reading is
	// what surfaces close frames and connection drops.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(streamInterval)
	defer ticker.Stop()

	last := -1
	for {
		count, err := h.notifications.CountUnread(c.Request.Context(), userID)
		if err != nil {
			h.logger.Warn("unread poll failed", zap.Error(err))
			return
		}
		if count != last {
			if err := conn.WriteJSON(gin.H{"unread": count}); err != nil {
				return
			}
			last = count
		}

		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
		}
	}
}

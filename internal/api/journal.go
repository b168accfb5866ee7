package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Amaan112005/mindmate/internal/middleware"
	"github.com/Amaan112005/mindmate/internal/service"
)

// JournalHandler covers journal entries and their cached stats.
type JournalHandler struct {
	wellness *service.WellnessService
	logger   *zap.Logger
}

func NewJournalHandler(wellness *service.WellnessService, logger *zap.Logger) *JournalHandler {
	return &JournalHandler{wellness: wellness, logger: logger}
}

type journalEntryRequest struct {
	Content   string `json:"content" binding:"required"`
	EntryType string `json:"entry_type"`
}

// Create handles POST /v1/journal
func (h *JournalHandler) Create(c *gin.Context) {
	var req journalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.wellness.AddJournalEntry(c.Request.Context(), middleware.GetUserID(c), req.EntryType, req.Content)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// List handles GET /v1/journal?limit=50
func (h *JournalHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.wellness.ListJournal(c.Request.Context(), middleware.GetUserID(c), limit)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Stats handles GET /v1/stats?refresh=true — the cached journal and
// meditation aggregates.
func (h *JournalHandler) Stats(c *gin.Context) {
	force := c.Query("refresh") == "true"

	snapshot, err := h.wellness.Stats(c.Request.Context(), middleware.GetUserID(c), force)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Amaan112005/mindmate/internal/middleware"
	"github.com/Amaan112005/mindmate/internal/models"
	"github.com/Amaan112005/mindmate/internal/repository"
)

// CommunityHandler covers the community board.
type CommunityHandler struct {
	posts  repository.CommunityRepository
	logger *zap.Logger
}

func NewCommunityHandler(posts repository.CommunityRepository, logger *zap.Logger) *CommunityHandler {
	return &CommunityHandler{posts: posts, logger: logger}
}

type postRequest struct {
	Content string `json:"content" binding:"required"`
}

// Create handles POST /v1/community/posts
func (h *CommunityHandler) Create(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := &models.CommunityPost{
		UserID:  middleware.GetUserID(c),
		Content: req.Content,
	}
	if err := h.posts.Create(c.Request.Context(), post); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// List handles GET /v1/community/posts?limit=20
func (h *CommunityHandler) List(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	posts, err := h.posts.ListRecent(c.Request.Context(), limit)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Like handles POST /v1/community/posts/:id/like
func (h *CommunityHandler) Like(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post ID"})
		return
	}

	liked, err := h.posts.Like(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if !liked {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

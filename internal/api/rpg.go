package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Amaan112005/mindmate/internal/middleware"
	"github.com/Amaan112005/mindmate/internal/service"
)

// RPGHandler covers the wellness RPG: character creation, the quest
// board and skill practice.
type RPGHandler struct {
	rpg    *service.RPGService
	logger *zap.Logger
}

func NewRPGHandler(rpg *service.RPGService, logger *zap.Logger) *RPGHandler {
	return &RPGHandler{rpg: rpg, logger: logger}
}

type characterRequest struct {
	Name      string         `json:"name" binding:"required"`
	Archetype string         `json:"archetype" binding:"required"`
	Stats     map[string]int `json:"stats" binding:"required"`
}

// CreateCharacter handles POST /v1/rpg/character
func (h *RPGHandler) CreateCharacter(c *gin.Context) {
	var req characterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	char, err := h.rpg.CreateCharacter(c.Request.Context(), middleware.GetUserID(c), req.Name, req.Archetype, req.Stats)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, char)
}

// Quests handles GET /v1/rpg/quests
func (h *RPGHandler) Quests(c *gin.Context) {
	c.JSON(http.StatusOK, h.rpg.QuestCatalog())
}

type completeQuestRequest struct {
	QuestName string `json:"quest_name" binding:"required"`
}

// CompleteQuest handles POST /v1/rpg/quests/complete
func (h *RPGHandler) CompleteQuest(c *gin.Context) {
	var req completeQuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quest, err := h.rpg.CompleteQuest(c.Request.Context(), middleware.GetUserID(c), req.QuestName)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, quest)
}

type practiceRequest struct {
	Skill  string `json:"skill" binding:"required"`
	Points int    `json:"points" binding:"required,min=1"`
}

// PracticeSkill handles POST /v1/rpg/skills/practice
func (h *RPGHandler) PracticeSkill(c *gin.Context) {
	var req practiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	skill, err := h.rpg.PracticeSkill(c.Request.Context(), middleware.GetUserID(c), req.Skill, req.Points)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, skill)
}

// Progression handles GET /v1/rpg/progression
func (h *RPGHandler) Progression(c *gin.Context) {
	prog, err := h.rpg.Progression(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, prog)
}

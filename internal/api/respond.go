package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Amaan112005/mindmate/internal/domain"
)

// writeError translates the domain error taxonomy into HTTP statuses.
// Anything outside the taxonomy is a data-access or upstream failure:
// logged, and surfaced as a generic 500.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		validation *domain.ValidationError
		notFound   *domain.NotFoundError
		duplicate  *domain.DuplicateRelationshipError
		capacity   *domain.CapacityExceededError
		notTher    *domain.NotATherapistError
		transition *domain.InvalidTransitionError
		cooldown   *domain.QuestCooldownError
	)

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &duplicate):
		c.JSON(http.StatusConflict, gin.H{"error": duplicate.Error()})
	case errors.As(err, &capacity):
		c.JSON(http.StatusConflict, gin.H{"error": capacity.Error()})
	case errors.As(err, &transition):
		c.JSON(http.StatusConflict, gin.H{"error": transition.Error()})
	case errors.As(err, &cooldown):
		c.JSON(http.StatusConflict, gin.H{"error": cooldown.Error()})
	case errors.As(err, &notTher):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": notTher.Error()})
	default:
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

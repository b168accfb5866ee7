package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/Amaan112005/mindmate/internal/domain"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &domain.ValidationError{Field: "email", Reason: "required"}, http.StatusBadRequest},
		{"not found", &domain.NotFoundError{Entity: "request"}, http.StatusNotFound},
		{"duplicate", &domain.DuplicateRelationshipError{ClientID: "c1", TherapistID: "t1"}, http.StatusConflict},
		{"capacity", &domain.CapacityExceededError{TherapistID: "t1", Limit: 50}, http.StatusConflict},
		{"invalid transition", &domain.InvalidTransitionError{RequestID: "r1", From: "accepted", To: "declined"}, http.StatusConflict},
		{"not a therapist", &domain.NotATherapistError{ID: "x"}, http.StatusUnprocessableEntity},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			writeError(c, zap.NewNop(), tc.err)

			assert.Equal(t, tc.want, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

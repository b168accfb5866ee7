package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Amaan112005/mindmate/internal/auth"
	"github.com/Amaan112005/mindmate/internal/middleware"
	"github.com/Amaan112005/mindmate/internal/models"
	"github.com/Amaan112005/mindmate/internal/repository"
	"github.com/Amaan112005/mindmate/internal/service"
)

// TherapistHandler covers the therapist side of the marketplace: accounts,
// the public directory, the client roster, session notes and analytics.
type TherapistHandler struct {
	care      *service.CareService
	profiles  repository.ProfileRepository
	notes     repository.SessionNoteRepository
	jwtSecret string
	logger    *zap.Logger
}

func NewTherapistHandler(
	care *service.CareService,
	profiles repository.ProfileRepository,
	notes repository.SessionNoteRepository,
	jwtSecret string,
	logger *zap.Logger,
) *TherapistHandler {
	return &TherapistHandler{
		care:      care,
		profiles:  profiles,
		notes:     notes,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

type therapistSignupRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	Specialization string `json:"specialization" binding:"required"`
	Bio            string `json:"bio"`
}

// Signup handles POST /v1/therapists/signup
func (h *TherapistHandler) Signup(c *gin.Context) {
	var req therapistSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := h.profiles.GetTherapistByEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.logger.Error("failed to check existing therapist", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		return
	}

	profile := &models.Profile{
		ID:             uuid.NewString(),
		DisplayName:    req.Name,
		Email:          req.Email,
		PasswordHash:   string(hash),
		IsTherapist:    true,
		Specialization: req.Specialization,
		Bio:            req.Bio,
		Available:      true,
	}
	if err := h.profiles.Create(c.Request.Context(), profile); err != nil {
		h.logger.Error("failed to create therapist", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		return
	}

	token, err := auth.GenerateToken(profile.ID, profile.Email, true, h.jwtSecret, tokenTTL)
	if err != nil {
		h.logger.Error("failed to generate token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		return
	}

	c.JSON(http.StatusCreated, authResponse{Token: token, ID: profile.ID, Name: profile.DisplayName})
}

// Login handles POST /v1/therapists/login
func (h *TherapistHandler) Login(c *gin.Context) {
	var req loginEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profiles.GetTherapistByEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.logger.Error("failed to look up therapist", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	if profile == nil || bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(profile.ID, profile.Email, true, h.jwtSecret, tokenTTL)
	if err != nil {
		h.logger.Error("failed to generate token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, authResponse{Token: token, ID: profile.ID, Name: profile.DisplayName})
}

type loginEmailRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Directory handles GET /v1/therapists?specialization=anxiety
func (h *TherapistHandler) Directory(c *gin.Context) {
	therapists, err := h.care.ListTherapists(c.Request.Context(), c.Query("specialization"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, therapists)
}

// Clients handles GET /v1/therapists/me/clients?limit=20&offset=0
func (h *TherapistHandler) Clients(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	clients, err := h.care.ListClients(c.Request.Context(), middleware.GetUserID(c), limit, offset)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

type sessionNoteRequest struct {
	ClientID string `json:"client_id" binding:"required"`
	Note     string `json:"note" binding:"required"`
	Status   string `json:"status" binding:"omitempty,oneof=attended cancelled no_show"`
	Date     string `json:"date"`
}

// CreateNote handles POST /v1/therapists/me/notes
func (h *TherapistHandler) CreateNote(c *gin.Context) {
	var req sessionNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want YYYY-MM-DD"})
			return
		}
		date = parsed
	}
	if req.Status == "" {
		req.Status = "attended"
	}

	if err := h.care.VerifyClient(c.Request.Context(), middleware.GetUserID(c), req.ClientID); err != nil {
		writeError(c, h.logger, err)
		return
	}

	note := &models.SessionNote{
		TherapistID: middleware.GetUserID(c),
		ClientID:    req.ClientID,
		Note:        req.Note,
		Status:      req.Status,
		Date:        date,
	}
	if err := h.notes.Create(c.Request.Context(), note); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

// ClientNotes handles GET /v1/therapists/me/clients/:id/notes
func (h *TherapistHandler) ClientNotes(c *gin.Context) {
	if err := h.care.VerifyClient(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}

	notes, err := h.notes.ListByClient(c.Request.Context(), c.Param("id"), 50)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

// Analytics handles GET /v1/therapists/me/analytics?days=30
func (h *TherapistHandler) Analytics(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days < 1 || days > 365 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	analytics, err := h.notes.Analytics(c.Request.Context(), middleware.GetUserID(c), since)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, analytics)
}

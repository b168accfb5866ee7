package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Amaan112005/mindmate/internal/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth          *AuthHandler
	Therapist     *TherapistHandler
	Profile       *ProfileHandler
	Request       *RequestHandler
	Relationship  *RelationshipHandler
	Message       *MessageHandler
	Notification  *NotificationHandler
	Journal       *JournalHandler
	Tracker       *TrackerHandler
	Goal          *GoalHandler
	Community     *CommunityHandler
	Chat          *ChatHandler
	RPG           *RPGHandler
	HealthCheck   gin.HandlerFunc
	JWTSecret     string
}

// NewRouter builds the gin engine with every route registered explicitly.
// Three tiers: public (auth + health), authenticated, therapist-only.
func NewRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/v1/health", h.HealthCheck)

	// Public: these endpoints produce the tokens everything else needs.
	r.POST("/v1/auth/signup", h.Auth.Signup)
	r.POST("/v1/auth/login", h.Auth.Login)
	r.POST("/v1/therapists/signup", h.Therapist.Signup)
	r.POST("/v1/therapists/login", h.Therapist.Login)

	v1 := r.Group("/v1")
	v1.Use(middleware.AuthMiddleware(h.JWTSecret))
	{
		v1.GET("/me", h.Profile.Me)
		v1.PUT("/me", h.Profile.Update)
		v1.GET("/me/activity", h.Profile.Activity)
		v1.GET("/me/therapist", h.Relationship.MyTherapist)

		v1.GET("/therapists", h.Therapist.Directory)

		v1.POST("/requests", h.Request.Submit)
		v1.GET("/requests", h.Request.ListMine)
		v1.DELETE("/requests/:id", h.Request.Cancel)

		v1.POST("/messages", h.Message.Send)
		v1.GET("/messages/unread", h.Message.UnreadCount)
		v1.GET("/messages/:peer", h.Message.History)
		v1.POST("/messages/:peer/read", h.Message.MarkRead)

		v1.GET("/notifications", h.Notification.List)
		v1.POST("/notifications/read", h.Notification.MarkAllRead)
		v1.GET("/notifications/unread", h.Notification.UnreadCount)
		v1.GET("/notifications/settings", h.Notification.GetSettings)
		v1.PUT("/notifications/settings", h.Notification.SaveSettings)
		v1.GET("/notifications/stream", h.Notification.Stream)

		v1.POST("/journal", h.Journal.Create)
		v1.GET("/journal", h.Journal.List)
		v1.GET("/stats", h.Journal.Stats)

		v1.POST("/mood", h.Tracker.AddMood)
		v1.GET("/mood", h.Tracker.MoodHistory)
		v1.GET("/mood/trends", h.Tracker.MoodTrends)
		v1.POST("/sleep", h.Tracker.AddSleep)
		v1.GET("/sleep", h.Tracker.SleepHistory)
		v1.POST("/meditation", h.Tracker.LogMeditation)
		v1.GET("/meditation", h.Tracker.MeditationHistory)
		v1.GET("/dashboard", h.Tracker.Dashboard)

		v1.POST("/goals", h.Goal.Create)
		v1.GET("/goals", h.Goal.List)
		v1.PUT("/goals/:id/progress", h.Goal.UpdateProgress)

		v1.POST("/community/posts", h.Community.Create)
		v1.GET("/community/posts", h.Community.List)
		v1.POST("/community/posts/:id/like", h.Community.Like)

		v1.POST("/chat", h.Chat.Send)
		v1.GET("/chat", h.Chat.History)

		v1.POST("/rpg/character", h.RPG.CreateCharacter)
		v1.GET("/rpg/quests", h.RPG.Quests)
		v1.POST("/rpg/quests/complete", h.RPG.CompleteQuest)
		v1.POST("/rpg/skills/practice", h.RPG.PracticeSkill)
		v1.GET("/rpg/progression", h.RPG.Progression)
	}

	therapist := v1.Group("/therapists/me")
	therapist.Use(middleware.TherapistOnly())
	{
		therapist.GET("/requests", h.Request.ListPending)
		therapist.POST("/requests/:id/accept", h.Request.Accept)
		therapist.POST("/requests/:id/decline", h.Request.Decline)

		therapist.GET("/clients", h.Therapist.Clients)
		therapist.POST("/clients", h.Relationship.Assign)
		therapist.DELETE("/clients/:id", h.Relationship.Unassign)
		therapist.GET("/clients/:id/messages", h.Message.ClientHistory)
		therapist.GET("/clients/:id/notes", h.Therapist.ClientNotes)

		therapist.POST("/notes", h.Therapist.CreateNote)
		therapist.GET("/analytics", h.Therapist.Analytics)
	}

	return r
}

// DefaultHealthCheck reports liveness only; store health belongs to the
// checks wired in main.
func DefaultHealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

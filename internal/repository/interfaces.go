package repository

import (
	"context"
	"time"

	"github.com/Amaan112005/mindmate/internal/models"
	"github.com/Amaan112005/mindmate/internal/stats"
)

// Every method takes context.Context: all of these touch a database, and
// the handler's request context should cancel in-flight queries when the
// client disconnects.
//
// Lookup methods return (nil, nil) when the row does not exist; callers
// translate that to a domain NotFoundError where the absence matters.

// ProfileRepository handles care-store profiles (therapists and clients).
type ProfileRepository interface {
	// Create inserts a new profile. The caller supplies the ID.
	Create(ctx context.Context, p *models.Profile) error

	// UpsertClient creates or refreshes a shadow client profile.
	UpsertClient(ctx context.Context, p *models.Profile) error

	GetByID(ctx context.Context, id string) (*models.Profile, error)

	// GetTherapistByEmail looks up a therapist account for login.
	GetTherapistByEmail(ctx context.Context, email string) (*models.Profile, error)

	// ListTherapists returns available therapists, optionally filtered by
	// specialization.
	ListTherapists(ctx context.Context, specialization string) ([]models.Profile, error)

	// Update persists editable profile fields (name, bio, specialization,
	// availability).
	Update(ctx context.Context, p *models.Profile) error
}

// RequestRepository is the therapist-request ledger. Requests are appended
// and status-updated, never deleted once terminal; a client may delete
// their own still-pending request (cancellation).
type RequestRepository interface {
	Create(ctx context.Context, r *models.TherapistRequest) error
	GetByID(ctx context.Context, id string) (*models.TherapistRequest, error)
	ListPendingByTherapist(ctx context.Context, therapistID string) ([]models.TherapistRequest, error)
	ListPendingByClient(ctx context.Context, clientID string) ([]models.TherapistRequest, error)

	// UpdateStatusFromPending flips status only when the row is still
	// pending. Returns false when the request was not pending (or absent).
	UpdateStatusFromPending(ctx context.Context, id, status string) (bool, error)

	// DeletePending removes a client's own pending request. Returns false
	// when no pending row matched.
	DeletePending(ctx context.Context, id, clientID string) (bool, error)
}

// RelationshipRepository is the relationship registry.
type RelationshipRepository interface {
	Create(ctx context.Context, r *models.Relationship) error
	Exists(ctx context.Context, clientID, therapistID string) (bool, error)
	CountByTherapist(ctx context.Context, therapistID string) (int, error)

	// Delete hard-removes the pair. Returns false when nothing matched.
	Delete(ctx context.Context, clientID, therapistID string) (bool, error)

	// FirstTherapistIDFor returns the therapist of the first matching
	// relationship for the client, "" when none.
	FirstTherapistIDFor(ctx context.Context, clientID string) (string, error)

	// ListClientSummaries joins relationships with profiles and last-session
	// metadata. Clients whose profile lookup fails are skipped, not fatal.
	ListClientSummaries(ctx context.Context, therapistID string, limit, offset int) ([]models.ClientSummary, error)
}

// MessageRepository is the append-only messaging log.
type MessageRepository interface {
	Create(ctx context.Context, m *models.Message) error

	// ListBetween returns messages in either direction between a and b,
	// ordered by timestamp (ties by id), capped at limit.
	ListBetween(ctx context.Context, a, b string, limit int, ascending bool) ([]models.Message, error)

	// MarkRead flips read on all unread messages from sender to recipient.
	MarkRead(ctx context.Context, recipientID, senderID string) error

	CountUnread(ctx context.Context, userID string) (int, error)
	CountUnreadFrom(ctx context.Context, userID, senderID string) (int, error)
}

// NotificationRepository is the one-way notification log.
type NotificationRepository interface {
	// Create appends a notification. When n.RequestID is set the insert is
	// idempotent per request: a second insert for the same request is a
	// no-op.
	Create(ctx context.Context, n *models.Notification) error

	ListByUser(ctx context.Context, userID string, limit int) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, userID string) error
	CountUnread(ctx context.Context, userID string) (int, error)

	GetSettings(ctx context.Context, userID string) (*models.NotificationSettings, error)
	SaveSettings(ctx context.Context, s *models.NotificationSettings) error
}

// SessionNoteRepository stores therapists' per-client session notes.
type SessionNoteRepository interface {
	Create(ctx context.Context, n *models.SessionNote) error
	ListByClient(ctx context.Context, clientID string, limit int) ([]models.SessionNote, error)

	// Analytics aggregates a therapist's sessions since the given time.
	Analytics(ctx context.Context, therapistID string, since time.Time) (*models.TherapistAnalytics, error)
}

// ActivityRepository is the append-only user activity trail.
type ActivityRepository interface {
	Log(ctx context.Context, userID, action string) error
	Recent(ctx context.Context, userID string, limit int) ([]models.Activity, error)
}

// UserRepository handles app accounts in the wellness store.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

// JournalRepository stores journal entries and their aggregates.
type JournalRepository interface {
	Create(ctx context.Context, e *models.JournalEntry) error
	List(ctx context.Context, userID string, limit int) ([]models.JournalEntry, error)
	Stats(ctx context.Context, userID string) (stats.JournalStats, error)
}

// MoodRepository stores self-reported mood entries.
type MoodRepository interface {
	Create(ctx context.Context, e *models.MoodEntry) error
	History(ctx context.Context, userID string, limit int) ([]models.MoodEntry, error)

	// DailyAverages returns per-day mood averages over the trailing window,
	// including zero-count points for days without entries.
	DailyAverages(ctx context.Context, userID string, days int) ([]models.MoodTrendPoint, error)

	// Summary aggregates average, count and the change of the last 7 days
	// against the overall average.
	Summary(ctx context.Context, userID string) (*models.MoodSummary, error)
}

// SleepRepository stores sleep entries.
type SleepRepository interface {
	Create(ctx context.Context, e *models.SleepEntry) error
	History(ctx context.Context, userID string, limit int) ([]models.SleepEntry, error)
	Summary(ctx context.Context, userID string) (*models.SleepSummary, error)
}

// MeditationRepository stores meditation sessions.
type MeditationRepository interface {
	Create(ctx context.Context, s *models.MeditationSession) error
	History(ctx context.Context, userID string, limit int) ([]models.MeditationSession, error)
	Stats(ctx context.Context, userID string) (stats.MeditationStats, error)
}

// GoalRepository stores wellness goals.
type GoalRepository interface {
	Create(ctx context.Context, g *models.Goal) error
	List(ctx context.Context, userID string) ([]models.Goal, error)

	// UpdateProgress sets progress and flips completed when the target is
	// reached. Returns false when the goal does not belong to the user.
	UpdateProgress(ctx context.Context, id int64, userID string, progress int) (bool, error)
}

// CommunityRepository stores community board posts.
type CommunityRepository interface {
	Create(ctx context.Context, p *models.CommunityPost) error
	ListRecent(ctx context.Context, limit int) ([]models.CommunityPost, error)
	Like(ctx context.Context, id int64) (bool, error)
}

// ChatRepository stores chatbot transcripts.
type ChatRepository interface {
	SaveTurn(ctx context.Context, t *models.ChatTurn) error
	History(ctx context.Context, userID string, limit int) ([]models.ChatTurn, error)
}

// RPGRepository stores wellness-RPG characters, quest completions and
// skill practice.
type RPGRepository interface {
	CreateCharacter(ctx context.Context, c *models.RPGCharacter) error
	LatestCharacter(ctx context.Context, userID string) (*models.RPGCharacter, error)
	AddExperience(ctx context.Context, characterID int64, xp, level int) error
	RecordQuest(ctx context.Context, q *models.RPGQuest) error
	ListQuests(ctx context.Context, userID string, limit int) ([]models.RPGQuest, error)
	CountQuestsSince(ctx context.Context, userID, questName string, since time.Time) (int, error)
	PracticeSkill(ctx context.Context, userID, skillName string, points int, level int, at time.Time) error
	GetSkill(ctx context.Context, userID, skillName string) (*models.RPGSkill, error)
	ListSkills(ctx context.Context, userID string) ([]models.RPGSkill, error)
}

package models

import "time"

// Request status values. Transitions are restricted to
// pending -> accepted and pending -> declined; both targets are terminal.
const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
	RequestStatusDeclined = "declined"
)

// Notification type tags.
const (
	NotificationTypeRequestAccepted = "request_accepted"
	NotificationTypeRequestDeclined = "request_declined"
	NotificationTypeMessage         = "message"
)

// TherapistCapacity is the maximum simultaneous active relationships a
// single therapist may hold.
const TherapistCapacity = 50

// Profile is a record in the care store: either a therapist or a client.
//
// IDs are opaque strings. Therapists registered through the API get a
// generated UUID; clients assigned before ever signing up get a shadow
// profile keyed by whatever ID the caller supplied.
type Profile struct {
	ID             string    `json:"id"`
	DisplayName    string    `json:"display_name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	IsTherapist    bool      `json:"is_therapist"`
	IsClient       bool      `json:"is_client"`
	Specialization string    `json:"specialization,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	Available      bool      `json:"available"`
	CreatedAt      time.Time `json:"created_at"`
}

// TherapistRequest is a client's ask to start therapy with a specific
// therapist. Requests are never deleted once terminal; history is retained.
type TherapistRequest struct {
	ID            string     `json:"id"`
	ClientID      string     `json:"client_id"`
	TherapistID   string     `json:"therapist_id"`
	ClientName    string     `json:"client_name"`
	ClientEmail   string     `json:"client_email"`
	ClientPhone   string     `json:"client_phone"`
	Description   string     `json:"problem_description"`
	AppointmentAt *time.Time `json:"appointment_at,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (r *TherapistRequest) IsPending() bool { return r.Status == RequestStatusPending }

// Relationship is the authoritative record that a client is assigned to a
// therapist. The (client, therapist) pair is unique; a client may hold
// relationships with several therapists.
type Relationship struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	TherapistID string    `json:"therapist_id"`
	Active      bool      `json:"active"`
	AssignedAt  time.Time `json:"assigned_at"`
}

// Message is one directional communication between two profiles.
type Message struct {
	ID          int64     `json:"id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Content     string    `json:"content"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

// Notification is a one-way log entry surfaced to a user. RequestID is set
// for request-status notices and keys them for idempotent writes.
type Notification struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	RequestID *string   `json:"request_id,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationSettings holds per-user delivery toggles.
type NotificationSettings struct {
	UserID               string `json:"user_id"`
	EmailNotifications   bool   `json:"email_notifications"`
	PushNotifications    bool   `json:"push_notifications"`
	MessageNotifications bool   `json:"message_notifications"`
}

// SessionNote is a therapist's note about a session with a client.
type SessionNote struct {
	ID          int64     `json:"id"`
	TherapistID string    `json:"therapist_id"`
	ClientID    string    `json:"client_id"`
	Note        string    `json:"note"`
	Status      string    `json:"status,omitempty"` // attended, cancelled, no_show
	Date        time.Time `json:"date"`
}

// Activity is an append-only audit trail entry.
type Activity struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

// ClientSummary is the joined row returned by the therapist's client list:
// a Relationship joined with Profile and last-session metadata.
type ClientSummary struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	AssignedAt  time.Time  `json:"assigned_at"`
	LastSession *time.Time `json:"last_session,omitempty"`
}

// TherapistAnalytics aggregates a therapist's activity over a period.
type TherapistAnalytics struct {
	SessionCount int `json:"session_count"`
	Attended     int `json:"attended"`
	Cancelled    int `json:"cancelled"`
	NoShow       int `json:"no_show"`
	MessageCount int `json:"message_count"`
}

// User is an app account in the wellness store. Wellness rows key off the
// string form of the user ID so the two stores can share identifiers.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Age          *int       `json:"age,omitempty"`
	Gender       string     `json:"gender,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// JournalEntry is a free-text journal entry with a sentiment-derived mood
// score in [1, 10] and the mood keywords detected in the text.
type JournalEntry struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	EntryType string    `json:"entry_type"`
	Content   string    `json:"content"`
	MoodScore float64   `json:"mood_score"`
	Keywords  string    `json:"keywords,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MoodEntry is a self-reported mood rating.
type MoodEntry struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Score     int       `json:"mood_score"`
	Notes     string    `json:"notes,omitempty"`
	Tags      string    `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SleepEntry records one night of sleep.
type SleepEntry struct {
	ID      int64     `json:"id"`
	UserID  string    `json:"user_id"`
	Date    time.Time `json:"date"`
	Hours   float64   `json:"hours"`
	Quality int       `json:"quality"`
	Notes   string    `json:"notes,omitempty"`
}

// MeditationSession records one completed meditation.
type MeditationSession struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	SessionType string    `json:"session_type"`
	Minutes     int       `json:"minutes"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Goal is a wellness goal with progress toward a numeric target.
type Goal struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type"`
	TargetDate  time.Time `json:"target_date"`
	TargetValue int       `json:"target_value"`
	Progress    int       `json:"progress"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// CommunityPost is a post on the community board.
type CommunityPost struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatTurn is one chatbot exchange: the user message and the model reply.
type ChatTurn struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

// RPG archetypes. Each maps a pair of character stats to wellness themes.
const (
	ArchetypeWarrior = "Warrior"
	ArchetypeMage    = "Mage"
	ArchetypeRogue   = "Rogue"
	ArchetypeHealer  = "Healer"
)

// RPGCharacter is a user's wellness hero. Stats are the four base
// attributes (Resilience, Focus, Creativity, Empathy) rated 1-10 at
// creation; experience accrues from completed quests and level derives
// from it.
type RPGCharacter struct {
	ID         int64          `json:"id"`
	UserID     string         `json:"user_id"`
	Name       string         `json:"name"`
	Archetype  string         `json:"archetype"`
	Stats      map[string]int `json:"stats"`
	Level      int            `json:"level"`
	Experience int            `json:"experience"`
	CreatedAt  time.Time      `json:"created_at"`
}

// RPGQuest is one completed wellness quest and the XP it earned.
type RPGQuest struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	QuestName   string    `json:"quest_name"`
	XPEarned    int       `json:"xp_earned"`
	CompletedAt time.Time `json:"completed_at"`
}

// QuestTemplate is a quest on offer: daily or weekly, worth fixed XP.
type QuestTemplate struct {
	Name string `json:"name"`
	XP   int    `json:"xp"`
	Type string `json:"type"`
}

// RPGSkill tracks practice toward a named skill. Progress rolls over into
// a level every hundred points.
type RPGSkill struct {
	ID            int64      `json:"id"`
	UserID        string     `json:"user_id"`
	SkillName     string     `json:"skill_name"`
	Level         int        `json:"level"`
	Progress      int        `json:"progress"`
	LastPracticed *time.Time `json:"last_practiced,omitempty"`
}

// RPGProgression is the progression view: the hero, recent quest
// completions, skill levels and the two stats the archetype emphasises.
type RPGProgression struct {
	Character  *RPGCharacter `json:"character"`
	Quests     []RPGQuest    `json:"quests"`
	Skills     []RPGSkill    `json:"skills"`
	FocusStats []string      `json:"focus_stats"`
}

// MoodTrendPoint is a daily mood average for trend charts. Days without
// entries are emitted with Count 0 so charts keep a continuous axis.
type MoodTrendPoint struct {
	Date    string  `json:"date"`
	AvgMood float64 `json:"mood"`
	Count   int     `json:"entry_count"`
}

// DashboardData is the aggregate the wellness dashboard renders from.
type DashboardData struct {
	Mood       MoodSummary       `json:"mood"`
	Sleep      SleepSummary      `json:"sleep"`
	Meditation MeditationSummary `json:"meditation"`
}

type MoodSummary struct {
	Average    float64          `json:"average"`
	Count      int              `json:"count"`
	WeekChange float64          `json:"change"`
	History    []MoodTrendPoint `json:"history"`
}

type SleepSummary struct {
	AvgHours   float64 `json:"hours"`
	AvgQuality float64 `json:"quality"`
	WeekChange float64 `json:"change"`
}

type MeditationSummary struct {
	Sessions     int `json:"sessions"`
	TotalMinutes int `json:"minutes"`
}

package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Amaan112005/mindmate/internal/domain"
	"github.com/Amaan112005/mindmate/internal/models"
	"github.com/Amaan112005/mindmate/internal/repository"
	"github.com/Amaan112005/mindmate/internal/sentiment"
	"github.com/Amaan112005/mindmate/internal/stats"
)

// WellnessService covers the self-tracking features: journal, mood, sleep,
// meditation, goals and the dashboard that aggregates them. It is also the
// stats.Loader behind the redis stats cache.
type WellnessService struct {
	journal    repository.JournalRepository
	moods      repository.MoodRepository
	sleep      repository.SleepRepository
	meditation repository.MeditationRepository
	goals      repository.GoalRepository
	cache      *stats.Cache
	logger     *zap.Logger
}

func NewWellnessService(
	journal repository.JournalRepository,
	moods repository.MoodRepository,
	sleep repository.SleepRepository,
	meditation repository.MeditationRepository,
	goals repository.GoalRepository,
	logger *zap.Logger,
) *WellnessService {
	return &WellnessService{
		journal:    journal,
		moods:      moods,
		sleep:      sleep,
		meditation: meditation,
		goals:      goals,
		logger:     logger,
	}
}

// SetCache wires the stats cache after construction; the cache needs the
// service as its Loader, so the two are linked in main.
func (s *WellnessService) SetCache(c *stats.Cache) { s.cache = c }

// AddJournalEntry scores the text with the sentiment lexicon, persists the
// entry and invalidates the user's cached stats.
func (s *WellnessService) AddJournalEntry(ctx context.Context, userID, entryType, content string) (*models.JournalEntry, error) {
	if strings.TrimSpace(content) == "" {
		return nil, &domain.ValidationError{Field: "content", Reason: "must not be empty"}
	}
	if entryType == "" {
		entryType = "free"
	}

	e := &models.JournalEntry{
		UserID:    userID,
		EntryType: entryType,
		Content:   content,
		MoodScore: sentiment.MoodScore(content),
		Keywords:  strings.Join(sentiment.Keywords(content), ","),
	}
	if err := s.journal.Create(ctx, e); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx, userID)
	return e, nil
}

func (s *WellnessService) ListJournal(ctx context.Context, userID string, limit int) ([]models.JournalEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.journal.List(ctx, userID, limit)
}

// AddMood records a self-reported mood score between 1 and 10.
func (s *WellnessService) AddMood(ctx context.Context, userID string, score int, notes, tags string) (*models.MoodEntry, error) {
	if score < 1 || score > 10 {
		return nil, &domain.ValidationError{Field: "mood_score", Reason: "must be between 1 and 10"}
	}

	e := &models.MoodEntry{UserID: userID, Score: score, Notes: notes, Tags: tags}
	if err := s.moods.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *WellnessService) MoodHistory(ctx context.Context, userID string, limit int) ([]models.MoodEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.moods.History(ctx, userID, limit)
}

func (s *WellnessService) MoodTrends(ctx context.Context, userID string, days int) ([]models.MoodTrendPoint, error) {
	if days <= 0 || days > 90 {
		days = 30
	}
	return s.moods.DailyAverages(ctx, userID, days)
}

// AddSleep records a night of sleep.
func (s *WellnessService) AddSleep(ctx context.Context, userID string, date time.Time, hours float64, quality int, notes string) (*models.SleepEntry, error) {
	if hours <= 0 || hours > 24 {
		return nil, &domain.ValidationError{Field: "hours", Reason: "must be between 0 and 24"}
	}
	if quality < 1 || quality > 10 {
		return nil, &domain.ValidationError{Field: "quality", Reason: "must be between 1 and 10"}
	}

	e := &models.SleepEntry{UserID: userID, Date: date, Hours: hours, Quality: quality, Notes: notes}
	if err := s.sleep.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *WellnessService) SleepHistory(ctx context.Context, userID string, limit int) ([]models.SleepEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.sleep.History(ctx, userID, limit)
}

// LogMeditation records a completed session and invalidates cached stats.
func (s *WellnessService) LogMeditation(ctx context.Context, userID, sessionType string, minutes int, notes string) (*models.MeditationSession, error) {
	if minutes <= 0 {
		return nil, &domain.ValidationError{Field: "minutes", Reason: "must be positive"}
	}
	if sessionType == "" {
		sessionType = "breathing"
	}

	m := &models.MeditationSession{UserID: userID, SessionType: sessionType, Minutes: minutes, Notes: notes}
	if err := s.meditation.Create(ctx, m); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx, userID)
	return m, nil
}

func (s *WellnessService) MeditationHistory(ctx context.Context, userID string, limit int) ([]models.MeditationSession, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.meditation.History(ctx, userID, limit)
}

// CreateGoal registers a wellness goal.
func (s *WellnessService) CreateGoal(ctx context.Context, g *models.Goal) error {
	if strings.TrimSpace(g.Name) == "" {
		return &domain.ValidationError{Field: "name", Reason: "required"}
	}
	if g.TargetValue <= 0 {
		return &domain.ValidationError{Field: "target_value", Reason: "must be positive"}
	}
	return s.goals.Create(ctx, g)
}

func (s *WellnessService) ListGoals(ctx context.Context, userID string) ([]models.Goal, error) {
	return s.goals.List(ctx, userID)
}

// UpdateGoalProgress sets progress on the user's own goal; NotFoundError
// when the goal is missing or belongs to someone else.
func (s *WellnessService) UpdateGoalProgress(ctx context.Context, id int64, userID string, progress int) error {
	if progress < 0 {
		return &domain.ValidationError{Field: "progress", Reason: "must not be negative"}
	}
	ok, err := s.goals.UpdateProgress(ctx, id, userID, progress)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.NotFoundError{Entity: "goal"}
	}
	return nil
}

// Dashboard aggregates mood, sleep and meditation into one payload.
func (s *WellnessService) Dashboard(ctx context.Context, userID string) (*models.DashboardData, error) {
	mood, err := s.moods.Summary(ctx, userID)
	if err != nil {
		return nil, err
	}
	sleep, err := s.sleep.Summary(ctx, userID)
	if err != nil {
		return nil, err
	}
	meditation, err := s.meditation.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.DashboardData{
		Mood:  *mood,
		Sleep: *sleep,
		Meditation: models.MeditationSummary{
			Sessions:     meditation.Sessions,
			TotalMinutes: meditation.TotalMinutes,
		},
	}, nil
}

// Stats returns the cached journal and meditation aggregates.
func (s *WellnessService) Stats(ctx context.Context, userID string, force bool) (*stats.Snapshot, error) {
	return s.cache.Refresh(ctx, userID, force)
}

// JournalStats implements stats.Loader.
func (s *WellnessService) JournalStats(ctx context.Context, userID string) (stats.JournalStats, error) {
	return s.journal.Stats(ctx, userID)
}

// MeditationStats implements stats.Loader.
func (s *WellnessService) MeditationStats(ctx context.Context, userID string) (stats.MeditationStats, error) {
	return s.meditation.Stats(ctx, userID)
}

func (s *WellnessService) invalidateStats(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("stats invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Amaan112005/mindmate/internal/domain"
	"github.com/Amaan112005/mindmate/internal/models"
	"github.com/Amaan112005/mindmate/internal/stats"
)

type fakeJournalRepo struct {
	entries []models.JournalEntry
}

func (f *fakeJournalRepo) Create(_ context.Context, e *models.JournalEntry) error {
	e.ID = int64(len(f.entries) + 1)
	e.CreatedAt = time.Now()
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeJournalRepo) List(_ context.Context, userID string, limit int) ([]models.JournalEntry, error) {
	out := make([]models.JournalEntry, 0)
	for _, e := range f.entries {
		if e.UserID == userID && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeJournalRepo) Stats(_ context.Context, userID string) (stats.JournalStats, error) {
	var st stats.JournalStats
	var total float64
	for _, e := range f.entries {
		if e.UserID == userID {
			st.TotalEntries++
			total += e.MoodScore
		}
	}
	if st.TotalEntries > 0 {
		st.AvgMood = total / float64(st.TotalEntries)
	}
	return st, nil
}

type fakeGoalRepo struct {
	goals []models.Goal
}

func (f *fakeGoalRepo) Create(_ context.Context, g *models.Goal) error {
	g.ID = int64(len(f.goals) + 1)
	f.goals = append(f.goals, *g)
	return nil
}

func (f *fakeGoalRepo) List(_ context.Context, userID string) ([]models.Goal, error) {
	out := make([]models.Goal, 0)
	for _, g := range f.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGoalRepo) UpdateProgress(_ context.Context, id int64, userID string, progress int) (bool, error) {
	for i := range f.goals {
		if f.goals[i].ID == id && f.goals[i].UserID == userID {
			f.goals[i].Progress = progress
			f.goals[i].Completed = progress >= f.goals[i].TargetValue
			return true, nil
		}
	}
	return false, nil
}

func newWellnessFixture(t *testing.T) (*WellnessService, *fakeJournalRepo, *fakeGoalRepo) {
	t.Helper()
	journal := &fakeJournalRepo{}
	goals := &fakeGoalRepo{}
	svc := NewWellnessService(journal, nil, nil, nil, goals, zap.NewNop())
	return svc, journal, goals
}

func TestAddJournalEntryScoresSentiment(t *testing.T) {
	svc, journal, _ := newWellnessFixture(t)

	entry, err := svc.AddJournalEntry(context.Background(), "u1", "", "I feel happy and grateful today")
	require.NoError(t, err)
	assert.Greater(t, entry.MoodScore, 5.5)
	assert.Contains(t, entry.Keywords, "happy")
	assert.Equal(t, "free", entry.EntryType)
	require.Len(t, journal.entries, 1)
}

func TestAddJournalEntryEmptyContent(t *testing.T) {
	svc, journal, _ := newWellnessFixture(t)

	_, err := svc.AddJournalEntry(context.Background(), "u1", "", "  ")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, journal.entries)
}

func TestGoalProgressCompletion(t *testing.T) {
	svc, _, _ := newWellnessFixture(t)
	ctx := context.Background()

	goal := &models.Goal{
		UserID:      "u1",
		Name:        "meditate daily",
		Type:        "meditation",
		TargetDate:  time.Now().AddDate(0, 1, 0),
		TargetValue: 10,
	}
	require.NoError(t, svc.CreateGoal(ctx, goal))

	require.NoError(t, svc.UpdateGoalProgress(ctx, goal.ID, "u1", 4))
	listed, err := svc.ListGoals(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.False(t, listed[0].Completed)

	require.NoError(t, svc.UpdateGoalProgress(ctx, goal.ID, "u1", 10))
	listed, err = svc.ListGoals(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, listed[0].Completed)

	// someone else's goal is invisible
	var nf *domain.NotFoundError
	err = svc.UpdateGoalProgress(ctx, goal.ID, "u2", 5)
	require.ErrorAs(t, err, &nf)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Amaan112005/mindmate/internal/domain"
	"github.com/Amaan112005/mindmate/internal/models"
)

func validStats() map[string]int {
	return map[string]int{"Resilience": 5, "Focus": 7, "Creativity": 3, "Empathy": 6}
}

func newRPGFixture() (*RPGService, *fakeRPG) {
	repo := newFakeRPG()
	return NewRPGService(repo, zap.NewNop()), repo
}

func TestCreateCharacterStartsAtLevelOne(t *testing.T) {
	svc, _ := newRPGFixture()

	char, err := svc.CreateCharacter(context.Background(), "u1", "Aria", models.ArchetypeMage, validStats())
	require.NoError(t, err)
	require.Equal(t, 1, char.Level)
	require.Equal(t, 0, char.Experience)
	require.Equal(t, models.ArchetypeMage, char.Archetype)
}

func TestCreateCharacterRejectsBadArchetype(t *testing.T) {
	svc, _ := newRPGFixture()

	_, err := svc.CreateCharacter(context.Background(), "u1", "Aria", "Bard", validStats())
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "archetype", verr.Field)
}

func TestCreateCharacterRejectsOutOfRangeStat(t *testing.T) {
	svc, _ := newRPGFixture()

	stats := validStats()
	stats["Focus"] = 11
	_, err := svc.CreateCharacter(context.Background(), "u1", "Aria", models.ArchetypeWarrior, stats)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "stats", verr.Field)
}

func TestCreateCharacterRejectsMissingStat(t *testing.T) {
	svc, _ := newRPGFixture()

	stats := validStats()
	delete(stats, "Empathy")
	_, err := svc.CreateCharacter(context.Background(), "u1", "Aria", models.ArchetypeHealer, stats)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCompleteQuestAccruesExperience(t *testing.T) {
	svc, repo := newRPGFixture()
	_, err := svc.CreateCharacter(context.Background(), "u1", "Aria", models.ArchetypeWarrior, validStats())
	require.NoError(t, err)

	quest, err := svc.CompleteQuest(context.Background(), "u1", "Sleep Routine")
	require.NoError(t, err)
	require.Equal(t, 100, quest.XPEarned)

	char, err := repo.LatestCharacter(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, 100, char.Experience)
	require.Equal(t, 2, char.Level)
}

func TestCompleteQuestDailyCooldown(t *testing.T) {
	svc, _ := newRPGFixture()
	_, err := svc.CreateCharacter(context.Background(), "u1", "Aria", models.ArchetypeRogue, validStats())
	require.NoError(t, err)

	_, err = svc.CompleteQuest(context.Background(), "u1", "Morning Meditation")
	require.NoError(t, err)

	_, err = svc.CompleteQuest(context.Background(), "u1", "Morning Meditation")
	var cerr *domain.QuestCooldownError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, "daily", cerr.Window)
}

func TestCompleteQuestAfterWindowElapsed(t *testing.T) {
	svc, _ := newRPGFixture()
	_, err := svc.CreateCharacter(context.Background(), "u1", "Aria", models.ArchetypeRogue, validStats())
	require.NoError(t, err)

	_, err = svc.CompleteQuest(context.Background(), "u1", "Gratitude Journal")
	require.NoError(t, err)

	// A clock a day ahead puts the first completion outside the window.
	svc.now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	_, err = svc.CompleteQuest(context.Background(), "u1", "Gratitude Journal")
	require.NoError(t, err)
}

func TestCompleteQuestUnknownName(t *testing.T) {
	svc, _ := newRPGFixture()
	_, err := svc.CreateCharacter(context.Background(), "u1", "Aria", models.ArchetypeMage, validStats())
	require.NoError(t, err)

	_, err = svc.CompleteQuest(context.Background(), "u1", "Dragon Slaying")
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "quest", nf.Entity)
}

func TestCompleteQuestRequiresCharacter(t *testing.T) {
	svc, _ := newRPGFixture()

	_, err := svc.CompleteQuest(context.Background(), "u1", "Morning Meditation")
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "character", nf.Entity)
}

func TestPracticeSkillRollsOverIntoLevels(t *testing.T) {
	svc, _ := newRPGFixture()

	sk, err := svc.PracticeSkill(context.Background(), "u1", "Breathing", 60)
	require.NoError(t, err)
	require.Equal(t, 1, sk.Level)
	require.Equal(t, 60, sk.Progress)

	sk, err = svc.PracticeSkill(context.Background(), "u1", "Breathing", 60)
	require.NoError(t, err)
	require.Equal(t, 2, sk.Level)
	require.Equal(t, 20, sk.Progress)
}

func TestPracticeSkillRejectsNonPositivePoints(t *testing.T) {
	svc, _ := newRPGFixture()

	_, err := svc.PracticeSkill(context.Background(), "u1", "Breathing", 0)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestProgressionReportsArchetypeFocus(t *testing.T) {
	svc, _ := newRPGFixture()
	_, err := svc.CreateCharacter(context.Background(), "u1", "Aria", models.ArchetypeHealer, validStats())
	require.NoError(t, err)
	_, err = svc.CompleteQuest(context.Background(), "u1", "Gratitude Journal")
	require.NoError(t, err)
	_, err = svc.PracticeSkill(context.Background(), "u1", "Journaling", 30)
	require.NoError(t, err)

	prog, err := svc.Progression(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, "Aria", prog.Character.Name)
	require.Len(t, prog.Quests, 1)
	require.Len(t, prog.Skills, 1)
	require.Equal(t, []string{"Empathy", "Resilience"}, prog.FocusStats)
}

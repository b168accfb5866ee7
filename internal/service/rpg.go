package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Amaan112005/mindmate/internal/domain"
	"github.com/Amaan112005/mindmate/internal/models"
	"github.com/Amaan112005/mindmate/internal/repository"
)

// xpPerLevel is the experience span of one character level and the
// progress span of one skill level.
const xpPerLevel = 100

const questHistoryLimit = 20

// questCatalog is the fixed set of wellness quests on offer. Daily quests
// can be completed once per rolling 24 hours, weekly ones once per rolling
// 7 days.
var questCatalog = []models.QuestTemplate{
	{Name: "Morning Meditation", XP: 50, Type: "daily"},
	{Name: "Gratitude Journal", XP: 30, Type: "daily"},
	{Name: "Sleep Routine", XP: 100, Type: "weekly"},
}

// statNames are the four base attributes every character is rated on.
var statNames = []string{"Resilience", "Focus", "Creativity", "Empathy"}

// archetypeFocus names the two stats each archetype emphasises in the
// progression view.
var archetypeFocus = map[string][]string{
	models.ArchetypeWarrior: {"Resilience", "Focus"},
	models.ArchetypeMage:    {"Creativity", "Focus"},
	models.ArchetypeRogue:   {"Creativity", "Empathy"},
	models.ArchetypeHealer:  {"Empathy", "Resilience"},
}

// RPGService gamifies the wellness routine: users create a character,
// earn XP by completing daily and weekly quests, and level up skills
// through practice.
type RPGService struct {
	repo   repository.RPGRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewRPGService(repo repository.RPGRepository, logger *zap.Logger) *RPGService {
	return &RPGService{repo: repo, logger: logger, now: time.Now}
}

// CreateCharacter validates the archetype and the 1-10 stat ratings and
// persists a fresh level-1 character.
func (s *RPGService) CreateCharacter(ctx context.Context, userID, name, archetype string, stats map[string]int) (*models.RPGCharacter, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if _, ok := archetypeFocus[archetype]; !ok {
		return nil, &domain.ValidationError{Field: "archetype", Reason: "must be one of Warrior, Mage, Rogue, Healer"}
	}
	for _, stat := range statNames {
		v, ok := stats[stat]
		if !ok {
			return nil, &domain.ValidationError{Field: "stats", Reason: "missing rating for " + stat}
		}
		if v < 1 || v > 10 {
			return nil, &domain.ValidationError{Field: "stats", Reason: stat + " must be between 1 and 10"}
		}
	}
	if len(stats) != len(statNames) {
		return nil, &domain.ValidationError{Field: "stats", Reason: "unknown stat name"}
	}

	c := &models.RPGCharacter{
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		Archetype: archetype,
		Stats:     stats,
		Level:     1,
	}
	if err := s.repo.CreateCharacter(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("character created",
		zap.String("user_id", userID),
		zap.String("archetype", archetype))
	return c, nil
}

// QuestCatalog lists the quests on offer.
func (s *RPGService) QuestCatalog() []models.QuestTemplate {
	return questCatalog
}

// CompleteQuest records a quest completion and credits its XP to the
// user's character, leveling it up when an XP threshold is crossed. A
// quest can be completed once per window: the last 24 hours for daily
// quests, the last 7 days for weekly ones.
func (s *RPGService) CompleteQuest(ctx context.Context, userID, questName string) (*models.RPGQuest, error) {
	tmpl := findQuest(questName)
	if tmpl == nil {
		return nil, &domain.NotFoundError{Entity: "quest"}
	}

	char, err := s.repo.LatestCharacter(ctx, userID)
	if err != nil {
		return nil, err
	}
	if char == nil {
		return nil, &domain.NotFoundError{Entity: "character"}
	}

	window := 24 * time.Hour
	if tmpl.Type == "weekly" {
		window = 7 * 24 * time.Hour
	}
	n, err := s.repo.CountQuestsSince(ctx, userID, tmpl.Name, s.now().Add(-window))
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, &domain.QuestCooldownError{QuestName: tmpl.Name, Window: tmpl.Type}
	}

	quest := &models.RPGQuest{UserID: userID, QuestName: tmpl.Name, XPEarned: tmpl.XP}
	if err := s.repo.RecordQuest(ctx, quest); err != nil {
		return nil, err
	}

	xp := char.Experience + tmpl.XP
	level := 1 + xp/xpPerLevel
	if err := s.repo.AddExperience(ctx, char.ID, xp, level); err != nil {
		return nil, err
	}
	if level > char.Level {
		s.logger.Info("character leveled up",
			zap.String("user_id", userID),
			zap.Int("level", level))
	}
	return quest, nil
}

// PracticeSkill adds practice points to a named skill, creating it at
// level 1 on first practice. Every hundred accumulated points converts
// into a skill level.
func (s *RPGService) PracticeSkill(ctx context.Context, userID, skillName string, points int) (*models.RPGSkill, error) {
	skillName = strings.TrimSpace(skillName)
	if skillName == "" {
		return nil, &domain.ValidationError{Field: "skill", Reason: "must not be empty"}
	}
	if points < 1 {
		return nil, &domain.ValidationError{Field: "points", Reason: "must be positive"}
	}

	existing, err := s.repo.GetSkill(ctx, userID, skillName)
	if err != nil {
		return nil, err
	}
	total := points
	if existing != nil {
		total += (existing.Level-1)*xpPerLevel + existing.Progress
	}
	level := 1 + total/xpPerLevel
	progress := total % xpPerLevel

	at := s.now().UTC()
	if err := s.repo.PracticeSkill(ctx, userID, skillName, progress, level, at); err != nil {
		return nil, err
	}
	return s.repo.GetSkill(ctx, userID, skillName)
}

// Progression assembles the hero view: latest character, recent quest
// completions, skill levels and the archetype's focus stats.
func (s *RPGService) Progression(ctx context.Context, userID string) (*models.RPGProgression, error) {
	char, err := s.repo.LatestCharacter(ctx, userID)
	if err != nil {
		return nil, err
	}
	if char == nil {
		return nil, &domain.NotFoundError{Entity: "character"}
	}

	quests, err := s.repo.ListQuests(ctx, userID, questHistoryLimit)
	if err != nil {
		return nil, err
	}
	skills, err := s.repo.ListSkills(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.RPGProgression{
		Character:  char,
		Quests:     quests,
		Skills:     skills,
		FocusStats: archetypeFocus[char.Archetype],
	}, nil
}

func findQuest(name string) *models.QuestTemplate {
	for i := range questCatalog {
		if questCatalog[i].Name == name {
			return &questCatalog[i]
		}
	}
	return nil
}

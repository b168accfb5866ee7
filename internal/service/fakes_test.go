package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Amaan112005/mindmate/internal/models"
)

// In-memory repositories for service tests. They mirror the store
// contracts: (nil, nil) on absent rows, rows-affected booleans on guarded
// writes.

type fakeProfiles struct {
	byID map[string]*models.Profile
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{byID: make(map[string]*models.Profile)}
}

func (f *fakeProfiles) Create(_ context.Context, p *models.Profile) error {
	if _, ok := f.byID[p.ID]; ok {
		return fmt.Errorf("profile %s exists", p.ID)
	}
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakeProfiles) UpsertClient(_ context.Context, p *models.Profile) error {
	if existing, ok := f.byID[p.ID]; ok {
		existing.DisplayName = p.DisplayName
		existing.Email = p.Email
		existing.IsClient = true
		return nil
	}
	cp := *p
	cp.IsClient = true
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakeProfiles) GetByID(_ context.Context, id string) (*models.Profile, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) GetTherapistByEmail(_ context.Context, email string) (*models.Profile, error) {
	for _, p := range f.byID {
		if p.Email == email && p.IsTherapist {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProfiles) ListTherapists(_ context.Context, specialization string) ([]models.Profile, error) {
	out := make([]models.Profile, 0)
	for _, p := range f.byID {
		if p.IsTherapist && p.Available && (specialization == "" || p.Specialization == specialization) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProfiles) Update(_ context.Context, p *models.Profile) error {
	if _, ok := f.byID[p.ID]; !ok {
		return fmt.Errorf("profile %s missing", p.ID)
	}
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

type fakeRequests struct {
	byID map[string]*models.TherapistRequest
	seq  int
}

func newFakeRequests() *fakeRequests {
	return &fakeRequests{byID: make(map[string]*models.TherapistRequest)}
}

func (f *fakeRequests) Create(_ context.Context, r *models.TherapistRequest) error {
	f.seq++
	r.ID = "req-" + strconv.Itoa(f.seq)
	r.CreatedAt = time.Now()
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeRequests) GetByID(_ context.Context, id string) (*models.TherapistRequest, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRequests) ListPendingByTherapist(_ context.Context, therapistID string) ([]models.TherapistRequest, error) {
	out := make([]models.TherapistRequest, 0)
	for _, r := range f.byID {
		if r.TherapistID == therapistID && r.Status == models.RequestStatusPending {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRequests) ListPendingByClient(_ context.Context, clientID string) ([]models.TherapistRequest, error) {
	out := make([]models.TherapistRequest, 0)
	for _, r := range f.byID {
		if r.ClientID == clientID && r.Status == models.RequestStatusPending {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRequests) UpdateStatusFromPending(_ context.Context, id, status string) (bool, error) {
	r, ok := f.byID[id]
	if !ok || r.Status != models.RequestStatusPending {
		return false, nil
	}
	r.Status = status
	return true, nil
}

func (f *fakeRequests) DeletePending(_ context.Context, id, clientID string) (bool, error) {
	r, ok := f.byID[id]
	if !ok || r.ClientID != clientID || r.Status != models.RequestStatusPending {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

type fakeRelationships struct {
	pairs []models.Relationship
	seq   int
}

func newFakeRelationships() *fakeRelationships {
	return &fakeRelationships{}
}

func (f *fakeRelationships) Create(_ context.Context, r *models.Relationship) error {
	for _, existing := range f.pairs {
		if existing.ClientID == r.ClientID && existing.TherapistID == r.TherapistID {
			return fmt.Errorf("unique violation: %s/%s", r.ClientID, r.TherapistID)
		}
	}
	f.seq++
	r.ID = "rel-" + strconv.Itoa(f.seq)
	r.Active = true
	r.AssignedAt = time.Now()
	f.pairs = append(f.pairs, *r)
	return nil
}

func (f *fakeRelationships) Exists(_ context.Context, clientID, therapistID string) (bool, error) {
	for _, r := range f.pairs {
		if r.ClientID == clientID && r.TherapistID == therapistID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRelationships) CountByTherapist(_ context.Context, therapistID string) (int, error) {
	n := 0
	for _, r := range f.pairs {
		if r.TherapistID == therapistID && r.Active {
			n++
		}
	}
	return n, nil
}

func (f *fakeRelationships) Delete(_ context.Context, clientID, therapistID string) (bool, error) {
	for i, r := range f.pairs {
		if r.ClientID == clientID && r.TherapistID == therapistID {
			f.pairs = append(f.pairs[:i], f.pairs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRelationships) FirstTherapistIDFor(_ context.Context, clientID string) (string, error) {
	for _, r := range f.pairs {
		if r.ClientID == clientID && r.Active {
			return r.TherapistID, nil
		}
	}
	return "", nil
}

func (f *fakeRelationships) ListClientSummaries(_ context.Context, therapistID string, limit, offset int) ([]models.ClientSummary, error) {
	out := make([]models.ClientSummary, 0)
	for _, r := range f.pairs {
		if r.TherapistID == therapistID && r.Active {
			out = append(out, models.ClientSummary{ID: r.ClientID, AssignedAt: r.AssignedAt})
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeNotifications struct {
	items     []models.Notification
	byRequest map[string]bool
	settings  map[string]models.NotificationSettings
	seq       int64
}

func newFakeNotifications() *fakeNotifications {
	return &fakeNotifications{
		byRequest: make(map[string]bool),
		settings:  make(map[string]models.NotificationSettings),
	}
}

func (f *fakeNotifications) Create(_ context.Context, n *models.Notification) error {
	if n.RequestID != nil {
		if f.byRequest[*n.RequestID] {
			return nil
		}
		f.byRequest[*n.RequestID] = true
	}
	f.seq++
	n.ID = f.seq
	n.CreatedAt = time.Now()
	f.items = append(f.items, *n)
	return nil
}

func (f *fakeNotifications) ListByUser(_ context.Context, userID string, limit int) ([]models.Notification, error) {
	out := make([]models.Notification, 0)
	for i := len(f.items) - 1; i >= 0 && len(out) < limit; i-- {
		if f.items[i].UserID == userID {
			out = append(out, f.items[i])
		}
	}
	return out, nil
}

func (f *fakeNotifications) MarkAllRead(_ context.Context, userID string) error {
	for i := range f.items {
		if f.items[i].UserID == userID {
			f.items[i].Read = true
		}
	}
	return nil
}

func (f *fakeNotifications) CountUnread(_ context.Context, userID string) (int, error) {
	n := 0
	for _, item := range f.items {
		if item.UserID == userID && !item.Read {
			n++
		}
	}
	return n, nil
}

func (f *fakeNotifications) GetSettings(_ context.Context, userID string) (*models.NotificationSettings, error) {
	s, ok := f.settings[userID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeNotifications) SaveSettings(_ context.Context, s *models.NotificationSettings) error {
	f.settings[s.UserID] = *s
	return nil
}

type fakeMessages struct {
	items []models.Message
	seq   int64
}

func newFakeMessages() *fakeMessages {
	return &fakeMessages{}
}

func (f *fakeMessages) Create(_ context.Context, m *models.Message) error {
	f.seq++
	m.ID = f.seq
	m.CreatedAt = time.Now().Add(time.Duration(f.seq) * time.Millisecond)
	f.items = append(f.items, *m)
	return nil
}

func (f *fakeMessages) ListBetween(_ context.Context, a, b string, limit int, ascending bool) ([]models.Message, error) {
	out := make([]models.Message, 0)
	for _, m := range f.items {
		if (m.SenderID == a && m.RecipientID == b) || (m.SenderID == b && m.RecipientID == a) {
			out = append(out, m)
		}
	}
	// items are already insertion-ordered; reverse for descending
	if !ascending {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeMessages) MarkRead(_ context.Context, recipientID, senderID string) error {
	for i := range f.items {
		if f.items[i].RecipientID == recipientID && f.items[i].SenderID == senderID {
			f.items[i].Read = true
		}
	}
	return nil
}

func (f *fakeMessages) CountUnread(_ context.Context, userID string) (int, error) {
	n := 0
	for _, m := range f.items {
		if m.RecipientID == userID && !m.Read {
			n++
		}
	}
	return n, nil
}

func (f *fakeMessages) CountUnreadFrom(_ context.Context, userID, senderID string) (int, error) {
	n := 0
	for _, m := range f.items {
		if m.RecipientID == userID && m.SenderID == senderID && !m.Read {
			n++
		}
	}
	return n, nil
}

type fakeRPG struct {
	chars  []*models.RPGCharacter
	quests []models.RPGQuest
	skills map[string]*models.RPGSkill
	nextID int64
}

func newFakeRPG() *fakeRPG {
	return &fakeRPG{skills: make(map[string]*models.RPGSkill)}
}

func (f *fakeRPG) CreateCharacter(_ context.Context, c *models.RPGCharacter) error {
	f.nextID++
	c.ID = f.nextID
	c.CreatedAt = time.Now().UTC()
	cp := *c
	f.chars = append(f.chars, &cp)
	return nil
}

func (f *fakeRPG) LatestCharacter(_ context.Context, userID string) (*models.RPGCharacter, error) {
	for i := len(f.chars) - 1; i >= 0; i-- {
		if f.chars[i].UserID == userID {
			cp := *f.chars[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRPG) AddExperience(_ context.Context, characterID int64, xp, level int) error {
	for _, c := range f.chars {
		if c.ID == characterID {
			c.Experience = xp
			c.Level = level
		}
	}
	return nil
}

func (f *fakeRPG) RecordQuest(_ context.Context, q *models.RPGQuest) error {
	f.nextID++
	q.ID = f.nextID
	q.CompletedAt = time.Now().UTC()
	f.quests = append(f.quests, *q)
	return nil
}

func (f *fakeRPG) ListQuests(_ context.Context, userID string, limit int) ([]models.RPGQuest, error) {
	out := make([]models.RPGQuest, 0)
	for i := len(f.quests) - 1; i >= 0 && len(out) < limit; i-- {
		if f.quests[i].UserID == userID {
			out = append(out, f.quests[i])
		}
	}
	return out, nil
}

func (f *fakeRPG) CountQuestsSince(_ context.Context, userID, questName string, since time.Time) (int, error) {
	n := 0
	for _, q := range f.quests {
		if q.UserID == userID && q.QuestName == questName && !q.CompletedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeRPG) PracticeSkill(_ context.Context, userID, skillName string, points, level int, at time.Time) error {
	key := userID + "/" + skillName
	sk, ok := f.skills[key]
	if !ok {
		f.nextID++
		sk = &models.RPGSkill{ID: f.nextID, UserID: userID, SkillName: skillName}
		f.skills[key] = sk
	}
	sk.Progress = points
	sk.Level = level
	sk.LastPracticed = &at
	return nil
}

func (f *fakeRPG) GetSkill(_ context.Context, userID, skillName string) (*models.RPGSkill, error) {
	sk, ok := f.skills[userID+"/"+skillName]
	if !ok {
		return nil, nil
	}
	cp := *sk
	return &cp, nil
}

func (f *fakeRPG) ListSkills(_ context.Context, userID string) ([]models.RPGSkill, error) {
	out := make([]models.RPGSkill, 0)
	for _, sk := range f.skills {
		if sk.UserID == userID {
			out = append(out, *sk)
		}
	}
	return out, nil
}

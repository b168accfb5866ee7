package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Amaan112005/mindmate/internal/domain"
	"github.com/Amaan112005/mindmate/internal/models"
	"github.com/Amaan112005/mindmate/internal/repository"
)

// MessagingService runs the append-only message log between clients and
// therapists.
type MessagingService struct {
	messages      repository.MessageRepository
	relationships repository.RelationshipRepository
	logger        *zap.Logger
}

func NewMessagingService(
	messages repository.MessageRepository,
	relationships repository.RelationshipRepository,
	logger *zap.Logger,
) *MessagingService {
	return &MessagingService{
		messages:      messages,
		relationships: relationships,
		logger:        logger,
	}
}

// Send appends a message. Empty or whitespace-only content is rejected and
// leaves the log untouched.
func (s *MessagingService) Send(ctx context.Context, senderID, recipientID, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, &domain.ValidationError{Field: "content", Reason: "must not be empty"}
	}
	if recipientID == "" {
		return nil, &domain.ValidationError{Field: "recipient_id", Reason: "required"}
	}

	m := &models.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// History returns the conversation between a and b in both directions,
// timestamp-ordered with insertion order breaking ties.
func (s *MessagingService) History(ctx context.Context, a, b string, limit int, ascending bool) ([]models.Message, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.messages.ListBetween(ctx, a, b, limit, ascending)
}

// TherapistClientHistory is the relationship-gated variant: it fails with
// NotFoundError unless the pair is actually assigned.
func (s *MessagingService) TherapistClientHistory(ctx context.Context, therapistID, clientID string, limit int) ([]models.Message, error) {
	assigned, err := s.relationships.Exists(ctx, clientID, therapistID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, &domain.NotFoundError{Entity: "relationship"}
	}
	return s.History(ctx, therapistID, clientID, limit, true)
}

// MarkRead flips every unread message from sender to recipient.
func (s *MessagingService) MarkRead(ctx context.Context, recipientID, senderID string) error {
	return s.messages.MarkRead(ctx, recipientID, senderID)
}

func (s *MessagingService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.messages.CountUnread(ctx, userID)
}

func (s *MessagingService) UnreadCountFrom(ctx context.Context, userID, senderID string) (int, error) {
	return s.messages.CountUnreadFrom(ctx, userID, senderID)
}

package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Amaan112005/mindmate/internal/domain"
	"github.com/Amaan112005/mindmate/internal/llm"
	"github.com/Amaan112005/mindmate/internal/models"
	"github.com/Amaan112005/mindmate/internal/repository"
)

// transcriptDepth is how many past turns get replayed to the model.
const transcriptDepth = 10

// Completer is the slice of the LLM client the chat service uses.
type Completer interface {
	Complete(ctx context.Context, transcript []llm.ChatMessage) (string, error)
}

// TokenGate admits or refuses a call against the user's daily budget.
type TokenGate interface {
	Allow(ctx context.Context, userID string, estTokens int64) (bool, error)
}

// ChatService runs the companion chatbot: one completion per turn over the
// running transcript, guarded by a per-user daily token budget.
type ChatService struct {
	turns  repository.ChatRepository
	llm    Completer
	budget TokenGate
	logger *zap.Logger
}

func NewChatService(turns repository.ChatRepository, completer Completer, budget TokenGate, logger *zap.Logger) *ChatService {
	return &ChatService{turns: turns, llm: completer, budget: budget, logger: logger}
}

// BudgetExhaustedReply is returned as the bot's answer when the user's
// daily token budget is spent. The turn is not persisted.
const BudgetExhaustedReply = "You've reached today's chat limit. Let's pick this up again tomorrow."

// Respond sends the user's message plus recent history to the model and
// persists the exchange. A model failure surfaces as an error; nothing is
// retried.
func (s *ChatService) Respond(ctx context.Context, userID, message string) (*models.ChatTurn, error) {
	if strings.TrimSpace(message) == "" {
		return nil, &domain.ValidationError{Field: "message", Reason: "must not be empty"}
	}

	history, err := s.turns.History(ctx, userID, transcriptDepth)
	if err != nil {
		return nil, err
	}

	transcript := make([]llm.ChatMessage, 0, 2*len(history)+1)
	for _, t := range history {
		transcript = append(transcript,
			llm.ChatMessage{Role: "user", Content: t.Message},
			llm.ChatMessage{Role: "assistant", Content: t.Response},
		)
	}
	transcript = append(transcript, llm.ChatMessage{Role: "user", Content: message})

	allowed, err := s.budget.Allow(ctx, userID, llm.EstimateTokens(transcript))
	if err != nil {
		return nil, err
	}
	if !allowed {
		s.logger.Info("chat budget exhausted", zap.String("user_id", userID))
		return &models.ChatTurn{UserID: userID, Message: message, Response: BudgetExhaustedReply}, nil
	}

	reply, err := s.llm.Complete(ctx, transcript)
	if err != nil {
		return nil, err
	}

	turn := &models.ChatTurn{UserID: userID, Message: message, Response: reply}
	if err := s.turns.SaveTurn(ctx, turn); err != nil {
		return nil, err
	}
	return turn, nil
}

func (s *ChatService) History(ctx context.Context, userID string, limit int) ([]models.ChatTurn, error) {
	if limit <= 0 || limit > 100 {
		limit = transcriptDepth
	}
	return s.turns.History(ctx, userID, limit)
}

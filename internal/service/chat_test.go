package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Amaan112005/mindmate/internal/llm"
	"github.com/Amaan112005/mindmate/internal/models"
)

type fakeChatRepo struct {
	turns []models.ChatTurn
	seq   int64
}

func (f *fakeChatRepo) SaveTurn(_ context.Context, t *models.ChatTurn) error {
	f.seq++
	t.ID = f.seq
	t.CreatedAt = time.Now()
	f.turns = append(f.turns, *t)
	return nil
}

func (f *fakeChatRepo) History(_ context.Context, userID string, limit int) ([]models.ChatTurn, error) {
	out := make([]models.ChatTurn, 0)
	for _, t := range f.turns {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

type fakeCompleter struct {
	reply      string
	err        error
	transcript []llm.ChatMessage
	calls      int
}

func (f *fakeCompleter) Complete(_ context.Context, transcript []llm.ChatMessage) (string, error) {
	f.calls++
	f.transcript = transcript
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeGate struct {
	allowed bool
}

func (f *fakeGate) Allow(context.Context, string, int64) (bool, error) { return f.allowed, nil }

func TestChatRespondPersistsTurn(t *testing.T) {
	repo := &fakeChatRepo{}
	completer := &fakeCompleter{reply: "I'm here for you."}
	svc := NewChatService(repo, completer, &fakeGate{allowed: true}, zap.NewNop())

	turn, err := svc.Respond(context.Background(), "u1", "I feel low today")
	require.NoError(t, err)
	assert.Equal(t, "I'm here for you.", turn.Response)
	require.Len(t, repo.turns, 1)
}

func TestChatRespondReplaysHistory(t *testing.T) {
	repo := &fakeChatRepo{}
	completer := &fakeCompleter{reply: "ok"}
	svc := NewChatService(repo, completer, &fakeGate{allowed: true}, zap.NewNop())

	ctx := context.Background()
	_, err := svc.Respond(ctx, "u1", "first")
	require.NoError(t, err)
	_, err = svc.Respond(ctx, "u1", "second")
	require.NoError(t, err)

	// prior user+assistant turn, then the new message
	require.Len(t, completer.transcript, 3)
	assert.Equal(t, "first", completer.transcript[0].Content)
	assert.Equal(t, "assistant", completer.transcript[1].Role)
	assert.Equal(t, "second", completer.transcript[2].Content)
}

func TestChatBudgetExhausted(t *testing.T) {
	repo := &fakeChatRepo{}
	completer := &fakeCompleter{reply: "unused"}
	svc := NewChatService(repo, completer, &fakeGate{allowed: false}, zap.NewNop())

	turn, err := svc.Respond(context.Background(), "u1", "hello")
	require.NoError(t, err)
	assert.Equal(t, BudgetExhaustedReply, turn.Response)
	assert.Zero(t, completer.calls)
	assert.Empty(t, repo.turns)
}

func TestChatModelFailureNotPersisted(t *testing.T) {
	repo := &fakeChatRepo{}
	completer := &fakeCompleter{err: errors.New("upstream down")}
	svc := NewChatService(repo, completer, &fakeGate{allowed: true}, zap.NewNop())

	_, err := svc.Respond(context.Background(), "u1", "hello")
	require.Error(t, err)
	assert.Empty(t, repo.turns)
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Amaan112005/mindmate/internal/domain"
	"github.com/Amaan112005/mindmate/internal/models"
)

func newMessagingFixture(t *testing.T) (*MessagingService, *fakeMessages, *fakeRelationships) {
	t.Helper()
	messages := newFakeMessages()
	relationships := newFakeRelationships()
	return NewMessagingService(messages, relationships, zap.NewNop()), messages, relationships
}

func TestSendAndHistoryOrdering(t *testing.T) {
	svc, _, _ := newMessagingFixture(t)
	ctx := context.Background()

	_, err := svc.Send(ctx, "a", "b", "first")
	require.NoError(t, err)
	_, err = svc.Send(ctx, "b", "a", "second")
	require.NoError(t, err)
	_, err = svc.Send(ctx, "a", "b", "third")
	require.NoError(t, err)

	asc, err := svc.History(ctx, "a", "b", 10, true)
	require.NoError(t, err)
	require.Len(t, asc, 3)
	assert.Equal(t, "first", asc[0].Content)
	assert.Equal(t, "second", asc[1].Content)
	assert.Equal(t, "third", asc[2].Content)

	desc, err := svc.History(ctx, "a", "b", 10, false)
	require.NoError(t, err)
	require.Len(t, desc, 3)
	assert.Equal(t, "third", desc[0].Content)
	assert.Equal(t, "first", desc[2].Content)
}

func TestSendEmptyContent(t *testing.T) {
	svc, _, _ := newMessagingFixture(t)
	ctx := context.Background()

	_, err := svc.Send(ctx, "a", "b", "hello")
	require.NoError(t, err)

	_, err = svc.Send(ctx, "a", "b", "   ")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "content", verr.Field)

	history, err := svc.History(ctx, "a", "b", 10, true)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestTherapistClientHistoryGate(t *testing.T) {
	svc, _, relationships := newMessagingFixture(t)
	ctx := context.Background()

	_, err := svc.Send(ctx, "t1", "c1", "hello")
	require.NoError(t, err)

	_, err = svc.TherapistClientHistory(ctx, "t1", "c1", 10)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)

	require.NoError(t, relationships.Create(ctx, &models.Relationship{ClientID: "c1", TherapistID: "t1"}))

	history, err := svc.TherapistClientHistory(ctx, "t1", "c1", 10)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestMarkReadAndUnreadCounts(t *testing.T) {
	svc, _, _ := newMessagingFixture(t)
	ctx := context.Background()

	_, err := svc.Send(ctx, "t1", "c1", "one")
	require.NoError(t, err)
	_, err = svc.Send(ctx, "t1", "c1", "two")
	require.NoError(t, err)
	_, err = svc.Send(ctx, "t2", "c1", "three")
	require.NoError(t, err)

	total, err := svc.UnreadCount(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	fromT1, err := svc.UnreadCountFrom(ctx, "c1", "t1")
	require.NoError(t, err)
	assert.Equal(t, 2, fromT1)

	require.NoError(t, svc.MarkRead(ctx, "c1", "t1"))

	total, err = svc.UnreadCount(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

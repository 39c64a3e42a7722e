package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/dazzlr/internal/model"
	"github.com/d60-Lab/dazzlr/internal/repository"
	"github.com/d60-Lab/dazzlr/pkg/apperr"
)

type recordedDelivery struct {
	sender, receiver string
	msg              *model.Message
}

type recordingNotifier struct {
	mu         sync.Mutex
	deliveries []recordedDelivery
}

func (n *recordingNotifier) DeliverMessage(sender, receiver string, msg *model.Message, _ *model.Conversation) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.deliveries = append(n.deliveries, recordedDelivery{sender, receiver, msg})
}

func messaging(e *testEnv, n MessageNotifier) (ConversationService, MessageService) {
	convos := NewConversationService(e.users, e.convos, time.Second)
	return convos, NewMessageService(convos, e.convos, e.messages, n, time.Second)
}

func TestFindOrCreateConversationIsSymmetric(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a, b := e.user(t, "alice"), e.user(t, "bob")
	convos, _ := messaging(e, nil)

	c1, err := convos.FindOrCreate(ctx, a.ID, b.ID)
	require.NoError(t, err)
	c2, err := convos.FindOrCreate(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, c1.ID, c2.ID)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, c1.Participants)

	_, err = convos.FindOrCreate(ctx, a.ID, a.ID)
	assert.True(t, errors.Is(err, apperr.InvalidOperation))
	_, err = convos.FindOrCreate(ctx, a.ID, "ghost")
	assert.True(t, errors.Is(err, apperr.NotFound))
}

func TestFindOrCreateConcurrent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a, b := e.user(t, "alice"), e.user(t, "bob")
	convos, _ := messaging(e, nil)

	const n = 10
	var wg sync.WaitGroup
	got := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			from, to := a.ID, b.ID
			if i%2 == 1 {
				from, to = to, from
			}
			c, err := convos.FindOrCreate(ctx, from, to)
			if assert.NoError(t, err) {
				got[i] = c.ID
			}
		}(i)
	}
	wg.Wait()
	for _, id := range got {
		assert.Equal(t, got[0], id)
	}

	var cnt int64
	require.NoError(t, e.db.Model(&model.Conversation{}).Count(&cnt).Error)
	assert.EqualValues(t, 1, cnt)
}

func TestPostMessageUpdatesSnapshotAndNotifies(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a, b := e.user(t, "alice"), e.user(t, "bob")
	notifier := &recordingNotifier{}
	convos, msgs := messaging(e, notifier)

	c, err := convos.FindOrCreate(ctx, a.ID, b.ID)
	require.NoError(t, err)

	list, err := convos.List(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, list, "conversations without messages are hidden")

	m1, err := msgs.Post(ctx, c.ID, a.ID, "", "hi bob")
	require.NoError(t, err)
	assert.Equal(t, b.ID, m1.ReceiverID)
	m2, err := msgs.Post(ctx, c.ID, b.ID, a.ID, "hey alice")
	require.NoError(t, err)

	got, err := convos.Get(ctx, a.ID, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LatestMessage)
	assert.Equal(t, "hey alice", *got.LatestMessage)

	history, err := msgs.List(ctx, b.ID, c.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, m1.ID, history[0].ID)

	last, err := msgs.Last(ctx, a.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, m2.ID, last.ID)

	list, err = convos.List(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.Len(t, notifier.deliveries, 2)
	assert.Equal(t, recordedDelivery{a.ID, b.ID, m1}, notifier.deliveries[0])
}

func TestPostMessageErrors(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a, b, c := e.user(t, "alice"), e.user(t, "bob"), e.user(t, "carol")
	convos, msgs := messaging(e, nil)
	convo, err := convos.FindOrCreate(ctx, a.ID, b.ID)
	require.NoError(t, err)

	_, err = msgs.Post(ctx, "missing", a.ID, b.ID, "hi")
	assert.True(t, errors.Is(err, apperr.NotFound))

	_, err = msgs.Post(ctx, convo.ID, c.ID, a.ID, "hi")
	assert.True(t, errors.Is(err, apperr.InvalidOperation))

	_, err = msgs.Post(ctx, convo.ID, a.ID, c.ID, "hi")
	assert.True(t, errors.Is(err, apperr.ValidationFailed))

	_, err = msgs.Post(ctx, convo.ID, a.ID, b.ID, "  ")
	assert.True(t, errors.Is(err, apperr.ValidationFailed))

	_, err = msgs.List(ctx, c.ID, convo.ID)
	assert.True(t, errors.Is(err, apperr.NotFound))

	_, err = msgs.Last(ctx, a.ID, convo.ID)
	assert.True(t, errors.Is(err, apperr.NotFound))
}

type brokenSnapshotRepo struct {
	repository.ConversationRepository
}

func (brokenSnapshotRepo) UpdateSnapshot(context.Context, string, string, time.Time) error {
	return errors.New("write conflict")
}

func TestPostMessageSurvivesSnapshotFailure(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a, b := e.user(t, "alice"), e.user(t, "bob")
	convos := NewConversationService(e.users, e.convos, time.Second)
	msgs := NewMessageService(convos, brokenSnapshotRepo{e.convos}, e.messages, nil, time.Second)

	c, err := convos.FindOrCreate(ctx, a.ID, b.ID)
	require.NoError(t, err)
	m, err := msgs.Post(ctx, c.ID, a.ID, b.ID, "still delivered")
	require.NoError(t, err)

	history, err := msgs.List(ctx, a.ID, c.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, m.ID, history[0].ID)

	got, err := convos.Get(ctx, a.ID, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got.LatestMessage)
}

func TestListConversationsNewestFirst(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a, b, c := e.user(t, "alice"), e.user(t, "bob"), e.user(t, "carol")
	convos, msgs := messaging(e, nil)

	withBob, err := convos.FindOrCreate(ctx, a.ID, b.ID)
	require.NoError(t, err)
	withCarol, err := convos.FindOrCreate(ctx, a.ID, c.ID)
	require.NoError(t, err)

	ids := func() []string {
		t.Helper()
		list, err := convos.List(ctx, a.ID)
		require.NoError(t, err)
		out := make([]string, 0, len(list))
		for _, cv := range list {
			out = append(out, cv.ID)
		}
		return out
	}

	_, err = msgs.Post(ctx, withBob.ID, a.ID, b.ID, "first to bob")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = msgs.Post(ctx, withCarol.ID, a.ID, c.ID, "then carol")
	require.NoError(t, err)
	assert.Equal(t, []string{withCarol.ID, withBob.ID}, ids())

	time.Sleep(5 * time.Millisecond)
	_, err = msgs.Post(ctx, withBob.ID, b.ID, a.ID, "bob again")
	require.NoError(t, err)
	assert.Equal(t, []string{withBob.ID, withCarol.ID}, ids())
}

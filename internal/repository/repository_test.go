package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/dazzlr/internal/model"
	"github.com/d60-Lab/dazzlr/pkg/apperr"
	"github.com/d60-Lab/dazzlr/pkg/database"
)

func setupDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	return db
}

func seedUsers(t testing.TB, db *gorm.DB, n int) []model.User {
	t.Helper()
	users := make([]model.User, n)
	for i := range users {
		id := fmt.Sprintf("u%04d", i)
		users[i] = model.User{
			ID:           id,
			Handle:       "@" + id,
			Fullname:     id,
			Email:        id + "@example.com",
			PasswordHash: "p",
			AccountType:  model.AccountPersonal,
			JoinedAt:     time.Now(),
		}
	}
	require.NoError(t, db.Create(&users).Error)
	return users
}

func TestFollowCreateIsIdempotent(t *testing.T) {
	db := setupDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, "a", "b")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Create(ctx, "a", "b")
	require.NoError(t, err)
	assert.False(t, created)

	ok, err := repo.Exists(ctx, "a", "b")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(ctx, "b", "a")
	require.NoError(t, err)
	assert.False(t, ok)

	deleted, err := repo.Delete(ctx, "a", "b")
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = repo.Delete(ctx, "a", "b")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestFolloweeIDsInFollowOrder(t *testing.T) {
	db := setupDB(t)
	repo := NewFollowRepository(db)
	fans := NewFanRepository(db)
	ctx := context.Background()

	for _, id := range []string{"c", "a", "b"} {
		_, err := repo.Create(ctx, "me", id)
		require.NoError(t, err)
		_, err = fans.Create(ctx, id, "me")
		require.NoError(t, err)
	}
	ids, err := repo.FolloweeIDs(ctx, "me")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, ids)

	cnt, err := repo.Count(ctx, "me")
	require.NoError(t, err)
	assert.EqualValues(t, 3, cnt)

	fanIDs, err := fans.FanIDs(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"me"}, fanIDs)
}

func TestTransactorRollsBackBothEdges(t *testing.T) {
	db := setupDB(t)
	tx := NewTransactor(db)
	follows := NewFollowRepository(db)
	fans := NewFanRepository(db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := tx.InTx(ctx, func(ctx context.Context) error {
		if _, err := follows.Create(ctx, "a", "b"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	ok, err := follows.Exists(ctx, "a", "b")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, tx.InTx(ctx, func(ctx context.Context) error {
		if _, err := follows.Create(ctx, "a", "b"); err != nil {
			return err
		}
		_, err := fans.Create(ctx, "b", "a")
		return err
	}))
	ids, err := fans.FanIDs(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids)
}

func TestUserRepositoryNotFoundAndPoints(t *testing.T) {
	db := setupDB(t)
	users := seedUsers(t, db, 2)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	assert.True(t, errors.Is(err, apperr.NotFound))

	require.NoError(t, repo.AddPoints(ctx, users[0].ID, 5))
	require.NoError(t, repo.AddPoints(ctx, users[0].ID, 5))
	u, err := repo.GetByHandle(ctx, users[0].Handle)
	require.NoError(t, err)
	assert.EqualValues(t, 10, u.Points)

	assert.True(t, errors.Is(repo.AddPoints(ctx, "missing", 5), apperr.NotFound))
}

func TestUserCreateDuplicateIsAlreadyExists(t *testing.T) {
	db := setupDB(t)
	users := seedUsers(t, db, 1)
	repo := NewUserRepository(db)

	dup := users[0]
	dup.ID = "other"
	dup.Handle = "@other"
	err := repo.Create(context.Background(), &dup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.AlreadyExists), err.Error())
}

func TestPostRepositoryThreadsAndLikes(t *testing.T) {
	db := setupDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	root := &model.Post{ID: model.NewID(), AuthorID: "a", Content: "root", CreatedAt: base}
	require.NoError(t, repo.Create(ctx, root))
	for i := 0; i < 3; i++ {
		p := &model.Post{
			ID:        model.NewID(),
			AuthorID:  "b",
			Content:   fmt.Sprintf("reply %d", i),
			InReplyTo: &root.ID,
			CreatedAt: base.Add(time.Duration(i+1) * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, p))
	}

	replies, err := repo.ListReplies(ctx, root.ID)
	require.NoError(t, err)
	require.Len(t, replies, 3)
	assert.Equal(t, "reply 2", replies[0].Content)

	top, err := repo.ListTopLevelByAuthor(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, top)

	added, err := repo.AddLike(ctx, root.ID, "u1")
	require.NoError(t, err)
	assert.True(t, added)
	added, err = repo.AddLike(ctx, root.ID, "u1")
	require.NoError(t, err)
	assert.False(t, added)

	likes, err := repo.LikesOf(ctx, []string{root.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, likes[root.ID])

	removed, err := repo.RemoveLike(ctx, root.ID, "u1")
	require.NoError(t, err)
	assert.True(t, removed)
	liked, err := repo.IsLiked(ctx, root.ID, "u1")
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestConversationCreateIfAbsentIsOrderIndependent(t *testing.T) {
	db := setupDB(t)
	repo := NewConversationRepository(db)
	msgs := NewMessageRepository(db)
	ctx := context.Background()

	c1, err := repo.CreateIfAbsent(ctx, "alice", "bob")
	require.NoError(t, err)
	c2, err := repo.CreateIfAbsent(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, c1.ID, c2.ID)
	assert.ElementsMatch(t, []string{"alice", "bob"}, c2.Participants)

	list, err := repo.ListWithMessages(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, msgs.Create(ctx, &model.Message{
		ID: model.NewID(), ConversationID: c1.ID, SenderID: "alice", ReceiverID: "bob", Text: "hi",
	}))
	list, err = repo.ListWithMessages(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, list, 1)

	last, err := msgs.Last(ctx, c1.ID)
	require.NoError(t, err)
	assert.Equal(t, "hi", last.Text)

	_, err = msgs.Last(ctx, "none")
	assert.True(t, errors.Is(err, apperr.NotFound))
}

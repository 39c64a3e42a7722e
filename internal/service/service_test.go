package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/dazzlr/internal/cache"
	"github.com/d60-Lab/dazzlr/internal/model"
	"github.com/d60-Lab/dazzlr/internal/repository"
	"github.com/d60-Lab/dazzlr/pkg/database"
)

type testEnv struct {
	db       *gorm.DB
	tx       repository.Transactor
	users    repository.UserRepository
	follows  repository.FollowRepository
	fans     repository.FanRepository
	posts    repository.PostRepository
	replies  repository.ReplyRepository
	convos   repository.ConversationRepository
	messages repository.MessageRepository
	snaps    *cache.UserSnapshots

	rel  RelationshipService
	feed FeedService
	post PostService
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)

	e := &testEnv{
		db:       db,
		tx:       repository.NewTransactor(db),
		users:    repository.NewUserRepository(db),
		follows:  repository.NewFollowRepository(db),
		fans:     repository.NewFanRepository(db),
		posts:    repository.NewPostRepository(db),
		replies:  repository.NewReplyRepository(db),
		convos:   repository.NewConversationRepository(db),
		messages: repository.NewMessageRepository(db),
	}
	e.snaps = cache.NewUserSnapshots(e.users, nil, 0)
	e.rel = NewRelationshipService(e.tx, e.users, e.follows, e.fans, time.Second)
	e.feed = NewFeedService(e.tx, e.follows, e.posts, e.snaps, FeedOptions{StorageTimeout: time.Second, MaxAncestorDepth: 8})
	e.post = NewPostService(e.tx, e.users, e.posts, e.snaps, e.snaps, time.Second)
	return e
}

func (e *testEnv) user(t *testing.T, name string) *model.User {
	t.Helper()
	u := &model.User{
		ID:           model.NewID(),
		Handle:       "@" + name,
		Fullname:     name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		AccountType:  model.AccountPersonal,
		JoinedAt:     time.Now(),
	}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

// postAt 直接落库，便于控制创建时间
func (e *testEnv) postAt(t *testing.T, author *model.User, at time.Time, inReplyTo *string) *model.Post {
	t.Helper()
	p := &model.Post{
		ID:        model.NewID(),
		AuthorID:  author.ID,
		Content:   fmt.Sprintf("post by %s at %d", author.Fullname, at.UnixNano()),
		InReplyTo: inReplyTo,
		CreatedAt: at,
	}
	require.NoError(t, e.posts.Create(context.Background(), p))
	return p
}

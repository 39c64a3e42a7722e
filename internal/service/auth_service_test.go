package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/dazzlr/internal/model"
	"github.com/d60-Lab/dazzlr/internal/repository"
	"github.com/d60-Lab/dazzlr/pkg/apperr"
	"github.com/d60-Lab/dazzlr/pkg/auth"
)

// staleUsers 模拟并发注册：前 stale 次查询看不到刚写入的用户
type staleUsers struct {
	repository.UserRepository
	staleEmail  int
	staleHandle int
}

func (s *staleUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.staleEmail > 0 {
		s.staleEmail--
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	return s.UserRepository.GetByEmail(ctx, email)
}

func (s *staleUsers) HandleExists(ctx context.Context, handle string) (bool, error) {
	if s.staleHandle > 0 {
		s.staleHandle--
		return false, nil
	}
	return s.UserRepository.HandleExists(ctx, handle)
}

func newAuth(users repository.UserRepository) AuthService {
	return NewAuthService(users, auth.NewTokenManager("test-secret", "dazzlr", time.Hour), time.Second)
}

func TestRegisterAndLogin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := newAuth(e.users)

	s, err := svc.Register(ctx, RegisterInput{Fullname: "Alice", Email: "Alice@Example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "@alice", s.User.Handle)
	assert.Equal(t, "alice@example.com", s.User.Email)
	assert.NotEmpty(t, s.Token)

	s2, err := svc.Register(ctx, RegisterInput{Fullname: "Alice", Email: "other@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "@alice-2", s2.User.Handle)

	_, err = svc.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)
	_, err = svc.Login(ctx, "alice@example.com", "nope")
	assert.True(t, errors.Is(err, apperr.Unauthorized))
}

func TestRegisterRacingSameEmail(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, err := newAuth(e.users).Register(ctx, RegisterInput{Fullname: "Alice", Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	// 预检查没看到已存在的邮箱，插入撞上唯一索引
	racy := newAuth(&staleUsers{UserRepository: e.users, staleEmail: 1})
	_, err = racy.Register(ctx, RegisterInput{Fullname: "Alice Two", Email: "alice@example.com", Password: "secret123"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ValidationFailed), err.Error())
	assert.Equal(t, "email", apperr.FieldOf(err))
}

func TestRegisterRacingSameHandle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	first, err := newAuth(e.users).Register(ctx, RegisterInput{Fullname: "Alice", Email: "a1@example.com", Password: "secret123"})
	require.NoError(t, err)

	racy := newAuth(&staleUsers{UserRepository: e.users, staleHandle: 1})
	s, err := racy.Register(ctx, RegisterInput{Fullname: "Alice", Email: "a2@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEqual(t, first.User.Handle, s.User.Handle)
	assert.Equal(t, "@alice-2", s.User.Handle)
}

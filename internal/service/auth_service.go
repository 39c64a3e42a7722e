package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/d60-Lab/dazzlr/internal/model"
	"github.com/d60-Lab/dazzlr/internal/repository"
	"github.com/d60-Lab/dazzlr/pkg/apperr"
	"github.com/d60-Lab/dazzlr/pkg/auth"
)

const (
	maxHandleAttempts = 20
	maxCreateAttempts = 3
	minPasswordLength = 6
)

type RegisterInput struct {
	Fullname    string
	Email       string
	Password    string
	AccountType string
}

// Session 登录结果
type Session struct {
	User      *model.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// AuthService 注册与登录，签发令牌
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
	timeout  time.Duration
}

func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager, timeout time.Duration) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens, timeout: timeout}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	fullname := strings.TrimSpace(in.Fullname)
	if fullname == "" {
		return nil, apperr.Field("fullname", "full name is required")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, apperr.Field("email", "email is required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, apperr.Field("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	accountType := in.AccountType
	if accountType == "" {
		accountType = model.AccountPersonal
	}
	if accountType != model.AccountPersonal && accountType != model.AccountBusiness {
		return nil, apperr.Field("account_type", "account type must be personal or business")
	}

	_, err := storageCall(ctx, s.timeout, "load user", func(ctx context.Context) (*model.User, error) {
		return s.userRepo.GetByEmail(ctx, email)
	})
	switch {
	case err == nil:
		return nil, apperr.Field("email", "email is already registered")
	case !errors.Is(err, apperr.NotFound):
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 检查与插入之间可能有并发注册，唯一索引兜底
	for attempt := 1; ; attempt++ {
		handle, err := s.uniqueHandle(ctx, fullname)
		if err != nil {
			return nil, err
		}
		user := &model.User{
			ID:           model.NewID(),
			Handle:       handle,
			Fullname:     fullname,
			Email:        email,
			PasswordHash: hash,
			AccountType:  accountType,
			JoinedAt:     time.Now(),
		}
		err = storageExec(ctx, s.timeout, "create user", func(ctx context.Context) error {
			return s.userRepo.Create(ctx, user)
		})
		if err == nil {
			return s.session(user)
		}
		if !errors.Is(err, apperr.AlreadyExists) {
			return nil, err
		}
		if _, lookupErr := storageCall(ctx, s.timeout, "load user", func(ctx context.Context) (*model.User, error) {
			return s.userRepo.GetByEmail(ctx, email)
		}); lookupErr == nil {
			return nil, apperr.Field("email", "email is already registered")
		}
		if attempt >= maxCreateAttempts {
			return nil, err
		}
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := storageCall(ctx, s.timeout, "load user", func(ctx context.Context) (*model.User, error) {
		return s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	})
	if err != nil {
		if errors.Is(err, apperr.NotFound) {
			return nil, apperr.New(apperr.Unauthorized, "invalid email or password")
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperr.New(apperr.Unauthorized, "invalid email or password")
	}
	return s.session(user)
}

func (s *authService) session(user *model.User) (*Session, error) {
	token, exp, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token, ExpiresAt: exp}, nil
}

// uniqueHandle 冲突时追加数字后缀
func (s *authService) uniqueHandle(ctx context.Context, fullname string) (string, error) {
	base := baseHandle(fullname)
	for i := 1; i <= maxHandleAttempts; i++ {
		candidate := base
		if i > 1 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}
		taken, err := storageCall(ctx, s.timeout, "check handle", func(ctx context.Context) (bool, error) {
			return s.userRepo.HandleExists(ctx, candidate)
		})
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return fmt.Sprintf("%s-%s", base, model.NewID()[24:]), nil
}

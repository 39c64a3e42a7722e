package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/d60-Lab/dazzlr/internal/model"
	"github.com/d60-Lab/dazzlr/internal/repository"
	"github.com/d60-Lab/dazzlr/pkg/apperr"
)

const maxBioLength = 200

// Profile 用户资料与关注关系摘要
type Profile struct {
	User      *model.User         `json:"user"`
	Followers []model.UserSummary `json:"followers"`
	Following []model.UserSummary `json:"following"`
}

type UpdateProfileInput struct {
	Fullname *string
	Bio      *string
	Location *model.Location
	Website  *string
	Avatar   *model.Media
	Cover    *model.Media
}

// UserService 用户资料
type UserService interface {
	Get(ctx context.Context, id string) (*model.User, error)
	GetProfile(ctx context.Context, handle string) (*Profile, error)
	List(ctx context.Context, page, pageSize int) ([]*model.User, error)
	UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (*model.User, error)
}

type userService struct {
	userRepo    repository.UserRepository
	rel         RelationshipService
	snapshots   SnapshotReader
	invalidator SnapshotInvalidator
	validate    *validator.Validate
	timeout     time.Duration
}

func NewUserService(
	userRepo repository.UserRepository,
	rel RelationshipService,
	snapshots SnapshotReader,
	invalidator SnapshotInvalidator,
	timeout time.Duration,
) UserService {
	return &userService{
		userRepo:    userRepo,
		rel:         rel,
		snapshots:   snapshots,
		invalidator: invalidator,
		validate:    validator.New(),
		timeout:     timeout,
	}
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	return storageCall(ctx, s.timeout, "load user", func(ctx context.Context) (*model.User, error) {
		return s.userRepo.GetByID(ctx, id)
	})
}

func (s *userService) GetProfile(ctx context.Context, handle string) (*Profile, error) {
	user, err := storageCall(ctx, s.timeout, "load user", func(ctx context.Context) (*model.User, error) {
		return s.userRepo.GetByHandle(ctx, normalizeHandle(handle))
	})
	if err != nil {
		return nil, err
	}
	followerIDs, err := s.rel.FollowerIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	followingIDs, err := s.rel.FollowingIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	snaps, err := s.snapshots.Get(ctx, append(append([]string{}, followerIDs...), followingIDs...))
	if err != nil {
		return nil, apperr.FromStorage("load user summaries", err)
	}
	return &Profile{
		User:      user,
		Followers: pick(snaps, followerIDs),
		Following: pick(snaps, followingIDs),
	}, nil
}

func pick(snaps map[string]model.UserSummary, ids []string) []model.UserSummary {
	out := make([]model.UserSummary, 0, len(ids))
	for _, id := range ids {
		if s, ok := snaps[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

func (s *userService) List(ctx context.Context, page, pageSize int) ([]*model.User, error) {
	offset, limit := pageBounds(page, pageSize)
	return storageCall(ctx, s.timeout, "list users", func(ctx context.Context) ([]*model.User, error) {
		return s.userRepo.List(ctx, offset, limit)
	})
}

func (s *userService) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (*model.User, error) {
	u := &model.User{ID: id}
	var columns []string
	if in.Fullname != nil {
		name := strings.TrimSpace(*in.Fullname)
		if name == "" {
			return nil, apperr.Field("fullname", "full name cannot be empty")
		}
		u.Fullname = name
		columns = append(columns, "fullname")
	}
	if in.Bio != nil {
		bio := strings.TrimSpace(*in.Bio)
		if len([]rune(bio)) > maxBioLength {
			return nil, apperr.Field("bio", fmt.Sprintf("bio must be at most %d characters", maxBioLength))
		}
		u.Bio = bio
		columns = append(columns, "bio")
	}
	if in.Website != nil {
		site := strings.TrimSpace(*in.Website)
		if err := s.validate.Var(site, "omitempty,url"); err != nil {
			return nil, apperr.Field("website", "website must be a valid URL")
		}
		u.Website = site
		columns = append(columns, "website")
	}
	if in.Location != nil {
		u.Location = *in.Location
		columns = append(columns, "location")
	}
	if in.Avatar != nil {
		if err := s.validateMedia(*in.Avatar); err != nil {
			return nil, apperr.Field("avatar", err.Error())
		}
		u.Avatar = *in.Avatar
		columns = append(columns, "avatar")
	}
	if in.Cover != nil {
		if err := s.validateMedia(*in.Cover); err != nil {
			return nil, apperr.Field("cover", err.Error())
		}
		u.Cover = *in.Cover
		columns = append(columns, "cover")
	}

	if len(columns) > 0 {
		u.UpdatedAt = time.Now()
		columns = append(columns, "updated_at")
		if err := storageExec(ctx, s.timeout, "update user", func(ctx context.Context) error {
			return s.userRepo.Update(ctx, u, columns...)
		}); err != nil {
			return nil, err
		}
		if s.invalidator != nil {
			s.invalidator.Invalidate(ctx, id)
		}
	}
	return s.Get(ctx, id)
}

func (s *userService) validateMedia(m model.Media) error {
	if err := s.validate.Var(m.URL, "required,url"); err != nil {
		return fmt.Errorf("media url must be a valid URL")
	}
	return nil
}

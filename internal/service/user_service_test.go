package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/dazzlr/internal/model"
	"github.com/d60-Lab/dazzlr/pkg/apperr"
	"github.com/d60-Lab/dazzlr/pkg/auth"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "@zoe-smith", baseHandle("Zoë  Smith"))
	assert.Equal(t, "@ada-lovelace", baseHandle("Ada_Lovelace!"))
	assert.Equal(t, "@user", baseHandle("✨✨"))
}

func TestRegisterLoginAndHandleCollision(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := NewAuthService(e.users, auth.NewTokenManager("secret", "dazzlr", time.Hour), time.Second)

	s1, err := svc.Register(ctx, RegisterInput{Fullname: "Ada Lovelace", Email: "Ada@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "@ada-lovelace", s1.User.Handle)
	assert.Equal(t, "ada@example.com", s1.User.Email)
	assert.Equal(t, model.AccountPersonal, s1.User.AccountType)
	assert.NotEmpty(t, s1.Token)

	s2, err := svc.Register(ctx, RegisterInput{Fullname: "Ada Lovelace", Email: "ada2@example.com", Password: "secret2", AccountType: model.AccountBusiness})
	require.NoError(t, err)
	assert.Equal(t, "@ada-lovelace-2", s2.User.Handle)

	_, err = svc.Register(ctx, RegisterInput{Fullname: "Dup", Email: "ada@example.com", Password: "secret3"})
	assert.Equal(t, "email", apperr.FieldOf(err))

	_, err = svc.Register(ctx, RegisterInput{Fullname: "Short", Email: "s@example.com", Password: "123"})
	assert.Equal(t, "password", apperr.FieldOf(err))

	logged, err := svc.Login(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, s1.User.ID, logged.User.ID)

	_, err = svc.Login(ctx, "ada@example.com", "wrong")
	assert.True(t, errors.Is(err, apperr.Unauthorized))
	_, err = svc.Login(ctx, "nobody@example.com", "secret1")
	assert.True(t, errors.Is(err, apperr.Unauthorized))
}

func TestProfileAndUpdate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a, b, c := e.user(t, "alice"), e.user(t, "bob"), e.user(t, "carol")
	require.NoError(t, e.rel.Follow(ctx, b.ID, a.ID))
	require.NoError(t, e.rel.Follow(ctx, a.ID, c.ID))
	svc := NewUserService(e.users, e.rel, e.snaps, e.snaps, time.Second)

	p, err := svc.GetProfile(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, p.Followers, 1)
	assert.Equal(t, "@bob", p.Followers[0].Handle)
	require.Len(t, p.Following, 1)
	assert.Equal(t, "@carol", p.Following[0].Handle)

	bio := "gopher"
	site := "https://alice.dev"
	u, err := svc.UpdateProfile(ctx, a.ID, UpdateProfileInput{
		Bio:      &bio,
		Website:  &site,
		Location: &model.Location{Country: "FR", City: "Lyon"},
		Avatar:   &model.Media{URL: "https://cdn.example.com/a.png", AssetID: "a"},
	})
	require.NoError(t, err)
	assert.Equal(t, "gopher", u.Bio)
	assert.Equal(t, "Lyon", u.Location.City)
	assert.Equal(t, "a", u.Avatar.AssetID)
	assert.Equal(t, "alice", u.Fullname)

	empty := " "
	_, err = svc.UpdateProfile(ctx, a.ID, UpdateProfileInput{Fullname: &empty})
	assert.Equal(t, "fullname", apperr.FieldOf(err))

	long := strings.Repeat("b", 201)
	_, err = svc.UpdateProfile(ctx, a.ID, UpdateProfileInput{Bio: &long})
	assert.Equal(t, "bio", apperr.FieldOf(err))

	bad := "not a url"
	_, err = svc.UpdateProfile(ctx, a.ID, UpdateProfileInput{Website: &bad})
	assert.Equal(t, "website", apperr.FieldOf(err))

	users, err := svc.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

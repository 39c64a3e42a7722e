package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/dazzlr/internal/repository"
	"github.com/d60-Lab/dazzlr/pkg/apperr"
)

func TestFollowMaintainsBothSides(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a, b := e.user(t, "alice"), e.user(t, "bob")

	require.NoError(t, e.rel.Follow(ctx, a.ID, b.ID))

	following, err := e.rel.FollowingIDs(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, following)

	followers, err := e.rel.FollowerIDs(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, followers)

	ok, err := e.rel.IsFollowing(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = e.rel.IsFollowing(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, e.rel.Unfollow(ctx, a.ID, b.ID))
	following, err = e.rel.FollowingIDs(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, following)
	followers, err = e.rel.FollowerIDs(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, followers)
}

func TestFollowErrors(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a, b := e.user(t, "alice"), e.user(t, "bob")

	err := e.rel.Follow(ctx, a.ID, a.ID)
	assert.True(t, errors.Is(err, apperr.InvalidOperation))

	err = e.rel.Follow(ctx, a.ID, "ghost")
	assert.True(t, errors.Is(err, apperr.NotFound))

	err = e.rel.Unfollow(ctx, a.ID, b.ID)
	assert.True(t, errors.Is(err, apperr.InvalidState))

	require.NoError(t, e.rel.Follow(ctx, a.ID, b.ID))
	err = e.rel.Follow(ctx, a.ID, b.ID)
	assert.True(t, errors.Is(err, apperr.AlreadyExists))

	followers, err := e.rel.FollowerIDs(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, followers, 1)
}

func TestFollowUnfollowRestoresGraph(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a, b, c := e.user(t, "alice"), e.user(t, "bob"), e.user(t, "carol")
	require.NoError(t, e.rel.Follow(ctx, a.ID, c.ID))

	before, err := e.rel.FollowingIDs(ctx, a.ID)
	require.NoError(t, err)

	require.NoError(t, e.rel.Follow(ctx, a.ID, b.ID))
	require.NoError(t, e.rel.Unfollow(ctx, a.ID, b.ID))

	after, err := e.rel.FollowingIDs(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestConcurrentFollowSamePairCreatesOneEdge(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a, b := e.user(t, "alice"), e.user(t, "bob")

	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- e.rel.Follow(ctx, a.ID, b.ID)
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, apperr.AlreadyExists), err.Error())
	}
	assert.Equal(t, 1, succeeded)

	followers, err := e.rel.FollowerIDs(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, followers, 1)
}

type failingFanRepo struct {
	repository.FanRepository
}

func (failingFanRepo) Create(context.Context, string, string) (bool, error) {
	return false, errors.New("disk full")
}

func TestFollowSecondWriteFailureRollsBack(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a, b := e.user(t, "alice"), e.user(t, "bob")

	rel := NewRelationshipService(e.tx, e.users, e.follows, failingFanRepo{e.fans}, 0)
	err := rel.Follow(ctx, a.ID, b.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.Inconsistent))

	ok, err := e.follows.Exists(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, ok, "follow edge must be rolled back")
}

func TestListFollowingPaged(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	me := e.user(t, "me")
	names := []string{"u1", "u2", "u3"}
	for _, n := range names {
		require.NoError(t, e.rel.Follow(ctx, me.ID, e.user(t, n).ID))
	}

	page1, err := e.rel.ListFollowing(ctx, me.ID, 1, 2)
	require.NoError(t, err)
	assert.Len(t, page1, 2)
	page2, err := e.rel.ListFollowing(ctx, me.ID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page2, 1)
	assert.NotContains(t, page1, page2[0])
}

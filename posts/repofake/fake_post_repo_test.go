package fakepostrepo_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/surf-club-server/posts"
	fakepostrepo "github.com/jrsteele09/surf-club-server/posts/repofake"
)

func newPost(id string, day time.Time) *posts.Post {
	return &posts.Post{
		ID:           id,
		Date:         posts.Day{Time: day},
		Likes:        []string{},
		Participants: []string{},
		Comments:     []string{},
		CreatedAt:    day,
	}
}

func TestReturnedPostsAreCopies(t *testing.T) {
	repo := fakepostrepo.NewFakePostRepo()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newPost("p1", time.Now())))

	p, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	p.Likes = append(p.Likes, "x")

	again, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, again.Likes)
}

func TestConcurrentTogglesAreNotLost(t *testing.T) {
	repo := fakepostrepo.NewFakePostRepo()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newPost("p1", time.Now())))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, err := repo.ToggleLike(ctx, "p1", fmt.Sprintf("acct-%d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	p, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, p.Likes, 20)
	assert.Equal(t, 20, p.LikeCount)
}

func TestListOrdering(t *testing.T) {
	repo := fakepostrepo.NewFakePostRepo()
	ctx := context.Background()
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, newPost("a", base.AddDate(0, 0, 5))))
	require.NoError(t, repo.Create(ctx, newPost("b", base.AddDate(0, 0, 1))))
	require.NoError(t, repo.Create(ctx, newPost("c", base.AddDate(0, 0, -1))))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].ID)

	upcoming, err := repo.ListFrom(ctx, base)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "b", upcoming[0].ID)
	assert.Equal(t, "a", upcoming[1].ID)
}

func TestClearParticipantsReturnsRemoved(t *testing.T) {
	repo := fakepostrepo.NewFakePostRepo()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newPost("p1", time.Now())))
	_, _, err := repo.ToggleParticipant(ctx, "p1", "a")
	require.NoError(t, err)

	removed, err := repo.ClearParticipants(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, removed)

	_, err = repo.ClearParticipants(ctx, "missing")
	require.ErrorIs(t, err, posts.ErrNotFound)
}

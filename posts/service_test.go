package posts_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/surf-club-server/accounts"
	fakeaccountrepo "github.com/jrsteele09/surf-club-server/accounts/repofake"
	"github.com/jrsteele09/surf-club-server/auth"
	apperrors "github.com/jrsteele09/surf-club-server/internal/errors"
	"github.com/jrsteele09/surf-club-server/posts"
	fakepostrepo "github.com/jrsteele09/surf-club-server/posts/repofake"
)

type testFixture struct {
	accounts *fakeaccountrepo.FakeAccountRepo
	posts    *fakepostrepo.FakePostRepo
	service  *posts.Service
	host     auth.Identity
	surfer   auth.Identity
	now      time.Time
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()
	ctx := context.Background()

	f := &testFixture{
		accounts: fakeaccountrepo.NewFakeAccountRepo(),
		posts:    fakepostrepo.NewFakePostRepo(),
		now:      time.Date(2026, 6, 10, 15, 0, 0, 0, time.UTC),
	}
	f.service = posts.NewService(f.posts, f.accounts, posts.WithNowFunc(func() time.Time { return f.now }))

	for _, a := range []*accounts.Account{
		{ID: "host-1", Email: "host@x.com", Role: "host", IsHost: true},
		{ID: "surfer-1", Email: "surfer@x.com", Role: "surfer"},
	} {
		require.NoError(t, f.accounts.Create(ctx, a))
	}
	f.host = auth.Identity{AccountID: "host-1", Email: "host@x.com", IsHost: true}
	f.surfer = auth.Identity{AccountID: "surfer-1", Email: "surfer@x.com"}
	return f
}

func validRequest(date string) posts.CreateRequest {
	return posts.CreateRequest{
		Date:              date,
		Time:              "06:30",
		MinimumWaveHeight: 1,
		MaximumWaveHeight: 1.5,
		AverageWindSpeed:  10,
		Description:       "  dawn patrol  ",
	}
}

func (f *testFixture) create(t *testing.T, date string) *posts.Post {
	t.Helper()
	p, err := f.service.Create(context.Background(), f.host, validRequest(date))
	require.NoError(t, err)
	return p
}

func (f *testFixture) activity(t *testing.T, id string) int {
	t.Helper()
	a, err := f.accounts.GetByID(context.Background(), id)
	require.NoError(t, err)
	return a.ActivityCount
}

func TestCreate(t *testing.T) {
	f := setupTestFixture(t)
	p := f.create(t, "14/06/2026")

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "dawn patrol", p.Description)
	assert.Equal(t, "host-1", p.CreatedBy)
	assert.Equal(t, "14/06/2026", posts.FormatDate(p.Date.Time))
	assert.Empty(t, p.Likes)
	assert.Empty(t, p.Participants)

	stored, err := f.service.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Description, stored.Description)
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		id      func(f *testFixture) auth.Identity
		req     func() posts.CreateRequest
		wantErr error
	}{
		{
			name:    "surfer forbidden",
			id:      func(f *testFixture) auth.Identity { return f.surfer },
			req:     func() posts.CreateRequest { return validRequest("14/06/2026") },
			wantErr: auth.ErrHostOnly,
		},
		{
			name: "missing time",
			id:   func(f *testFixture) auth.Identity { return f.host },
			req: func() posts.CreateRequest {
				r := validRequest("14/06/2026")
				r.Time = ""
				return r
			},
			wantErr: posts.ErrMissing,
		},
		{
			name:    "bad date",
			id:      func(f *testFixture) auth.Identity { return f.host },
			req:     func() posts.CreateRequest { return validRequest("2026-06-14") },
			wantErr: posts.ErrInvalidDate,
		},
		{
			name: "inverted wave range",
			id:   func(f *testFixture) auth.Identity { return f.host },
			req: func() posts.CreateRequest {
				r := validRequest("14/06/2026")
				r.MinimumWaveHeight = 3
				return r
			},
			wantErr: posts.ErrWaveRange,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupTestFixture(t)
			_, err := f.service.Create(context.Background(), tt.id(f), tt.req())
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestListUpcomingIncludesToday(t *testing.T) {
	f := setupTestFixture(t)
	f.create(t, "09/06/2026")
	later := f.create(t, "20/06/2026")
	today := f.create(t, "10/06/2026")

	list, err := f.service.ListUpcoming(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, today.ID, list[0].ID)
	assert.Equal(t, later.ID, list[1].ID)

	all, err := f.service.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdate(t *testing.T) {
	f := setupTestFixture(t)
	p := f.create(t, "14/06/2026")
	f.now = f.now.Add(time.Hour)

	updated, err := f.service.Update(context.Background(), f.host, p.ID, posts.UpdateRequest{Time: "07:00", MaximumWaveHeight: 2})
	require.NoError(t, err)
	assert.Equal(t, "07:00", updated.Time)
	assert.Equal(t, 2.0, updated.MaximumWaveHeight)
	assert.Equal(t, 1.0, updated.MinimumWaveHeight)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	_, err = f.service.Update(context.Background(), f.host, p.ID, posts.UpdateRequest{MinimumWaveHeight: 5})
	require.ErrorIs(t, err, posts.ErrWaveRange)

	_, err = f.service.Update(context.Background(), f.surfer, p.ID, posts.UpdateRequest{Time: "08:00"})
	require.ErrorIs(t, err, auth.ErrHostOnly)

	_, err = f.service.Update(context.Background(), f.host, "missing", posts.UpdateRequest{Time: "08:00"})
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestToggleLike(t *testing.T) {
	f := setupTestFixture(t)
	p := f.create(t, "14/06/2026")
	ctx := context.Background()

	liked, count, err := f.service.ToggleLike(ctx, f.surfer, p.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, count)

	liked, count, err = f.service.ToggleLike(ctx, f.surfer, p.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 0, count)

	_, _, err = f.service.ToggleLike(ctx, f.surfer, "missing")
	require.ErrorIs(t, err, posts.ErrNotFound)
}

func TestToggleParticipationMovesActivityCount(t *testing.T) {
	f := setupTestFixture(t)
	p := f.create(t, "14/06/2026")
	ctx := context.Background()

	joined, count, err := f.service.ToggleParticipation(ctx, f.surfer, p.ID)
	require.NoError(t, err)
	assert.True(t, joined)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, f.activity(t, "surfer-1"))

	joinedBy, err := f.service.ListJoinedBy(ctx, "surfer-1")
	require.NoError(t, err)
	require.Len(t, joinedBy, 1)
	assert.Equal(t, p.ID, joinedBy[0].ID)

	joined, count, err = f.service.ToggleParticipation(ctx, f.surfer, p.ID)
	require.NoError(t, err)
	assert.False(t, joined)
	assert.Equal(t, 0, count)
	assert.Equal(t, 0, f.activity(t, "surfer-1"))
}

func TestClearParticipantsReleasesActivity(t *testing.T) {
	f := setupTestFixture(t)
	p := f.create(t, "14/06/2026")
	ctx := context.Background()

	_, _, err := f.service.ToggleParticipation(ctx, f.surfer, p.ID)
	require.NoError(t, err)
	_, _, err = f.service.ToggleParticipation(ctx, f.host, p.ID)
	require.NoError(t, err)

	require.ErrorIs(t, f.service.ClearParticipants(ctx, f.surfer, p.ID), auth.ErrHostOnly)

	// A participant whose account is gone must not block the clear.
	require.NoError(t, f.accounts.Delete(ctx, "host-1"))
	require.NoError(t, f.service.ClearParticipants(ctx, f.host, p.ID))

	stored, err := f.service.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Participants)
	assert.Equal(t, 0, f.activity(t, "surfer-1"))
}

func TestClearLikesAndDelete(t *testing.T) {
	f := setupTestFixture(t)
	p := f.create(t, "14/06/2026")
	ctx := context.Background()

	_, _, err := f.service.ToggleLike(ctx, f.surfer, p.ID)
	require.NoError(t, err)

	require.ErrorIs(t, f.service.ClearLikes(ctx, f.surfer, p.ID), auth.ErrHostOnly)
	require.NoError(t, f.service.ClearLikes(ctx, f.host, p.ID))
	stored, err := f.service.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.LikeCount)

	require.ErrorIs(t, f.service.Delete(ctx, f.surfer, p.ID), auth.ErrHostOnly)
	require.NoError(t, f.service.Delete(ctx, f.host, p.ID))
	_, err = f.service.Get(ctx, p.ID)
	require.ErrorIs(t, err, posts.ErrNotFound)
}

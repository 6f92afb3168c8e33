package fakepostrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jrsteele09/surf-club-server/posts"
)

var _ posts.Repo = (*FakePostRepo)(nil)

type FakePostRepo struct {
	posts map[string]*posts.Post
	lock  sync.RWMutex
}

func NewFakePostRepo() *FakePostRepo {
	return &FakePostRepo{posts: make(map[string]*posts.Post)}
}

func (r *FakePostRepo) Create(_ context.Context, post *posts.Post) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.posts[post.ID] = post.Clone()
	return nil
}

func (r *FakePostRepo) Get(_ context.Context, id string) (*posts.Post, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, posts.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *FakePostRepo) List(_ context.Context) ([]*posts.Post, error) {
	list := r.filter(func(*posts.Post) bool { return true })
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID > list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *FakePostRepo) ListFrom(_ context.Context, day time.Time) ([]*posts.Post, error) {
	list := r.filter(func(p *posts.Post) bool { return !p.Date.Before(day) })
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Date.Equal(list[j].Date.Time) {
			return list[i].ID < list[j].ID
		}
		return list[i].Date.Before(list[j].Date.Time)
	})
	return list, nil
}

func (r *FakePostRepo) ListByParticipant(_ context.Context, accountID string) ([]*posts.Post, error) {
	list := r.filter(func(p *posts.Post) bool { return contains(p.Participants, accountID) })
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date.Time) })
	return list, nil
}

func (r *FakePostRepo) Update(_ context.Context, post *posts.Post) error {
	return r.mutate(post.ID, func(p *posts.Post) {
		p.Date = post.Date
		p.Time = post.Time
		p.MinimumWaveHeight = post.MinimumWaveHeight
		p.MaximumWaveHeight = post.MaximumWaveHeight
		p.AverageWindSpeed = post.AverageWindSpeed
		p.Description = post.Description
		p.PhotoURL = post.PhotoURL
		p.UpdatedAt = post.UpdatedAt
	})
}

func (r *FakePostRepo) Delete(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.posts[id]; !ok {
		return posts.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *FakePostRepo) ToggleLike(_ context.Context, id, accountID string) (liked bool, count int, err error) {
	err = r.mutate(id, func(p *posts.Post) {
		p.Likes, liked = toggle(p.Likes, accountID)
		p.LikeCount = len(p.Likes)
		count = p.LikeCount
	})
	return liked, count, err
}

func (r *FakePostRepo) ToggleParticipant(_ context.Context, id, accountID string) (joined bool, count int, err error) {
	err = r.mutate(id, func(p *posts.Post) {
		p.Participants, joined = toggle(p.Participants, accountID)
		p.ParticipantCount = len(p.Participants)
		count = p.ParticipantCount
	})
	return joined, count, err
}

func (r *FakePostRepo) ClearLikes(_ context.Context, id string) error {
	return r.mutate(id, func(p *posts.Post) {
		p.Likes = []string{}
		p.LikeCount = 0
	})
}

func (r *FakePostRepo) ClearParticipants(_ context.Context, id string) (removed []string, err error) {
	err = r.mutate(id, func(p *posts.Post) {
		removed = p.Participants
		p.Participants = []string{}
		p.ParticipantCount = 0
	})
	return removed, err
}

func (r *FakePostRepo) AddComment(_ context.Context, id, commentID string) error {
	return r.mutate(id, func(p *posts.Post) {
		p.Comments = append(p.Comments, commentID)
	})
}

func (r *FakePostRepo) RemoveComment(_ context.Context, id, commentID string) error {
	return r.mutate(id, func(p *posts.Post) {
		p.Comments, _ = remove(p.Comments, commentID)
	})
}

func (r *FakePostRepo) ClearComments(_ context.Context, id string) error {
	return r.mutate(id, func(p *posts.Post) {
		p.Comments = []string{}
	})
}

func (r *FakePostRepo) mutate(id string, fn func(p *posts.Post)) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return posts.ErrNotFound
	}
	fn(p)
	return nil
}

func (r *FakePostRepo) filter(keep func(p *posts.Post) bool) []*posts.Post {
	r.lock.RLock()
	defer r.lock.RUnlock()
	list := make([]*posts.Post, 0, len(r.posts))
	for _, p := range r.posts {
		if keep(p) {
			list = append(list, p.Clone())
		}
	}
	return list
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func remove(list []string, v string) ([]string, bool) {
	out := make([]string, 0, len(list))
	found := false
	for _, s := range list {
		if s == v {
			found = true
			continue
		}
		out = append(out, s)
	}
	return out, found
}

// toggle removes v if present, appends it otherwise, and reports whether v is
// now in the list.
func toggle(list []string, v string) ([]string, bool) {
	if out, found := remove(list, v); found {
		return out, false
	}
	return append(list, v), true
}

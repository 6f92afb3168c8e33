package fakecommentrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jrsteele09/surf-club-server/comments"
)

var _ comments.Repo = (*FakeCommentRepo)(nil)

type FakeCommentRepo struct {
	comments map[string]*comments.Comment
	lock     sync.RWMutex
}

func NewFakeCommentRepo() *FakeCommentRepo {
	return &FakeCommentRepo{comments: make(map[string]*comments.Comment)}
}

func (r *FakeCommentRepo) Create(_ context.Context, comment *comments.Comment) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.comments[comment.ID] = comment.Clone()
	return nil
}

func (r *FakeCommentRepo) Get(_ context.Context, id string) (*comments.Comment, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, comments.ErrNotFound
	}
	return c.Clone(), nil
}

func (r *FakeCommentRepo) ListByPost(_ context.Context, postID string) ([]*comments.Comment, error) {
	return r.filter(func(c *comments.Comment) bool { return c.PostID == postID }), nil
}

func (r *FakeCommentRepo) ListByAccount(_ context.Context, accountID string) ([]*comments.Comment, error) {
	return r.filter(func(c *comments.Comment) bool { return c.AccountID == accountID }), nil
}

func (r *FakeCommentRepo) UpdateContent(_ context.Context, id, content string, at time.Time) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return comments.ErrNotFound
	}
	c.Content = content
	c.Timestamp = at
	return nil
}

func (r *FakeCommentRepo) Delete(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.comments[id]; !ok {
		return comments.ErrNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *FakeCommentRepo) DeleteByPost(_ context.Context, postID string) (int, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	n := 0
	for id, c := range r.comments {
		if c.PostID == postID {
			delete(r.comments, id)
			n++
		}
	}
	return n, nil
}

func (r *FakeCommentRepo) filter(keep func(c *comments.Comment) bool) []*comments.Comment {
	r.lock.RLock()
	defer r.lock.RUnlock()
	list := make([]*comments.Comment, 0)
	for _, c := range r.comments {
		if keep(c) {
			list = append(list, c.Clone())
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Timestamp.Equal(list[j].Timestamp) {
			return list[i].ID < list[j].ID
		}
		return list[i].Timestamp.Before(list[j].Timestamp)
	})
	return list
}

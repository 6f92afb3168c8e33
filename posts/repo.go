package posts

import (
	"context"
	"time"
)

// Repo persists posts. The toggle and list mutations are atomic per post.
type Repo interface {
	Create(ctx context.Context, post *Post) error
	Get(ctx context.Context, id string) (*Post, error)
	// List returns every post, newest first.
	List(ctx context.Context) ([]*Post, error)
	// ListFrom returns posts dated on or after day, soonest first.
	ListFrom(ctx context.Context, day time.Time) ([]*Post, error)
	ListByParticipant(ctx context.Context, accountID string) ([]*Post, error)
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id string) error

	ToggleLike(ctx context.Context, id, accountID string) (liked bool, count int, err error)
	ToggleParticipant(ctx context.Context, id, accountID string) (joined bool, count int, err error)
	ClearLikes(ctx context.Context, id string) error
	// ClearParticipants empties the participant list and returns who was on it.
	ClearParticipants(ctx context.Context, id string) ([]string, error)

	AddComment(ctx context.Context, id, commentID string) error
	RemoveComment(ctx context.Context, id, commentID string) error
	ClearComments(ctx context.Context, id string) error
}

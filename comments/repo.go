package comments

import (
	"context"
	"time"
)

type Repo interface {
	Create(ctx context.Context, comment *Comment) error
	Get(ctx context.Context, id string) (*Comment, error)
	// ListByPost and ListByAccount return oldest first.
	ListByPost(ctx context.Context, postID string) ([]*Comment, error)
	ListByAccount(ctx context.Context, accountID string) ([]*Comment, error)
	UpdateContent(ctx context.Context, id, content string, at time.Time) error
	Delete(ctx context.Context, id string) error
	// DeleteByPost removes every comment of postID and returns how many went.
	DeleteByPost(ctx context.Context, postID string) (int, error)
}

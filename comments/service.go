package comments

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/surf-club-server/auth"
	apperrors "github.com/jrsteele09/surf-club-server/internal/errors"
	"github.com/jrsteele09/surf-club-server/posts"
)

// PostStore is the part of posts.Repo that tracks a post's comment ids.
type PostStore interface {
	Get(ctx context.Context, id string) (*posts.Post, error)
	AddComment(ctx context.Context, id, commentID string) error
	RemoveComment(ctx context.Context, id, commentID string) error
	ClearComments(ctx context.Context, id string) error
}

type Service struct {
	comments Repo
	posts    PostStore
	nowFunc  func() time.Time
}

type ServiceOption func(*Service)

func WithNowFunc(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowFunc = now
	}
}

func NewService(comments Repo, posts PostStore, options ...ServiceOption) *Service {
	s := &Service{comments: comments, posts: posts, nowFunc: time.Now}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *Service) Create(ctx context.Context, id auth.Identity, postID, content string) (*Comment, error) {
	content, err := NormalizeContent(content)
	if err != nil {
		return nil, err
	}
	if _, err := s.posts.Get(ctx, postID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:        ulid.Make().String(),
		PostID:    postID,
		AccountID: id.AccountID,
		Content:   content,
		Timestamp: s.nowFunc().UTC(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, errors.Wrap(err, "CommentService.Create")
	}
	if err := s.posts.AddComment(ctx, postID, comment.ID); err != nil {
		return nil, errors.Wrap(err, "CommentService.Create AddComment")
	}
	log.Debug().Str("comment_id", comment.ID).Str("post_id", postID).Msg("comment created")
	return comment, nil
}

// ListByPost returns the comments of an existing post; the list may be empty.
func (s *Service) ListByPost(ctx context.Context, postID string) ([]*Comment, error) {
	if _, err := s.posts.Get(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(ctx, postID)
}

func (s *Service) Get(ctx context.Context, id string) (*Comment, error) {
	return s.comments.Get(ctx, id)
}

func (s *Service) ListByAccount(ctx context.Context, accountID string) ([]*Comment, error) {
	list, err := s.comments.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNoneForAccount
	}
	return list, nil
}

func (s *Service) Update(ctx context.Context, id auth.Identity, commentID, content string) (*Comment, error) {
	comment, err := s.authored(ctx, id, commentID)
	if err != nil {
		return nil, err
	}
	content, err = NormalizeContent(content)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	comment.Timestamp = s.nowFunc().UTC()
	if err := s.comments.UpdateContent(ctx, comment.ID, comment.Content, comment.Timestamp); err != nil {
		return nil, errors.Wrap(err, "CommentService.Update")
	}
	return comment, nil
}

// Delete removes the comment and returns how many comments its post has left.
func (s *Service) Delete(ctx context.Context, id auth.Identity, commentID string) (int, error) {
	comment, err := s.authored(ctx, id, commentID)
	if err != nil {
		return 0, err
	}
	if err := s.comments.Delete(ctx, comment.ID); err != nil {
		return 0, errors.Wrap(err, "CommentService.Delete")
	}

	// The post may already be gone; post deletion leaves comments behind.
	err = s.posts.RemoveComment(ctx, comment.PostID, comment.ID)
	if apperrors.KindOf(err) == apperrors.KindNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "CommentService.Delete RemoveComment")
	}
	post, err := s.posts.Get(ctx, comment.PostID)
	if err != nil {
		return 0, errors.Wrap(err, "CommentService.Delete Get post")
	}
	return len(post.Comments), nil
}

// DeleteAllForPost removes every comment of a post. Hosts only.
func (s *Service) DeleteAllForPost(ctx context.Context, id auth.Identity, postID string) (*posts.Post, error) {
	if err := id.RequireHost(); err != nil {
		return nil, err
	}
	if _, err := s.posts.Get(ctx, postID); err != nil {
		return nil, err
	}

	n, err := s.comments.DeleteByPost(ctx, postID)
	if err != nil {
		return nil, errors.Wrap(err, "CommentService.DeleteAllForPost")
	}
	if err := s.posts.ClearComments(ctx, postID); err != nil {
		return nil, errors.Wrap(err, "CommentService.DeleteAllForPost ClearComments")
	}
	log.Info().Str("post_id", postID).Int("deleted", n).Str("account_id", id.AccountID).Msg("comments cleared")
	return s.posts.Get(ctx, postID)
}

func (s *Service) authored(ctx context.Context, id auth.Identity, commentID string) (*Comment, error) {
	comment, err := s.comments.Get(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AccountID != id.AccountID {
		return nil, ErrNotAuthor
	}
	return comment, nil
}

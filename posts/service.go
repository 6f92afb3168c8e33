package posts

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/surf-club-server/auth"
	apperrors "github.com/jrsteele09/surf-club-server/internal/errors"
)

// ActivityCounter keeps the per-account count of joined sessions.
type ActivityCounter interface {
	AdjustActivityCount(ctx context.Context, accountID string, delta int) error
}

type Service struct {
	posts      Repo
	activities ActivityCounter
	nowFunc    func() time.Time
}

type ServiceOption func(*Service)

func WithNowFunc(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowFunc = now
	}
}

func NewService(posts Repo, activities ActivityCounter, options ...ServiceOption) *Service {
	s := &Service{posts: posts, activities: activities, nowFunc: time.Now}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *Service) Create(ctx context.Context, id auth.Identity, req CreateRequest) (*Post, error) {
	if err := id.RequireHost(); err != nil {
		return nil, err
	}
	day, err := req.validate()
	if err != nil {
		return nil, err
	}

	now := s.nowFunc().UTC()
	post := &Post{
		ID:                ulid.Make().String(),
		Date:              Day{day},
		Time:              req.Time,
		MinimumWaveHeight: req.MinimumWaveHeight,
		MaximumWaveHeight: req.MaximumWaveHeight,
		AverageWindSpeed:  req.AverageWindSpeed,
		Description:       strings.TrimSpace(req.Description),
		PhotoURL:          req.PhotoURL,
		CreatedBy:         id.AccountID,
		Likes:             []string{},
		Participants:      []string{},
		Comments:          []string{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, errors.Wrap(err, "PostService.Create")
	}
	log.Info().Str("post_id", post.ID).Str("account_id", id.AccountID).Msg("post created")
	return post, nil
}

func (s *Service) List(ctx context.Context) ([]*Post, error) {
	return s.posts.List(ctx)
}

// ListUpcoming returns posts dated today or later, soonest first.
func (s *Service) ListUpcoming(ctx context.Context) ([]*Post, error) {
	return s.posts.ListFrom(ctx, StartOfDay(s.nowFunc()))
}

func (s *Service) Get(ctx context.Context, id string) (*Post, error) {
	return s.posts.Get(ctx, id)
}

// ListJoinedBy returns the posts accountID participates in.
func (s *Service) ListJoinedBy(ctx context.Context, accountID string) ([]*Post, error) {
	return s.posts.ListByParticipant(ctx, accountID)
}

func (s *Service) Update(ctx context.Context, id auth.Identity, postID string, req UpdateRequest) (*Post, error) {
	if err := id.RequireHost(); err != nil {
		return nil, err
	}
	post, err := s.posts.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := req.apply(post); err != nil {
		return nil, err
	}
	post.UpdatedAt = s.nowFunc().UTC()
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, errors.Wrap(err, "PostService.Update")
	}
	return post, nil
}

// Delete removes the post. Its comments are left in place.
func (s *Service) Delete(ctx context.Context, id auth.Identity, postID string) error {
	if err := id.RequireHost(); err != nil {
		return err
	}
	return s.posts.Delete(ctx, postID)
}

func (s *Service) ToggleLike(ctx context.Context, id auth.Identity, postID string) (bool, int, error) {
	return s.posts.ToggleLike(ctx, postID, id.AccountID)
}

// ToggleParticipation joins or leaves the session and moves the caller's
// activity count with it.
func (s *Service) ToggleParticipation(ctx context.Context, id auth.Identity, postID string) (bool, int, error) {
	joined, count, err := s.posts.ToggleParticipant(ctx, postID, id.AccountID)
	if err != nil {
		return false, 0, err
	}

	delta := -1
	if joined {
		delta = 1
	}
	if err := s.activities.AdjustActivityCount(ctx, id.AccountID, delta); err != nil {
		return false, 0, errors.Wrap(err, "PostService.ToggleParticipation AdjustActivityCount")
	}
	return joined, count, nil
}

func (s *Service) ClearLikes(ctx context.Context, id auth.Identity, postID string) error {
	if err := id.RequireHost(); err != nil {
		return err
	}
	return s.posts.ClearLikes(ctx, postID)
}

// ClearParticipants removes everyone from the session and gives each of them
// back one activity.
func (s *Service) ClearParticipants(ctx context.Context, id auth.Identity, postID string) error {
	if err := id.RequireHost(); err != nil {
		return err
	}
	removed, err := s.posts.ClearParticipants(ctx, postID)
	if err != nil {
		return err
	}
	for _, accountID := range removed {
		err := s.activities.AdjustActivityCount(ctx, accountID, -1)
		if err != nil && apperrors.KindOf(err) != apperrors.KindNotFound {
			return errors.Wrap(err, "PostService.ClearParticipants AdjustActivityCount")
		}
	}
	return nil
}

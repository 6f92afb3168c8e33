package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/jrsteele09/surf-club-server/internal/store"
	"github.com/jrsteele09/surf-club-server/posts"
)

var _ posts.Repo = (*PostRepo)(nil)

const postColumns = `id, date, time, minimum_wave_height, maximum_wave_height, average_wind_speed,
	description, photo_url, created_by, likes, participants, comments, created_at, updated_at`

// PostRepo implements posts.Repo. Like and participant toggles are decided
// inside a single UPDATE so concurrent toggles by different accounts are not
// lost.
type PostRepo struct {
	db store.DB
}

func NewPostRepo(db store.DB) *PostRepo {
	return &PostRepo{db: db}
}

func (r *PostRepo) Create(ctx context.Context, p *posts.Post) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO posts (id, date, time, minimum_wave_height, maximum_wave_height, average_wind_speed,
			description, photo_url, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, p.ID, p.Date.Time, p.Time, p.MinimumWaveHeight, p.MaximumWaveHeight, p.AverageWindSpeed,
		p.Description, p.PhotoURL, p.CreatedBy, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return oops.Code("POST_CREATE_FAILED").With("created_by", p.CreatedBy).Wrap(err)
	}
	return nil
}

func (r *PostRepo) Get(ctx context.Context, id string) (*posts.Post, error) {
	row := r.db.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	p, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("POST_NOT_FOUND").With("id", id).Wrap(posts.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("POST_GET_FAILED").With("id", id).Wrap(err)
	}
	return p, nil
}

func (r *PostRepo) List(ctx context.Context) ([]*posts.Post, error) {
	return r.query(ctx, "POST_LIST_FAILED", `SELECT `+postColumns+` FROM posts ORDER BY created_at DESC, id DESC`)
}

func (r *PostRepo) ListFrom(ctx context.Context, day time.Time) ([]*posts.Post, error) {
	return r.query(ctx, "POST_LIST_FAILED",
		`SELECT `+postColumns+` FROM posts WHERE date >= $1 ORDER BY date ASC, id ASC`, day)
}

func (r *PostRepo) ListByParticipant(ctx context.Context, accountID string) ([]*posts.Post, error) {
	return r.query(ctx, "POST_LIST_FAILED",
		`SELECT `+postColumns+` FROM posts WHERE participants @> ARRAY[$1]::text[] ORDER BY date ASC`, accountID)
}

func (r *PostRepo) Update(ctx context.Context, p *posts.Post) error {
	return r.execOne(ctx, "POST_UPDATE_FAILED", p.ID, `
		UPDATE posts SET date = $2, time = $3, minimum_wave_height = $4, maximum_wave_height = $5,
			average_wind_speed = $6, description = $7, photo_url = $8, updated_at = $9
		WHERE id = $1
	`, p.ID, p.Date.Time, p.Time, p.MinimumWaveHeight, p.MaximumWaveHeight, p.AverageWindSpeed,
		p.Description, p.PhotoURL, p.UpdatedAt)
}

func (r *PostRepo) Delete(ctx context.Context, id string) error {
	return r.execOne(ctx, "POST_DELETE_FAILED", id, `DELETE FROM posts WHERE id = $1`, id)
}

func (r *PostRepo) ToggleLike(ctx context.Context, id, accountID string) (bool, int, error) {
	return r.toggle(ctx, "likes", id, accountID)
}

func (r *PostRepo) ToggleParticipant(ctx context.Context, id, accountID string) (bool, int, error) {
	return r.toggle(ctx, "participants", id, accountID)
}

func (r *PostRepo) ClearLikes(ctx context.Context, id string) error {
	return r.execOne(ctx, "POST_CLEAR_LIKES_FAILED", id,
		`UPDATE posts SET likes = '{}', updated_at = now() WHERE id = $1`, id)
}

func (r *PostRepo) ClearParticipants(ctx context.Context, id string) ([]string, error) {
	var removed []string
	err := r.db.QueryRow(ctx, `
		UPDATE posts p SET participants = '{}', updated_at = now()
		FROM (SELECT id, participants FROM posts WHERE id = $1 FOR UPDATE) old
		WHERE p.id = old.id
		RETURNING old.participants
	`, id).Scan(&removed)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("POST_NOT_FOUND").With("id", id).Wrap(posts.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("POST_CLEAR_PARTICIPANTS_FAILED").With("id", id).Wrap(err)
	}
	return removed, nil
}

func (r *PostRepo) AddComment(ctx context.Context, id, commentID string) error {
	return r.execOne(ctx, "POST_ADD_COMMENT_FAILED", id,
		`UPDATE posts SET comments = array_append(comments, $2) WHERE id = $1`, id, commentID)
}

func (r *PostRepo) RemoveComment(ctx context.Context, id, commentID string) error {
	return r.execOne(ctx, "POST_REMOVE_COMMENT_FAILED", id,
		`UPDATE posts SET comments = array_remove(comments, $2) WHERE id = $1`, id, commentID)
}

func (r *PostRepo) ClearComments(ctx context.Context, id string) error {
	return r.execOne(ctx, "POST_CLEAR_COMMENTS_FAILED", id,
		`UPDATE posts SET comments = '{}' WHERE id = $1`, id)
}

// toggle flips accountID's membership of column; column is one of two
// constants, never user input.
func (r *PostRepo) toggle(ctx context.Context, column, id, accountID string) (bool, int, error) {
	var (
		member bool
		count  int
	)
	err := r.db.QueryRow(ctx, `
		UPDATE posts SET `+column+` = CASE
				WHEN `+column+` @> ARRAY[$2]::text[] THEN array_remove(`+column+`, $2)
				ELSE array_append(`+column+`, $2)
			END,
			updated_at = now()
		WHERE id = $1
		RETURNING `+column+` @> ARRAY[$2]::text[], cardinality(`+column+`)
	`, id, accountID).Scan(&member, &count)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, 0, oops.Code("POST_NOT_FOUND").With("id", id).Wrap(posts.ErrNotFound)
	}
	if err != nil {
		return false, 0, oops.Code("POST_TOGGLE_FAILED").With("id", id).With("column", column).Wrap(err)
	}
	return member, count, nil
}

func (r *PostRepo) execOne(ctx context.Context, code, id, sql string, args ...any) error {
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return oops.Code(code).With("id", id).Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("POST_NOT_FOUND").With("id", id).Wrap(posts.ErrNotFound)
	}
	return nil
}

func (r *PostRepo) query(ctx context.Context, code, sql string, args ...any) ([]*posts.Post, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, oops.Code(code).Wrap(err)
	}
	defer rows.Close()

	list := make([]*posts.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, oops.Code(code).With("operation", "scan post").Wrap(err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code(code).Wrap(err)
	}
	return list, nil
}

func scanPost(row pgx.Row) (*posts.Post, error) {
	var p posts.Post
	err := row.Scan(
		&p.ID,
		&p.Date.Time,
		&p.Time,
		&p.MinimumWaveHeight,
		&p.MaximumWaveHeight,
		&p.AverageWindSpeed,
		&p.Description,
		&p.PhotoURL,
		&p.CreatedBy,
		&p.Likes,
		&p.Participants,
		&p.Comments,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Date.Time = p.Date.UTC()
	p.LikeCount = len(p.Likes)
	p.ParticipantCount = len(p.Participants)
	return &p, nil
}

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/jrsteele09/surf-club-server/comments"
	"github.com/jrsteele09/surf-club-server/internal/store"
)

var _ comments.Repo = (*CommentRepo)(nil)

const commentColumns = `id, post_id, account_id, content, timestamp`

type CommentRepo struct {
	db store.DB
}

func NewCommentRepo(db store.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

func (r *CommentRepo) Create(ctx context.Context, c *comments.Comment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO comments (id, post_id, account_id, content, timestamp)
		VALUES ($1, $2, $3, $4, $5)
	`, c.ID, c.PostID, c.AccountID, c.Content, c.Timestamp)
	if err != nil {
		return oops.Code("COMMENT_CREATE_FAILED").With("post_id", c.PostID).Wrap(err)
	}
	return nil
}

func (r *CommentRepo) Get(ctx context.Context, id string) (*comments.Comment, error) {
	var c comments.Comment
	err := r.db.QueryRow(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id).
		Scan(&c.ID, &c.PostID, &c.AccountID, &c.Content, &c.Timestamp)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("COMMENT_NOT_FOUND").With("id", id).Wrap(comments.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("COMMENT_GET_FAILED").With("id", id).Wrap(err)
	}
	return &c, nil
}

func (r *CommentRepo) ListByPost(ctx context.Context, postID string) ([]*comments.Comment, error) {
	return r.list(ctx, `SELECT `+commentColumns+` FROM comments WHERE post_id = $1 ORDER BY timestamp ASC, id ASC`, postID)
}

func (r *CommentRepo) ListByAccount(ctx context.Context, accountID string) ([]*comments.Comment, error) {
	return r.list(ctx, `SELECT `+commentColumns+` FROM comments WHERE account_id = $1 ORDER BY timestamp ASC, id ASC`, accountID)
}

func (r *CommentRepo) UpdateContent(ctx context.Context, id, content string, at time.Time) error {
	tag, err := r.db.Exec(ctx, `UPDATE comments SET content = $2, timestamp = $3 WHERE id = $1`, id, content, at)
	if err != nil {
		return oops.Code("COMMENT_UPDATE_FAILED").With("id", id).Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("COMMENT_NOT_FOUND").With("id", id).Wrap(comments.ErrNotFound)
	}
	return nil
}

func (r *CommentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return oops.Code("COMMENT_DELETE_FAILED").With("id", id).Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("COMMENT_NOT_FOUND").With("id", id).Wrap(comments.ErrNotFound)
	}
	return nil
}

func (r *CommentRepo) DeleteByPost(ctx context.Context, postID string) (int, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE post_id = $1`, postID)
	if err != nil {
		return 0, oops.Code("COMMENT_DELETE_FAILED").With("post_id", postID).Wrap(err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *CommentRepo) list(ctx context.Context, sql string, arg string) ([]*comments.Comment, error) {
	rows, err := r.db.Query(ctx, sql, arg)
	if err != nil {
		return nil, oops.Code("COMMENT_LIST_FAILED").Wrap(err)
	}
	defer rows.Close()

	list := make([]*comments.Comment, 0)
	for rows.Next() {
		var c comments.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AccountID, &c.Content, &c.Timestamp); err != nil {
			return nil, oops.Code("COMMENT_LIST_FAILED").With("operation", "scan comment").Wrap(err)
		}
		list = append(list, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("COMMENT_LIST_FAILED").Wrap(err)
	}
	return list, nil
}

package comments

import (
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/jrsteele09/surf-club-server/internal/errors"
)

const MaxContentLength = 500

var (
	ErrNotFound        = apperrors.New(apperrors.KindNotFound, "Comment not found")
	ErrNoneForAccount  = apperrors.New(apperrors.KindNotFound, "No comments found for this user")
	ErrContentRequired = apperrors.New(apperrors.KindValidation, "Content is required")
	ErrContentTooLong  = apperrors.New(apperrors.KindValidation, "Content must be at most 500 characters")
	ErrNotAuthor       = apperrors.New(apperrors.KindAuth, "Unauthorized to modify this comment")
)

// Comment is a message left on a post. Timestamp moves on every edit.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	AccountID string    `json:"userId"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

func (c *Comment) Clone() *Comment {
	cp := *c
	return &cp
}

// NormalizeContent trims content and checks its length in characters.
func NormalizeContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrContentRequired
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return "", ErrContentTooLong
	}
	return content, nil
}

package errors_test

import (
	"fmt"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jrsteele09/surf-club-server/internal/errors"
)

var errPostMissing = apperrors.New(apperrors.KindNotFound, "Post not found")

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.Kind
	}{
		{name: "sentinel", err: errPostMissing, want: apperrors.KindNotFound},
		{name: "fmt wrapped", err: fmt.Errorf("loading: %w", errPostMissing), want: apperrors.KindNotFound},
		{name: "pkg wrapped", err: pkgerrors.Wrap(errPostMissing, "PostService.Get"), want: apperrors.KindNotFound},
		{name: "plain", err: fmt.Errorf("db down"), want: apperrors.KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperrors.KindOf(tt.err))
		})
	}
}

func TestPublicMessageHidesInternalErrors(t *testing.T) {
	wrapped := apperrors.Wrapf(errPostMissing, "get post %s", "01J")
	assert.Equal(t, "Post not found", apperrors.PublicMessage(wrapped))
	assert.Equal(t, "internal error", apperrors.PublicMessage(fmt.Errorf("pq: connection reset")))
}

func TestWrapfPreservesIdentity(t *testing.T) {
	require.Nil(t, apperrors.Wrapf(nil, "noop"))

	err := apperrors.Wrapf(errPostMissing, "op %d", 1)
	assert.True(t, apperrors.Is(err, errPostMissing))
	assert.Equal(t, "op 1: Post not found", err.Error())
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

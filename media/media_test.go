package media

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/surf-club-server/internal/config"
	apperrors "github.com/jrsteele09/surf-club-server/internal/errors"
)

var minio = config.MediaConfig{
	Bucket:    "surfclub",
	Region:    "us-east-1",
	Endpoint:  "http://127.0.0.1:9000",
	AccessKey: "minioadmin",
	SecretKey: "minioadmin",
}

func newTestPresigner(t *testing.T, cfg config.MediaConfig) *Presigner {
	t.Helper()
	awsCfg := aws.Config{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
	}
	p := NewPresignerWithClient(s3.NewPresignClient(NewS3Client(awsCfg, cfg)), cfg)
	p.nowFunc = func() time.Time { return time.Date(2026, 6, 4, 12, 0, 0, 0, time.UTC) }
	return p
}

func TestPresignUpload(t *testing.T) {
	p := newTestPresigner(t, minio)

	up, err := p.PresignUpload(context.Background(), "acct-1", KindAvatar, "image/png")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^avatars/2026/06/04/[0-9a-f-]{36}$`), up.Key)
	assert.Contains(t, up.UploadURL, "http://127.0.0.1:9000/surfclub/"+up.Key)
	assert.Contains(t, up.UploadURL, "X-Amz-Signature=")
	assert.Contains(t, up.UploadURL, "X-Amz-Expires=900")
	assert.Equal(t, "http://127.0.0.1:9000/surfclub/"+up.Key, up.PublicURL)
	assert.Equal(t, time.Date(2026, 6, 4, 12, 15, 0, 0, time.UTC), up.ExpiresAt)
}

func TestPresignUploadRejects(t *testing.T) {
	p := newTestPresigner(t, minio)

	_, err := p.PresignUpload(context.Background(), "acct-1", KindPost, "application/pdf")
	require.ErrorIs(t, err, ErrUnsupportedType)

	_, err = p.PresignUpload(context.Background(), "acct-1", Kind("video"), "image/png")
	require.ErrorIs(t, err, ErrUnknownKind)

	var disabled *Presigner
	_, err = disabled.PresignUpload(context.Background(), "acct-1", KindPost, "image/png")
	assert.Equal(t, apperrors.KindUnavailable, apperrors.KindOf(err))
}

type failingPresigner struct{}

func (failingPresigner) PresignPutObject(context.Context, *s3.PutObjectInput, ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	return nil, errors.New("signing failed")
}

func TestPresignUploadClientError(t *testing.T) {
	p := NewPresignerWithClient(failingPresigner{}, minio)
	_, err := p.PresignUpload(context.Background(), "acct-1", KindPost, "image/jpeg")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
}

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MediaConfig
		want string
	}{
		{name: "cdn", cfg: config.MediaConfig{Bucket: "b", PublicBaseURL: "https://cdn.example.com/"}, want: "https://cdn.example.com/k"},
		{name: "endpoint", cfg: config.MediaConfig{Bucket: "b", Endpoint: "http://minio:9000"}, want: "http://minio:9000/b/k"},
		{name: "aws", cfg: config.MediaConfig{Bucket: "b", Region: "eu-west-1"}, want: "https://b.s3.eu-west-1.amazonaws.com/k"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPresignerWithClient(failingPresigner{}, tt.cfg)
			assert.Equal(t, tt.want, p.publicURL("k"))
		})
	}
}

package media

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/surf-club-server/internal/config"
	apperrors "github.com/jrsteele09/surf-club-server/internal/errors"
)

const UploadExpiry = 15 * time.Minute

var (
	ErrUnsupportedType = apperrors.New(apperrors.KindValidation, "Only image uploads are supported")
	ErrUnknownKind     = apperrors.New(apperrors.KindValidation, "Unknown upload kind")
	ErrDisabled        = apperrors.New(apperrors.KindUnavailable, "Uploads are not available")
)

// Kind selects the key prefix of an upload.
type Kind string

const (
	KindAvatar Kind = "avatar"
	KindPost   Kind = "post"
)

func (k Kind) prefix() (string, error) {
	switch k {
	case KindAvatar:
		return "avatars", nil
	case KindPost:
		return "posts", nil
	}
	return "", ErrUnknownKind
}

// Upload is a presigned PUT the client performs itself.
type Upload struct {
	UploadURL string    `json:"uploadUrl"`
	Key       string    `json:"key"`
	PublicURL string    `json:"publicUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ObjectPresigner is satisfied by *s3.PresignClient.
type ObjectPresigner interface {
	PresignPutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type Presigner struct {
	client  ObjectPresigner
	cfg     config.MediaConfig
	nowFunc func() time.Time
}

// NewPresigner builds an S3 presign client from cfg. Static credentials are
// used when both keys are set, the default AWS chain otherwise.
func NewPresigner(ctx context.Context, cfg config.MediaConfig) (*Presigner, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "media.NewPresigner LoadDefaultConfig")
	}
	return NewPresignerWithClient(s3.NewPresignClient(NewS3Client(awsCfg, cfg)), cfg), nil
}

// NewS3Client applies the custom endpoint, if any, with path-style addressing
// so MinIO and other S3 compatible stores work.
func NewS3Client(awsCfg aws.Config, cfg config.MediaConfig) *s3.Client {
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
}

func NewPresignerWithClient(client ObjectPresigner, cfg config.MediaConfig) *Presigner {
	return &Presigner{client: client, cfg: cfg, nowFunc: time.Now}
}

func (p *Presigner) PresignUpload(ctx context.Context, accountID string, kind Kind, contentType string) (*Upload, error) {
	if p == nil {
		return nil, ErrDisabled
	}
	prefix, err := kind.prefix()
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, ErrUnsupportedType
	}

	now := p.nowFunc().UTC()
	key := fmt.Sprintf("%s/%04d/%02d/%02d/%s", prefix, now.Year(), now.Month(), now.Day(), uuid.New())
	req, err := p.client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(UploadExpiry))
	if err != nil {
		return nil, errors.Wrap(err, "media.PresignUpload")
	}

	log.Debug().Str("account_id", accountID).Str("key", key).Msg("upload presigned")
	return &Upload{
		UploadURL: req.URL,
		Key:       key,
		PublicURL: p.publicURL(key),
		ExpiresAt: now.Add(UploadExpiry),
	}, nil
}

func (p *Presigner) publicURL(key string) string {
	switch {
	case p.cfg.PublicBaseURL != "":
		return strings.TrimSuffix(p.cfg.PublicBaseURL, "/") + "/" + key
	case p.cfg.Endpoint != "":
		return strings.TrimSuffix(p.cfg.Endpoint, "/") + "/" + p.cfg.Bucket + "/" + key
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.cfg.Bucket, p.cfg.Region, key)
	}
}

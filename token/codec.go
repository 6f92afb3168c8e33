package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Kind distinguishes the two token classes. It is carried in the "typ" claim.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// ErrInvalid is returned for any token that fails verification: bad
// encoding, bad signature, expired, wrong kind or missing subject.
var ErrInvalid = errors.New("invalid token")

// Config is read once at startup and handed to NewCodec.
type Config struct {
	AccessSecret    string
	RefreshSecret   string
	AccessLifetime  time.Duration
	RefreshLifetime time.Duration
	Issuer          string
}

func (c Config) Validate() error {
	switch {
	case c.AccessSecret == "":
		return errors.New("token.Config: access secret is required")
	case c.RefreshSecret == "":
		return errors.New("token.Config: refresh secret is required")
	case c.AccessSecret == c.RefreshSecret:
		return errors.New("token.Config: access and refresh secrets must differ")
	case c.AccessLifetime <= 0:
		return errors.New("token.Config: access lifetime must be positive")
	case c.RefreshLifetime <= 0:
		return errors.New("token.Config: refresh lifetime must be positive")
	}
	return nil
}

// Claims is the payload of both token kinds.
type Claims struct {
	Type Kind `json:"typ"`
	jwt.RegisteredClaims
}

// Codec issues and verifies access and refresh tokens. Each kind has its own
// signer, so a token of one kind never verifies as the other.
type Codec struct {
	access          Signer
	refresh         Signer
	accessLifetime  time.Duration
	refreshLifetime time.Duration
	issuer          string
	nowFunc         func() time.Time
}

type CodecOption func(*Codec)

func WithNowFunc(now func() time.Time) CodecOption {
	return func(c *Codec) {
		c.nowFunc = now
	}
}

// WithSigners replaces the HMAC signers built from the configured secrets.
func WithSigners(access, refresh Signer) CodecOption {
	return func(c *Codec) {
		c.access = access
		c.refresh = refresh
	}
}

func NewCodec(cfg Config, options ...CodecOption) (*Codec, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Codec{
		access:          NewHMACSigner(cfg.AccessSecret),
		refresh:         NewHMACSigner(cfg.RefreshSecret),
		accessLifetime:  cfg.AccessLifetime,
		refreshLifetime: cfg.RefreshLifetime,
		issuer:          cfg.Issuer,
	}
	for _, opt := range options {
		opt(c)
	}
	if c.nowFunc == nil {
		c.nowFunc = time.Now
	}
	return c, nil
}

func (c *Codec) IssueAccessToken(subjectID string) (string, error) {
	return c.issue(KindAccess, subjectID, c.access, c.accessLifetime)
}

func (c *Codec) IssueRefreshToken(subjectID string) (string, error) {
	return c.issue(KindRefresh, subjectID, c.refresh, c.refreshLifetime)
}

// VerifyAccessToken returns the subject of a valid access token.
func (c *Codec) VerifyAccessToken(raw string) (string, error) {
	return c.verify(KindAccess, raw, c.access)
}

// VerifyRefreshToken returns the subject of a valid refresh token. It does not
// check that the token is still held by the account.
func (c *Codec) VerifyRefreshToken(raw string) (string, error) {
	return c.verify(KindRefresh, raw, c.refresh)
}

func (c *Codec) issue(kind Kind, subjectID string, signer Signer, lifetime time.Duration) (string, error) {
	if subjectID == "" {
		return "", errors.New("Codec.issue: empty subject")
	}
	now := c.nowFunc()
	claims := Claims{
		Type: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			ID:        uuid.New().String(), // distinct strings for tokens issued in the same second
		},
	}
	signed, err := signer.Sign(claims)
	if err != nil {
		return "", errors.Wrapf(err, "Codec.issue %s", kind)
	}
	return signed, nil
}

func (c *Codec) verify(kind Kind, raw string, signer Signer) (string, error) {
	if raw == "" {
		return "", ErrInvalid
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{signer.GetSigningMethod().Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.nowFunc),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(raw, &claims, signer.GetVerificationKey, opts...)
	if err != nil {
		return "", errors.Wrap(ErrInvalid, err.Error())
	}
	if !parsed.Valid || claims.Type != kind || claims.Subject == "" {
		return "", ErrInvalid
	}
	return claims.Subject, nil
}

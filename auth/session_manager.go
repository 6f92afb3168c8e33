package auth

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jrsteele09/surf-club-server/accounts"
	"github.com/jrsteele09/surf-club-server/auth/federated"
	apperrors "github.com/jrsteele09/surf-club-server/internal/errors"
	"github.com/jrsteele09/surf-club-server/internal/metrics"
	"github.com/jrsteele09/surf-club-server/token"
)

var tracer = otel.Tracer("github.com/jrsteele09/surf-club-server/auth")

// SessionStore is the refresh token half of accounts.Repo. Each method is a
// single atomic update of one account.
type SessionStore interface {
	FindByRefreshToken(ctx context.Context, token string) (*accounts.Account, error)
	AppendRefreshToken(ctx context.Context, accountID, token string) error
	RemoveRefreshToken(ctx context.Context, accountID, token string) (bool, error)
	ReplaceRefreshToken(ctx context.Context, accountID, oldToken, newToken string) (bool, error)
	ClearRefreshTokens(ctx context.Context, accountID string) error
}

// AccountStore is everything the session manager needs from accounts.Repo.
type AccountStore interface {
	SessionStore
	Create(ctx context.Context, account *accounts.Account) error
	GetByID(ctx context.Context, id string) (*accounts.Account, error)
	GetByEmail(ctx context.Context, email string) (*accounts.Account, error)
	Delete(ctx context.Context, id string) error
}

// TokenCodec issues and verifies the two token kinds.
type TokenCodec interface {
	IssueAccessToken(subjectID string) (string, error)
	IssueRefreshToken(subjectID string) (string, error)
	VerifyAccessToken(raw string) (string, error)
	VerifyRefreshToken(raw string) (string, error)
}

var _ TokenCodec = (*token.Codec)(nil)

// FederatedVerifier verifies a Google credential or authorization code.
type FederatedVerifier interface {
	Verify(ctx context.Context, credential, code string) (*federated.Claims, error)
}

// Repos holds the repository dependencies of the SessionManager
type Repos struct {
	Accounts AccountStore
}

// TokenPair is the result of a refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LoginResult is returned by Login and FederatedLogin.
type LoginResult struct {
	TokenPair
	Account accounts.Profile `json:"user"`
}

type RegisterRequest struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Role           string `json:"role"`
	ProfilePicture string `json:"profilePicture"`
	Bio            string `json:"bio"`
}

// SessionManager owns the login session lifecycle. Per account and refresh
// token the states are ACTIVE, then ROTATED (refresh) or REVOKED (logout,
// fail-safe clear, account deletion); there is no way back to ACTIVE.
type SessionManager struct {
	repos     Repos
	tokens    TokenCodec
	federated FederatedVerifier
}

type SessionManagerOption func(*SessionManager)

// WithFederatedVerifier enables FederatedLogin.
func WithFederatedVerifier(v FederatedVerifier) SessionManagerOption {
	return func(m *SessionManager) {
		m.federated = v
	}
}

func NewSessionManager(repos Repos, tokens TokenCodec, options ...SessionManagerOption) (*SessionManager, error) {
	if repos.Accounts == nil {
		return nil, errors.New("[NewSessionManager] Accounts repo is required")
	}
	if tokens == nil {
		return nil, errors.New("[NewSessionManager] token codec is required")
	}

	m := &SessionManager{
		repos:  repos,
		tokens: tokens,
	}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

// Register creates an account with a hashed password. Hosts are promoted out
// of band, never at registration.
func (m *SessionManager) Register(ctx context.Context, req RegisterRequest) (acct *accounts.Account, err error) {
	ctx, span := startSpan(ctx, "register")
	defer func() { finish(span, "register", err) }()

	req.Email = strings.TrimSpace(req.Email)
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		return nil, ErrMissingFields
	}
	if err := accounts.ValidateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := accounts.ValidatePasswordStrength(req.Password); err != nil {
		return nil, apperrors.New(apperrors.KindValidation, err.Error())
	}

	hash, err := accounts.HashPassword(req.Password)
	if err != nil {
		return nil, errors.Wrap(err, "SessionManager.Register HashPassword")
	}

	acct = &accounts.Account{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		PasswordHash:   hash,
		Role:           req.Role,
		ProfilePicture: req.ProfilePicture,
		Bio:            req.Bio,
	}
	if err := m.repos.Accounts.Create(ctx, acct); err != nil {
		if apperrors.Is(err, accounts.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, errors.Wrap(err, "SessionManager.Register Create")
	}

	log.Info().Str("account_id", acct.ID).Msg("account registered")
	return acct, nil
}

// Login verifies the password and starts a new session. Unknown email and
// wrong password fail identically.
func (m *SessionManager) Login(ctx context.Context, email, password string) (result *LoginResult, err error) {
	ctx, span := startSpan(ctx, "login")
	defer func() { finish(span, "login", err) }()

	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	acct, err := m.repos.Accounts.GetByEmail(ctx, email)
	if apperrors.Is(err, accounts.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "SessionManager.Login GetByEmail")
	}
	if !accounts.CheckPasswordHash(password, acct.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return m.startSession(ctx, acct)
}

// FederatedLogin signs in with a verified Google identity, creating the
// account on first use. The account has no password.
func (m *SessionManager) FederatedLogin(ctx context.Context, credential, code string) (result *LoginResult, err error) {
	ctx, span := startSpan(ctx, "federated_login")
	defer func() { finish(span, "federated_login", err) }()

	if m.federated == nil {
		return nil, ErrFederatedDisabled
	}
	if credential == "" && code == "" {
		return nil, ErrMissingToken
	}

	claims, err := m.federated.Verify(ctx, credential, code)
	if err != nil {
		return nil, err
	}

	acct, err := m.repos.Accounts.GetByEmail(ctx, claims.Email)
	if apperrors.Is(err, accounts.ErrNotFound) {
		acct, err = m.createFederatedAccount(ctx, claims)
	}
	if err != nil {
		return nil, errors.Wrap(err, "SessionManager.FederatedLogin")
	}

	return m.startSession(ctx, acct)
}

func (m *SessionManager) createFederatedAccount(ctx context.Context, claims *federated.Claims) (*accounts.Account, error) {
	acct := &accounts.Account{
		FirstName:      claims.GivenName,
		LastName:       claims.FamilyName,
		Email:          claims.Email,
		Role:           "surfer",
		ProfilePicture: claims.Picture,
	}
	err := m.repos.Accounts.Create(ctx, acct)
	if apperrors.Is(err, accounts.ErrEmailTaken) {
		// Created by a concurrent first login.
		return m.repos.Accounts.GetByEmail(ctx, claims.Email)
	}
	if err != nil {
		return nil, err
	}
	log.Info().Str("account_id", acct.ID).Msg("account created from Google login")
	return acct, nil
}

// Authenticate resolves a bearer access token to the caller's identity.
func (m *SessionManager) Authenticate(ctx context.Context, accessToken string) (id Identity, err error) {
	ctx, span := startSpan(ctx, "authenticate")
	defer func() { finish(span, "authenticate", err) }()

	if accessToken == "" {
		return Identity{}, ErrMissingBearer
	}
	subject, err := m.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		return Identity{}, ErrInvalidAccessToken
	}

	acct, err := m.repos.Accounts.GetByID(ctx, subject)
	if apperrors.Is(err, accounts.ErrNotFound) {
		return Identity{}, ErrAccountNotFound
	}
	if err != nil {
		return Identity{}, errors.Wrap(err, "SessionManager.Authenticate GetByID")
	}

	span.SetAttributes(attribute.String("account.id", acct.ID))
	return Identity{AccountID: acct.ID, Email: acct.Email, Role: acct.Role, IsHost: acct.IsHost}, nil
}

// Refresh rotates a refresh token. A token that is held by an account but no
// longer verifies revokes every session of that account. Of several
// concurrent refreshes with the same token exactly one succeeds.
func (m *SessionManager) Refresh(ctx context.Context, refreshToken string) (pair *TokenPair, err error) {
	ctx, span := startSpan(ctx, "refresh")
	defer func() { finish(span, "refresh", err) }()

	if refreshToken == "" {
		return nil, ErrMissingToken
	}

	acct, err := m.repos.Accounts.FindByRefreshToken(ctx, refreshToken)
	if apperrors.Is(err, accounts.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, errors.Wrap(err, "SessionManager.Refresh FindByRefreshToken")
	}

	subject, verifyErr := m.tokens.VerifyRefreshToken(refreshToken)
	if verifyErr != nil || subject != acct.ID {
		if err := m.revokeAll(ctx, acct, "refresh token failed verification"); err != nil {
			return nil, err
		}
		return nil, ErrExpiredOrInvalid
	}

	pair, err = m.issuePair(acct.ID)
	if err != nil {
		return nil, err
	}

	replaced, err := m.repos.Accounts.ReplaceRefreshToken(ctx, acct.ID, refreshToken, pair.RefreshToken)
	if err != nil {
		return nil, errors.Wrap(err, "SessionManager.Refresh ReplaceRefreshToken")
	}
	if !replaced {
		// Rotated or revoked between the lookup and the update.
		return nil, ErrInvalidToken
	}

	metrics.SessionsRevoked.WithLabelValues("rotation").Inc()
	return pair, nil
}

// Logout revokes exactly the presented refresh token.
func (m *SessionManager) Logout(ctx context.Context, refreshToken string) (err error) {
	ctx, span := startSpan(ctx, "logout")
	defer func() { finish(span, "logout", err) }()

	if refreshToken == "" {
		return ErrMissingToken
	}

	subject, err := m.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return ErrInvalidToken
	}

	if _, err := m.repos.Accounts.GetByID(ctx, subject); err != nil {
		if apperrors.Is(err, accounts.ErrNotFound) {
			return ErrAccountNotFound
		}
		return errors.Wrap(err, "SessionManager.Logout GetByID")
	}

	removed, err := m.repos.Accounts.RemoveRefreshToken(ctx, subject, refreshToken)
	if err != nil {
		return errors.Wrap(err, "SessionManager.Logout RemoveRefreshToken")
	}
	if !removed {
		return ErrTokenNotOwned
	}

	metrics.SessionsRevoked.WithLabelValues("logout").Inc()
	return nil
}

// DeleteAccount removes the caller's account and with it every session.
// Posts and comments are left in place.
func (m *SessionManager) DeleteAccount(ctx context.Context, id Identity) (err error) {
	ctx, span := startSpan(ctx, "delete_account")
	defer func() { finish(span, "delete_account", err) }()

	if err := m.repos.Accounts.Delete(ctx, id.AccountID); err != nil {
		if apperrors.Is(err, accounts.ErrNotFound) {
			return ErrAccountNotFound
		}
		return errors.Wrap(err, "SessionManager.DeleteAccount")
	}

	metrics.SessionsRevoked.WithLabelValues("account_deleted").Inc()
	log.Info().Str("account_id", id.AccountID).Msg("account deleted")
	return nil
}

func (m *SessionManager) startSession(ctx context.Context, acct *accounts.Account) (*LoginResult, error) {
	pair, err := m.issuePair(acct.ID)
	if err != nil {
		return nil, err
	}
	if err := m.repos.Accounts.AppendRefreshToken(ctx, acct.ID, pair.RefreshToken); err != nil {
		if apperrors.Is(err, accounts.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, errors.Wrap(err, "SessionManager.startSession AppendRefreshToken")
	}

	log.Debug().Str("account_id", acct.ID).Int("sessions", len(acct.RefreshTokens)+1).Msg("session started")
	return &LoginResult{TokenPair: *pair, Account: acct.Profile()}, nil
}

func (m *SessionManager) issuePair(accountID string) (*TokenPair, error) {
	access, err := m.tokens.IssueAccessToken(accountID)
	if err != nil {
		return nil, errors.Wrap(err, "SessionManager IssueAccessToken")
	}
	refresh, err := m.tokens.IssueRefreshToken(accountID)
	if err != nil {
		return nil, errors.Wrap(err, "SessionManager IssueRefreshToken")
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (m *SessionManager) revokeAll(ctx context.Context, acct *accounts.Account, reason string) error {
	if err := m.repos.Accounts.ClearRefreshTokens(ctx, acct.ID); err != nil && !apperrors.Is(err, accounts.ErrNotFound) {
		return errors.Wrap(err, "SessionManager.revokeAll ClearRefreshTokens")
	}
	metrics.SessionsRevoked.WithLabelValues("revoke_all").Add(float64(len(acct.RefreshTokens)))
	log.Warn().
		Str("account_id", acct.ID).
		Int("sessions", len(acct.RefreshTokens)).
		Str("reason", reason).
		Msg("revoked all sessions")
	return nil
}

func startSpan(ctx context.Context, operation string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "auth."+operation, trace.WithAttributes(attribute.String("auth.operation", operation)))
}

func finish(span trace.Span, operation string, err error) {
	metrics.RecordAuth(operation, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if apperrors.KindOf(err) == apperrors.KindInternal {
			log.Error().Err(err).Str("operation", operation).Msg("auth operation failed")
		}
	}
	span.End()
}

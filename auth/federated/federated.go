// Package federated verifies Google sign-in credentials. It accepts either an
// ID token obtained by the browser or an authorization code to exchange.
package federated

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	apperrors "github.com/jrsteele09/surf-club-server/internal/errors"
)

const GoogleIssuer = "https://accounts.google.com"

var (
	ErrInvalidCredential = apperrors.New(apperrors.KindAuth, "Invalid Google credential")
	ErrEmailNotVerified  = apperrors.New(apperrors.KindAuth, "Google account email is not verified")
)

// Claims are the identity claims read from a verified ID token.
type Claims struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Verifier checks Google ID tokens against the provider's keys and the
// configured client id.
type Verifier struct {
	idTokens *oidc.IDTokenVerifier
	oauth2   *oauth2.Config
}

// NewGoogleVerifier discovers Google's endpoints and signing keys.
func NewGoogleVerifier(ctx context.Context, cfg Config) (*Verifier, error) {
	provider, err := oidc.NewProvider(ctx, GoogleIssuer)
	if err != nil {
		return nil, errors.Wrap(err, "federated.NewGoogleVerifier oidc.NewProvider")
	}

	return NewVerifier(
		provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		&oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     provider.Endpoint(),
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	), nil
}

func NewVerifier(idTokens *oidc.IDTokenVerifier, oauthConfig *oauth2.Config) *Verifier {
	return &Verifier{idTokens: idTokens, oauth2: oauthConfig}
}

// Verify validates credential, or exchanges code for an ID token when no
// credential is given, and returns the verified claims.
func (v *Verifier) Verify(ctx context.Context, credential, code string) (*Claims, error) {
	rawIDToken := credential
	if rawIDToken == "" {
		if code == "" {
			return nil, ErrInvalidCredential
		}
		exchanged, err := v.exchange(ctx, code)
		if err != nil {
			return nil, err
		}
		rawIDToken = exchanged
	}

	idToken, err := v.idTokens.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidCredential, err.Error())
	}

	var claims Claims
	if err := idToken.Claims(&claims); err != nil {
		return nil, errors.Wrap(ErrInvalidCredential, err.Error())
	}
	if claims.Email == "" || !claims.EmailVerified {
		return nil, ErrEmailNotVerified
	}
	return &claims, nil
}

func (v *Verifier) exchange(ctx context.Context, code string) (string, error) {
	if v.oauth2 == nil {
		return "", ErrInvalidCredential
	}
	tok, err := v.oauth2.Exchange(ctx, code)
	if err != nil {
		return "", errors.Wrap(ErrInvalidCredential, err.Error())
	}
	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return "", errors.Wrap(ErrInvalidCredential, "no id_token in token response")
	}
	return rawIDToken, nil
}

package auth

import (
	apperrors "github.com/jrsteele09/surf-club-server/internal/errors"
)

var (
	ErrMissingCredentials = apperrors.New(apperrors.KindValidation, "Email and password are required")
	ErrInvalidCredentials = apperrors.New(apperrors.KindUnauthenticated, "Invalid email or password")
	ErrMissingToken       = apperrors.New(apperrors.KindValidation, "Token is required")
	ErrInvalidToken       = apperrors.New(apperrors.KindAuth, "Invalid refresh token")
	ErrExpiredOrInvalid   = apperrors.New(apperrors.KindAuth, "Expired or invalid refresh token")
	ErrAccountNotFound    = apperrors.New(apperrors.KindNotFound, "User not found")
	ErrTokenNotOwned      = apperrors.New(apperrors.KindAuth, "Refresh token is not valid for this user")
	ErrEmailTaken         = apperrors.New(apperrors.KindConflict, "User already exists")
	ErrHostOnly           = apperrors.New(apperrors.KindAuth, "Only hosts can perform this action")
	ErrMissingFields      = apperrors.New(apperrors.KindValidation, "All fields are required")
	ErrFederatedDisabled  = apperrors.New(apperrors.KindUnavailable, "Google login is not configured")

	// ErrMissingBearer and ErrInvalidAccessToken are returned by Authenticate.
	// A missing bearer token is a 401, a rejected one a 403.
	ErrMissingBearer      = apperrors.New(apperrors.KindUnauthenticated, "Access token is required")
	ErrInvalidAccessToken = apperrors.New(apperrors.KindAuth, "Invalid or expired access token")
)

package accounts

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/jrsteele09/surf-club-server/internal/errors"
)

var (
	ErrNotFound   = apperrors.New(apperrors.KindNotFound, "User not found")
	ErrEmailTaken = apperrors.New(apperrors.KindConflict, "Email is already registered")
)

// Account is a registered club member. The refresh token set holds one entry
// per live session and is never serialized.
type Account struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"` // empty for accounts created through Google login
	Role           string    `json:"role"`
	IsHost         bool      `json:"isHost"`
	RefreshTokens  []string  `json:"-"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	ActivityCount  int       `json:"activityCount"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Profile is the public view of an account.
type Profile struct {
	ID             string `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	IsHost         bool   `json:"isHost"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	Bio            string `json:"bio,omitempty"`
	ActivityCount  int    `json:"activityCount"`
}

func (a *Account) Profile() Profile {
	return Profile{
		ID:             a.ID,
		FirstName:      a.FirstName,
		LastName:       a.LastName,
		Email:          a.Email,
		Role:           a.Role,
		IsHost:         a.IsHost,
		ProfilePicture: a.ProfilePicture,
		Bio:            a.Bio,
		ActivityCount:  a.ActivityCount,
	}
}

// HasRefreshToken reports whether token is one of the account's live sessions.
func (a *Account) HasRefreshToken(token string) bool {
	for _, t := range a.RefreshTokens {
		if t == token {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers never share the token slice.
func (a *Account) Clone() *Account {
	c := *a
	c.RefreshTokens = append([]string(nil), a.RefreshTokens...)
	return &c
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Role           string `json:"role"`
	ProfilePicture string `json:"profilePicture"`
	Bio            string `json:"bio"`
}

func (u ProfileUpdate) Validate() error {
	if strings.TrimSpace(u.FirstName) == "" || strings.TrimSpace(u.LastName) == "" ||
		strings.TrimSpace(u.Role) == "" || strings.TrimSpace(u.ProfilePicture) == "" {
		return apperrors.New(apperrors.KindValidation, "First name, last name, role and profile picture are required")
	}
	return nil
}

// ValidateEmail checks that email is a bare address (no display name).
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return apperrors.New(apperrors.KindValidation, "Invalid email address")
	}
	return nil
}

// ValidatePasswordStrength checks if password meets the club's requirements:
// at least 6 characters with at least one letter and one number.
func ValidatePasswordStrength(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters long")
	}

	var hasLetter, hasNumber bool
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasLetter {
		return fmt.Errorf("password must contain at least one letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}
	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash is false for an empty hash, so federated-only accounts
// cannot log in with a password.
func CheckPasswordHash(password, hash string) bool {
	if hash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

package accounts

import "context"

// Repo persists accounts. The refresh token operations are each a single
// atomic update of one account row.
type Repo interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*Account, error)
	Delete(ctx context.Context, id string) error
	AdjustActivityCount(ctx context.Context, id string, delta int) error
	SetHost(ctx context.Context, id string, isHost bool) error

	FindByRefreshToken(ctx context.Context, token string) (*Account, error)
	AppendRefreshToken(ctx context.Context, id, token string) error
	// RemoveRefreshToken reports false when token was not in the set.
	RemoveRefreshToken(ctx context.Context, id, token string) (bool, error)
	// ReplaceRefreshToken swaps oldToken for newToken only while oldToken is
	// still in the set, and reports whether it did.
	ReplaceRefreshToken(ctx context.Context, id, oldToken, newToken string) (bool, error)
	ClearRefreshTokens(ctx context.Context, id string) error
}

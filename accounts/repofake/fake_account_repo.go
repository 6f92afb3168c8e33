package fakeaccountrepo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jrsteele09/surf-club-server/accounts"
)

var _ accounts.Repo = (*FakeAccountRepo)(nil)

// FakeAccountRepo is an in-memory accounts.Repo. Every refresh token mutation
// runs inside one critical section, matching the single-row atomic updates of
// the PostgreSQL repository. Accounts are copied in and out.
type FakeAccountRepo struct {
	accounts map[string]*accounts.Account
	emailIds map[string]string // email to account id
	lock     sync.RWMutex
	now      func() time.Time
}

func NewFakeAccountRepo() *FakeAccountRepo {
	return &FakeAccountRepo{
		accounts: make(map[string]*accounts.Account),
		emailIds: make(map[string]string),
		now:      time.Now,
	}
}

func (r *FakeAccountRepo) Create(_ context.Context, account *accounts.Account) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.emailIds[account.Email]; ok {
		return accounts.ErrEmailTaken
	}
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	now := r.now().UTC()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	r.accounts[account.ID] = account.Clone()
	r.emailIds[account.Email] = account.ID
	return nil
}

func (r *FakeAccountRepo) GetByID(_ context.Context, id string) (*accounts.Account, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	a, ok := r.accounts[id]
	if !ok {
		return nil, accounts.ErrNotFound
	}
	return a.Clone(), nil
}

func (r *FakeAccountRepo) GetByEmail(_ context.Context, email string) (*accounts.Account, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	id, ok := r.emailIds[email]
	if !ok {
		return nil, accounts.ErrNotFound
	}
	return r.accounts[id].Clone(), nil
}

func (r *FakeAccountRepo) UpdateProfile(_ context.Context, id string, update accounts.ProfileUpdate) (*accounts.Account, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return nil, accounts.ErrNotFound
	}
	a.FirstName = update.FirstName
	a.LastName = update.LastName
	a.Role = update.Role
	a.ProfilePicture = update.ProfilePicture
	a.Bio = update.Bio
	a.UpdatedAt = r.now().UTC()
	return a.Clone(), nil
}

func (r *FakeAccountRepo) Delete(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return accounts.ErrNotFound
	}
	delete(r.emailIds, a.Email)
	delete(r.accounts, id)
	return nil
}

func (r *FakeAccountRepo) AdjustActivityCount(_ context.Context, id string, delta int) error {
	return r.mutate(id, func(a *accounts.Account) {
		a.ActivityCount += delta
		if a.ActivityCount < 0 {
			a.ActivityCount = 0
		}
	})
}

func (r *FakeAccountRepo) SetHost(_ context.Context, id string, isHost bool) error {
	return r.mutate(id, func(a *accounts.Account) {
		a.IsHost = isHost
	})
}

func (r *FakeAccountRepo) FindByRefreshToken(_ context.Context, token string) (*accounts.Account, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	for _, a := range r.accounts {
		if a.HasRefreshToken(token) {
			return a.Clone(), nil
		}
	}
	return nil, accounts.ErrNotFound
}

func (r *FakeAccountRepo) AppendRefreshToken(_ context.Context, id, token string) error {
	return r.mutate(id, func(a *accounts.Account) {
		a.RefreshTokens = append(a.RefreshTokens, token)
	})
}

func (r *FakeAccountRepo) RemoveRefreshToken(_ context.Context, id, token string) (bool, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return false, nil
	}
	if !a.HasRefreshToken(token) {
		return false, nil
	}
	a.RefreshTokens = without(a.RefreshTokens, token)
	return true, nil
}

func (r *FakeAccountRepo) ReplaceRefreshToken(_ context.Context, id, oldToken, newToken string) (bool, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	a, ok := r.accounts[id]
	if !ok || !a.HasRefreshToken(oldToken) {
		return false, nil
	}
	a.RefreshTokens = append(without(a.RefreshTokens, oldToken), newToken)
	return true, nil
}

func (r *FakeAccountRepo) ClearRefreshTokens(_ context.Context, id string) error {
	return r.mutate(id, func(a *accounts.Account) {
		a.RefreshTokens = nil
	})
}

func (r *FakeAccountRepo) mutate(id string, fn func(a *accounts.Account)) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return accounts.ErrNotFound
	}
	fn(a)
	a.UpdatedAt = r.now().UTC()
	return nil
}

// without removes every occurrence of token, as array_remove does.
func without(tokens []string, token string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t != token {
			out = append(out, t)
		}
	}
	return out
}

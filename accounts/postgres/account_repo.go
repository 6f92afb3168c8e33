package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/jrsteele09/surf-club-server/accounts"
	"github.com/jrsteele09/surf-club-server/internal/store"
)

var _ accounts.Repo = (*AccountRepo)(nil)

const accountColumns = `id, first_name, last_name, email, password_hash, role, is_host,
	refresh_tokens, profile_picture, bio, activity_count, created_at, updated_at`

// AccountRepo implements accounts.Repo on the accounts table. Refresh token
// mutations are single UPDATE statements; the membership guard in the WHERE
// clause is re-checked under the row lock, so concurrent rotations of the same
// token cannot both succeed.
type AccountRepo struct {
	db store.DB
}

func NewAccountRepo(db store.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

func (r *AccountRepo) Create(ctx context.Context, a *accounts.Account) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO accounts (id, first_name, last_name, email, password_hash, role, is_host, profile_picture, bio)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`, a.ID, a.FirstName, a.LastName, a.Email, a.PasswordHash, a.Role, a.IsHost, a.ProfilePicture, a.Bio)

	if err := row.Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return oops.Code("ACCOUNT_EMAIL_TAKEN").With("email", a.Email).Wrap(accounts.ErrEmailTaken)
		}
		return oops.Code("ACCOUNT_CREATE_FAILED").With("operation", "insert account").Wrap(err)
	}
	return nil
}

func (r *AccountRepo) GetByID(ctx context.Context, id string) (*accounts.Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return r.scanOne(row, "id", id)
}

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*accounts.Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
	return r.scanOne(row, "email", email)
}

func (r *AccountRepo) UpdateProfile(ctx context.Context, id string, u accounts.ProfileUpdate) (*accounts.Account, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE accounts
		SET first_name = $2, last_name = $3, role = $4, profile_picture = $5, bio = $6, updated_at = now()
		WHERE id = $1
		RETURNING `+accountColumns,
		id, u.FirstName, u.LastName, u.Role, u.ProfilePicture, u.Bio)
	return r.scanOne(row, "id", id)
}

func (r *AccountRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return oops.Code("ACCOUNT_DELETE_FAILED").With("id", id).Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("ACCOUNT_NOT_FOUND").With("id", id).Wrap(accounts.ErrNotFound)
	}
	return nil
}

func (r *AccountRepo) AdjustActivityCount(ctx context.Context, id string, delta int) error {
	return r.execOne(ctx, "ACCOUNT_ACTIVITY_FAILED", id, `
		UPDATE accounts SET activity_count = GREATEST(activity_count + $2, 0), updated_at = now()
		WHERE id = $1
	`, id, delta)
}

func (r *AccountRepo) SetHost(ctx context.Context, id string, isHost bool) error {
	return r.execOne(ctx, "ACCOUNT_SET_HOST_FAILED", id, `
		UPDATE accounts SET is_host = $2, updated_at = now() WHERE id = $1
	`, id, isHost)
}

func (r *AccountRepo) FindByRefreshToken(ctx context.Context, token string) (*accounts.Account, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+accountColumns+` FROM accounts
		WHERE refresh_tokens @> ARRAY[$1]::text[]
		LIMIT 1
	`, token)
	a, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").With("lookup", "refresh_token").Wrap(accounts.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_GET_FAILED").With("lookup", "refresh_token").Wrap(err)
	}
	return a, nil
}

func (r *AccountRepo) AppendRefreshToken(ctx context.Context, id, token string) error {
	return r.execOne(ctx, "REFRESH_TOKEN_APPEND_FAILED", id, `
		UPDATE accounts SET refresh_tokens = array_append(refresh_tokens, $2), updated_at = now()
		WHERE id = $1
	`, id, token)
}

func (r *AccountRepo) RemoveRefreshToken(ctx context.Context, id, token string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE accounts SET refresh_tokens = array_remove(refresh_tokens, $2), updated_at = now()
		WHERE id = $1 AND refresh_tokens @> ARRAY[$2]::text[]
	`, id, token)
	if err != nil {
		return false, oops.Code("REFRESH_TOKEN_REMOVE_FAILED").With("id", id).Wrap(err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *AccountRepo) ReplaceRefreshToken(ctx context.Context, id, oldToken, newToken string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE accounts SET refresh_tokens = array_append(array_remove(refresh_tokens, $2), $3), updated_at = now()
		WHERE id = $1 AND refresh_tokens @> ARRAY[$2]::text[]
	`, id, oldToken, newToken)
	if err != nil {
		return false, oops.Code("REFRESH_TOKEN_REPLACE_FAILED").With("id", id).Wrap(err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *AccountRepo) ClearRefreshTokens(ctx context.Context, id string) error {
	return r.execOne(ctx, "REFRESH_TOKEN_CLEAR_FAILED", id, `
		UPDATE accounts SET refresh_tokens = '{}', updated_at = now()
		WHERE id = $1
	`, id)
}

// execOne runs a single-row update and maps zero affected rows to ErrNotFound.
func (r *AccountRepo) execOne(ctx context.Context, code, id, sql string, args ...any) error {
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return oops.Code(code).With("id", id).Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("ACCOUNT_NOT_FOUND").With("id", id).Wrap(accounts.ErrNotFound)
	}
	return nil
}

func (r *AccountRepo) scanOne(row pgx.Row, key, value string) (*accounts.Account, error) {
	a, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").With(key, value).Wrap(accounts.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_GET_FAILED").With(key, value).Wrap(err)
	}
	return a, nil
}

func scanAccount(row pgx.Row) (*accounts.Account, error) {
	var a accounts.Account
	err := row.Scan(
		&a.ID,
		&a.FirstName,
		&a.LastName,
		&a.Email,
		&a.PasswordHash,
		&a.Role,
		&a.IsHost,
		&a.RefreshTokens,
		&a.ProfilePicture,
		&a.Bio,
		&a.ActivityCount,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

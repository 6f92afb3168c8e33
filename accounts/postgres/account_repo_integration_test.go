//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jrsteele09/surf-club-server/accounts"
	"github.com/jrsteele09/surf-club-server/accounts/postgres"
	"github.com/jrsteele09/surf-club-server/internal/store"
)

func setupDatabase(t *testing.T) *postgres.AccountRepo {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("surfclub"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	migrator, err := store.NewMigrator(connStr)
	require.NoError(t, err)
	require.NoError(t, migrator.Up())
	require.NoError(t, migrator.Close())

	pool, err := store.Connect(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return postgres.NewAccountRepo(pool)
}

func TestRefreshTokenRotationAgainstPostgres(t *testing.T) {
	ctx := context.Background()
	repo := setupDatabase(t)

	acct := &accounts.Account{FirstName: "Kai", LastName: "Lenny", Email: "kai@x.com", Role: "surfer"}
	require.NoError(t, repo.Create(ctx, acct))

	require.NoError(t, repo.AppendRefreshToken(ctx, acct.ID, "r1"))
	found, err := repo.FindByRefreshToken(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, acct.ID, found.ID)

	// Only one of many concurrent rotations of the same token may win.
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			ok, err := repo.ReplaceRefreshToken(ctx, acct.ID, "r1", "r2-"+string(rune('a'+n)))
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, wins)

	got, err := repo.GetByID(ctx, acct.ID)
	require.NoError(t, err)
	require.Len(t, got.RefreshTokens, 1)
	assert.NotEqual(t, "r1", got.RefreshTokens[0])

	removed, err := repo.RemoveRefreshToken(ctx, acct.ID, "r1")
	require.NoError(t, err)
	assert.False(t, removed)

	require.NoError(t, repo.ClearRefreshTokens(ctx, acct.ID))
	_, err = repo.FindByRefreshToken(ctx, got.RefreshTokens[0])
	assert.ErrorIs(t, err, accounts.ErrNotFound)
}

func TestDuplicateEmailAgainstPostgres(t *testing.T) {
	ctx := context.Background()
	repo := setupDatabase(t)

	require.NoError(t, repo.Create(ctx, &accounts.Account{FirstName: "A", LastName: "B", Email: "a@x.com", Role: "surfer"}))
	err := repo.Create(ctx, &accounts.Account{FirstName: "C", LastName: "D", Email: "a@x.com", Role: "surfer"})
	assert.ErrorIs(t, err, accounts.ErrEmailTaken)
}

package main

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/surf-club-server/accounts"
	accountspg "github.com/jrsteele09/surf-club-server/accounts/postgres"
	fakeaccountrepo "github.com/jrsteele09/surf-club-server/accounts/repofake"
	"github.com/jrsteele09/surf-club-server/auth"
	"github.com/jrsteele09/surf-club-server/auth/federated"
	"github.com/jrsteele09/surf-club-server/comments"
	commentspg "github.com/jrsteele09/surf-club-server/comments/postgres"
	fakecommentrepo "github.com/jrsteele09/surf-club-server/comments/repofake"
	"github.com/jrsteele09/surf-club-server/internal/config"
	"github.com/jrsteele09/surf-club-server/internal/store"
	"github.com/jrsteele09/surf-club-server/media"
	"github.com/jrsteele09/surf-club-server/posts"
	postspg "github.com/jrsteele09/surf-club-server/posts/postgres"
	fakepostrepo "github.com/jrsteele09/surf-club-server/posts/repofake"
	"github.com/jrsteele09/surf-club-server/server"
	"github.com/jrsteele09/surf-club-server/token"
)

type repos struct {
	accounts accounts.Repo
	posts    posts.Repo
	comments comments.Repo
	pool     *pgxpool.Pool
}

func (r *repos) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

// openRepos connects to PostgreSQL, or falls back to in-memory repositories
// when no database URL is configured.
func openRepos(ctx context.Context, cfg *config.Config, autoMigrate bool) (*repos, error) {
	if cfg.DatabaseURL == "" {
		log.Warn().Msg("no database configured, using the in-memory store")
		return &repos{
			accounts: fakeaccountrepo.NewFakeAccountRepo(),
			posts:    fakepostrepo.NewFakePostRepo(),
			comments: fakecommentrepo.NewFakeCommentRepo(),
		}, nil
	}

	if autoMigrate {
		if err := migrateUp(cfg.DatabaseURL); err != nil {
			return nil, err
		}
	}

	pool, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return &repos{
		accounts: accountspg.NewAccountRepo(pool),
		posts:    postspg.NewPostRepo(pool),
		comments: commentspg.NewCommentRepo(pool),
		pool:     pool,
	}, nil
}

// newHandler wires the domain services and optional collaborators into the
// HTTP server.
func newHandler(ctx context.Context, cfg *config.Config, r *repos) (http.Handler, error) {
	accessLife, err := cfg.AccessTokenLifetime()
	if err != nil {
		return nil, err
	}
	refreshLife, err := cfg.RefreshTokenLifetime()
	if err != nil {
		return nil, err
	}
	codec, err := token.NewCodec(token.Config{
		AccessSecret:    cfg.Tokens.AccessSecret,
		RefreshSecret:   cfg.Tokens.RefreshSecret,
		AccessLifetime:  accessLife,
		RefreshLifetime: refreshLife,
		Issuer:          cfg.Tokens.Issuer,
	})
	if err != nil {
		return nil, err
	}

	var sessionOpts []auth.SessionManagerOption
	if cfg.Google.Enabled() {
		verifier, err := federated.NewGoogleVerifier(ctx, federated.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURL,
		})
		if err != nil {
			return nil, err
		}
		sessionOpts = append(sessionOpts, auth.WithFederatedVerifier(verifier))
	}
	sessions, err := auth.NewSessionManager(auth.Repos{Accounts: r.accounts}, codec, sessionOpts...)
	if err != nil {
		return nil, err
	}

	var serverOpts []server.Option
	if cfg.Media.Enabled() {
		presigner, err := media.NewPresigner(ctx, cfg.Media)
		if err != nil {
			return nil, err
		}
		serverOpts = append(serverOpts, server.WithPresigner(presigner))
	}

	srv, err := server.New(cfg, server.Services{
		Sessions: sessions,
		Accounts: r.accounts,
		Posts:    posts.NewService(r.posts, r.accounts),
		Comments: comments.NewService(r.comments, r.posts),
	}, serverOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "newHandler")
	}
	return srv, nil
}

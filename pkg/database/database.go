// Package database owns the lazily-materialised Postgres engine and the
// refresh of short-lived credentials. Token issuance itself is supplied by the
// caller; this package only tracks expiry.
package database

import (
	"context"
	"database/sql"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/transitflow/transitflow/pkg/config"
	"github.com/transitflow/transitflow/pkg/metrics"
)

// RefreshThreshold is how long before token expiry a new engine is built.
const RefreshThreshold = 30 * time.Second

// TokenLifetime is the issuer-side lifetime of an IAM auth token.
const TokenLifetime = 15 * time.Minute

// TokenProvider issues a database auth token for non-local environments.
type TokenProvider interface {
	IssueToken(ctx context.Context) (token string, expiresAt time.Time, err error)
}

type engineState struct {
	db        *sql.DB
	expiresAt time.Time
}

// Manager hands out a connection pool, rebuilding it when the auth token is
// close to expiry. Refresh is deliberately unsynchronised: concurrent callers
// may each build a valid engine and the last stored one wins. Stale engines
// are not closed eagerly because in-flight sessions still hold their
// connections; the pool drains once those sessions release.
type Manager struct {
	config *config.Config
	tokens TokenProvider

	state atomic.Pointer[engineState]
}

func NewManager(cfg *config.Config, tokens TokenProvider) *Manager {
	return &Manager{
		config: cfg,
		tokens: tokens,
	}
}

// Engine returns the current connection pool, building or refreshing it
// first if needed.
func (m *Manager) Engine(ctx context.Context) (*sql.DB, error) {
	state := m.state.Load()
	if state != nil && !m.needsRefresh(state) {
		return state.db, nil
	}

	return m.refresh(ctx)
}

func (m *Manager) needsRefresh(state *engineState) bool {
	if state.expiresAt.IsZero() {
		// Password auth has no expiry.
		return false
	}

	return !time.Now().Before(state.expiresAt.Add(-RefreshThreshold))
}

func (m *Manager) refresh(ctx context.Context) (*sql.DB, error) {
	token := m.config.Password
	var expiresAt time.Time

	if !m.config.IsLocal() {
		var err error
		token, expiresAt, err = m.tokens.IssueToken(ctx)
		if err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("pgx", m.config.ConnectionURL(token))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	err = backoff.Retry(func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return db.PingContext(pingCtx)
	}, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5), ctx))
	if err != nil {
		db.Close()
		return nil, err
	}

	m.state.Store(&engineState{db: db, expiresAt: expiresAt})
	metrics.EngineRefreshes.Inc()
	log.Debug().Str("host", m.config.Host).Msg("Database engine initialised")

	return db, nil
}

// Close releases the current engine if one was built.
func (m *Manager) Close() error {
	state := m.state.Swap(nil)
	if state == nil {
		return nil
	}

	return state.db.Close()
}

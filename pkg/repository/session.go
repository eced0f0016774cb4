package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/transitflow/transitflow/pkg/database"
)

// Session is one scoped unit of work. All statements inside a scope share a
// transaction; the scope commits on normal return, rolls back on error, and
// always releases the underlying connection.
type Session struct {
	tx *sql.Tx
}

func (s *Session) Tx() *sql.Tx {
	return s.tx
}

// WithSession acquires a fresh engine handle, opens a transaction and runs
// fn inside it. Engine acquisition per scope is what lets stale engines
// drain after a credential refresh.
func WithSession(ctx context.Context, manager *database.Manager, fn func(session *Session) error) error {
	db, err := manager.Engine(ctx)
	if err != nil {
		return wrap(err, "")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return wrap(err, "begin")
	}

	if err := fn(&Session{tx: tx}); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && rollbackErr != sql.ErrTxDone {
			log.Error().Err(rollbackErr).Msg("Session rollback failed")
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		return wrap(err, "commit")
	}

	return nil
}

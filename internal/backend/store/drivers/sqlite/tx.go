package sqlite

import (
	"context"
	"database/sql"

	"github.com/robochamp/backend/internal/backend/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Users() store.Users           { return &usersRepo{db: t.tx} }
func (t *txStore) Arenas() store.Arenas         { return &arenasRepo{db: t.tx} }
func (t *txStore) Categories() store.Categories { return &categoriesRepo{db: t.tx} }
func (t *txStore) Teams() store.Teams           { return &teamsRepo{db: t.tx} }
func (t *txStore) Matches() store.Matches       { return &matchesRepo{db: t.tx} }

// Nested transactions are not supported; these exist to satisfy store.Store.
func (t *txStore) Tx(context.Context) (store.Tx, error) {
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return fn(t)
}

func (t *txStore) ApplyMigrations() error     { return sql.ErrTxDone }
func (t *txStore) Close() error               { return nil }
func (t *txStore) Ping(context.Context) error { return nil }

// Package repo implements the pantry and donation store on PostgreSQL.
package repo

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"bytepantry/internal/domain"
	"bytepantry/internal/infra"
)

//go:embed schema.sql
var schemaSQL string

// Store implements domain.Store over marker-tagged statements.
type Store struct {
	db    infra.SQLTxBeginner
	close func()
}

// NewStore wraps db. closeFn, when set, runs on Close.
func NewStore(db infra.SQLTxBeginner, closeFn func()) *Store {
	return &Store{db: db, close: closeFn}
}

func (s *Store) Close() error {
	if s.close != nil {
		s.close()
	}
	return nil
}

type schemaExecer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ApplySchema creates missing tables, indexes and the trigger that keeps
// donation rows immutable. It is safe to run on every start.
func ApplySchema(ctx context.Context, db schemaExecer) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// classify marks serialization failures, deadlocks and lock timeouts as
// domain.ErrConflict so the whole transaction may be retried.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if infra.IsRetryable(err) {
		return fmt.Errorf("%w: %w", domain.ErrConflict, err)
	}
	return err
}

var _ domain.Store = (*Store)(nil)

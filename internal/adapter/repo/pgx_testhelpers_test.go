package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"bytepantry/internal/infra"
)

type simpleRow struct {
	scan func(dest ...any) error
}

func (r simpleRow) Scan(dest ...any) error {
	if r.scan == nil {
		return pgx.ErrNoRows
	}
	return r.scan(dest...)
}

func rowOf(values ...any) pgx.Row {
	return simpleRow{scan: func(dest ...any) error { return assignAll(dest, values) }}
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

type testRowsBase struct{}

func (testRowsBase) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (testRowsBase) Conn() *pgx.Conn { return nil }

func (testRowsBase) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (testRowsBase) Values() ([]any, error) {
	return nil, fmt.Errorf("values not supported in test rows")
}

func (testRowsBase) RawValues() [][]byte { return nil }

// sliceRows iterates over fixed rows, assigning columns positionally.
type sliceRows struct {
	testRowsBase
	rows [][]any
	idx  int
}

func (r *sliceRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *sliceRows) Scan(dest ...any) error {
	if r.idx == 0 || r.idx > len(r.rows) {
		return pgx.ErrNoRows
	}
	return assignAll(dest, r.rows[r.idx-1])
}

func (r *sliceRows) Err() error { return nil }

func (r *sliceRows) Close() {}

func assignAll(dest []any, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("unexpected scan args: got %d want %d", len(dest), len(values))
	}
	for i := range dest {
		if err := assign(dest[i], values[i]); err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
	}
	return nil
}

func assign(dest, src any) error {
	switch d := dest.(type) {
	case *int64:
		*d = src.(int64)
	case *int:
		*d = src.(int)
	case *string:
		*d = src.(string)
	case **string:
		if src == nil {
			*d = nil
			return nil
		}
		v := src.(string)
		*d = &v
	case *time.Time:
		*d = src.(time.Time)
	default:
		return fmt.Errorf("unsupported scan destination %T", dest)
	}
	return nil
}

type call struct {
	query string
	args  []any
}

// fakeSQL routes statements to per-test handlers and records every call.
// Transactions share the handlers and the call log.
type fakeSQL struct {
	exec     func(query string, args []any) (pgconn.CommandTag, error)
	queryRow func(query string, args []any) pgx.Row
	query    func(query string, args []any) (pgx.Rows, error)
	beginErr error

	commitErr error
	calls     []call
	txs       []*fakeTx
}

func (f *fakeSQL) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, call{query, args})
	if f.exec == nil {
		return pgconn.CommandTag{}, fmt.Errorf("unexpected exec")
	}
	return f.exec(query, args)
}

func (f *fakeSQL) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	f.calls = append(f.calls, call{query, args})
	if f.queryRow == nil {
		return errRow{err: fmt.Errorf("unexpected query row")}
	}
	return f.queryRow(query, args)
}

func (f *fakeSQL) Query(_ context.Context, query string, args ...any) (pgx.Rows, error) {
	f.calls = append(f.calls, call{query, args})
	if f.query == nil {
		return nil, fmt.Errorf("unexpected query")
	}
	return f.query(query, args)
}

func (f *fakeSQL) Begin(context.Context) (infra.SQLTx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	tx := &fakeTx{fakeSQL: f}
	f.txs = append(f.txs, tx)
	return tx, nil
}

type fakeTx struct {
	*fakeSQL
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

func (f *fakeSQL) queries() []string {
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.query)
	}
	return out
}

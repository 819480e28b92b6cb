// Package sqldb bridges the service to its relational stores. The store is
// only ever addressed through named stored procedures with a fixed
// parameter shape per operation; there are no ad-hoc queries.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
)

// ErrUnknownStore is returned when a store id has no registered connection.
var ErrUnknownStore = errors.New("unknown store")

// Params is the typed argument set bound to a single procedure call. Args
// returns the values in the procedure's positional order.
type Params interface {
	Args() []any
}

// RowScanner binds a result shape to a procedure at the call site. ScanDest
// returns pointers to the row's fields in result-column order.
type RowScanner interface {
	ScanDest() []any
}

// DataAccess executes named stored procedures against named stores. It
// carries no operation semantics of its own.
type DataAccess struct {
	stores map[string]*sql.DB
}

func New() *DataAccess {
	return &DataAccess{stores: make(map[string]*sql.DB)}
}

// Open connects every named store with the postgres driver and verifies
// connectivity before returning.
func Open(ctx context.Context, dsns map[string]string) (*DataAccess, error) {
	d := New()
	for name, dsn := range dsns {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("open store %q: %w", name, err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			d.Close()
			return nil, fmt.Errorf("ping store %q: %w", name, err)
		}
		d.Register(name, db)
	}
	return d, nil
}

// Register adds a store under the given id, replacing any previous one.
func (d *DataAccess) Register(name string, db *sql.DB) {
	d.stores[name] = db
}

// Ping verifies connectivity to the named store.
func (d *DataAccess) Ping(ctx context.Context, name string) error {
	db, err := d.store(name)
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

// Close closes every registered store.
func (d *DataAccess) Close() {
	for _, db := range d.stores {
		_ = db.Close()
	}
}

func (d *DataAccess) store(name string) (*sql.DB, error) {
	db, ok := d.stores[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, name)
	}
	return db, nil
}

// Query invokes the named procedure on the named store and maps every
// result row to T. The connection is scoped to this call and released on
// every exit path; the procedure is executed exactly once.
func Query[T any, PT interface {
	*T
	RowScanner
}](ctx context.Context, d *DataAccess, procedure string, params Params, storeName string) ([]T, error) {
	db, err := d.store(storeName)
	if err != nil {
		return nil, err
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection to %q: %w", storeName, err)
	}
	defer conn.Close()

	args := params.Args()
	rows, err := conn.QueryContext(ctx, selectStatement(procedure, len(args)), args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", procedure, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var row T
		if err := rows.Scan(PT(&row).ScanDest()...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", procedure, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", procedure, err)
	}
	return out, nil
}

// Execute invokes the named procedure for its side effect, discarding any
// result. Same scoping and single-attempt rules as Query.
func Execute(ctx context.Context, d *DataAccess, procedure string, params Params, storeName string) error {
	db, err := d.store(storeName)
	if err != nil {
		return err
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection to %q: %w", storeName, err)
	}
	defer conn.Close()

	args := params.Args()
	if _, err := conn.ExecContext(ctx, callStatement(procedure, len(args)), args...); err != nil {
		return fmt.Errorf("execute %s: %w", procedure, err)
	}
	return nil
}

func selectStatement(procedure string, argc int) string {
	return "SELECT * FROM " + procedure + "(" + placeholders(argc) + ")"
}

func callStatement(procedure string, argc int) string {
	return "CALL " + procedure + "(" + placeholders(argc) + ")"
}

func placeholders(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		if i > 1 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "$%d", i)
	}
	return b.String()
}

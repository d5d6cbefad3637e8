// Package storage provides the SQLite-backed data access layer: a thin query
// executor (DataBase) and a generic, schema-aware table accessor (Table) that
// the entity modules build on. It knows table and column names, never domain
// types.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/redsthan/Group-project---Goods-DB/internal/errs"
)

// DataBase executes parameterized SQL against a single SQLite file. Each call
// borrows a connection from the pool, runs one implicit-transaction statement
// and returns the connection on every exit path; no connection is held across
// calls. Engine errors propagate wrapped in errs.ErrStorage.
type DataBase struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the SQLite database at path with foreign
// key enforcement on, and verifies the file is reachable.
func Open(path string) (*DataBase, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=ON")
	if err != nil {
		return nil, wrapError("open "+path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, wrapError("ping "+path, err)
	}
	return &DataBase{db: db, path: path}, nil
}

// Path returns the database file path the handle was opened with.
func (d *DataBase) Path() string { return d.path }

// Close releases the underlying pool.
func (d *DataBase) Close() error { return d.db.Close() }

// Query runs a parameterized query and materializes every result row.
func (d *DataBase) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapError("query", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, wrapError("columns", err)
	}

	var result []Row
	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, wrapError("scan", err)
		}
		row := make(Row, len(columns))
		for i, name := range columns {
			row[name] = values[i]
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("rows", err)
	}
	return result, nil
}

// Exec runs a parameterized statement. The result carries the last inserted
// row id for INSERTs and the affected row count for UPDATE/DELETE.
func (d *DataBase) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := d.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, wrapError("exec", err)
	}
	return res, nil
}

// ExecScript runs a multi-statement SQL script, statements separated by
// semicolons, in order.
func (d *DataBase) ExecScript(ctx context.Context, script string) error {
	if _, err := d.db.ExecContext(ctx, script); err != nil {
		return wrapError("exec script", err)
	}
	return nil
}

// ExecFile reads the SQL script at path and executes it. A missing file fails
// with an error matching both errs.ErrIO and os.ErrNotExist; an unreadable
// one with errs.ErrIO and os.ErrPermission, so callers can tell the two
// apart.
func (d *DataBase) ExecFile(ctx context.Context, path string) error {
	script, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read script %s: %w", errs.ErrIO, path, err)
	}
	return d.ExecScript(ctx, string(script))
}

// Table binds a generic accessor to one of the registered tables. Table
// names are compiled into the allow-list in schema.go and never come from
// callers outside this module's constructors, so an unknown name is a
// programming error and panics.
func (d *DataBase) Table(name string) *Table {
	if _, ok := tableColumns[name]; !ok {
		panic(fmt.Sprintf("storage: table %q is not registered", name))
	}
	return &Table{db: d, name: name}
}

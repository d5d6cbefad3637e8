package storage

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/redsthan/Group-project---Goods-DB/internal/errs"
)

// Table is a generic accessor for one registered table. It builds SQL from
// allow-listed identifiers and bind parameters only; a column name that is
// not registered for the table fails with errs.ErrInvalidArgument before any
// statement reaches the engine.
type Table struct {
	db   *DataBase
	name string
}

// Name returns the table name the accessor is bound to.
func (t *Table) Name() string { return t.name }

// ── reads ─────────────────────────────────────────────────────────────────────

// Columns reports the table's column names in schema order.
func (t *Table) Columns(ctx context.Context) ([]string, error) {
	rows, err := t.db.Query(ctx, fmt.Sprintf("PRAGMA table_info(%s)", t.name))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.String("name"))
	}
	return names, nil
}

// SelectByKey loads the row with the given id, restricted to the requested
// columns when any are named, and fails with errs.ErrNotFound when the row
// does not exist.
func (t *Table) SelectByKey(ctx context.Context, id int64, columns ...string) (Row, error) {
	selection := "*"
	if len(columns) > 0 {
		if err := t.checkColumns(columns...); err != nil {
			return nil, err
		}
		selection = strings.Join(columns, ", ")
	}
	rows, err := t.db.Query(ctx, fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", selection, t.name), id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s id %d", errs.ErrNotFound, t.name, id)
	}
	return rows[0], nil
}

// SelectWhere returns every row matching the conjunction of the given
// column/value pairs, or all rows when conds is empty.
func (t *Table) SelectWhere(ctx context.Context, conds map[string]any) ([]Row, error) {
	clause, args, err := t.whereClause(conds)
	if err != nil {
		return nil, err
	}
	return t.db.Query(ctx, fmt.Sprintf("SELECT * FROM %s%s", t.name, clause), args...)
}

// UniqueToID resolves the id of the row whose column holds value. The column
// is expected to be unique; with a non-unique column the first match wins.
func (t *Table) UniqueToID(ctx context.Context, column string, value any) (int64, error) {
	if err := t.checkColumns(column); err != nil {
		return 0, err
	}
	rows, err := t.db.Query(ctx, fmt.Sprintf("SELECT id FROM %s WHERE %s = ?", t.name, column), value)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("%w: %s with %s = %v", errs.ErrNotFound, t.name, column, value)
	}
	return rows[0].Int64("id"), nil
}

// SearchSubstring returns the ids of rows where needle appears inside at
// least one of the given text columns. Matching is case-insensitive for
// ASCII, and every row matches the empty needle. A non-empty sortBy orders
// the ids by that column, descending when desc is set.
func (t *Table) SearchSubstring(ctx context.Context, needle string, columns []string, sortBy string, desc bool) ([]int64, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: search on %s with no columns", errs.ErrInvalidArgument, t.name)
	}
	if err := t.checkColumns(columns...); err != nil {
		return nil, err
	}
	matches := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, c := range columns {
		matches[i] = c + " LIKE '%' || ? || '%'"
		args[i] = needle
	}
	query := fmt.Sprintf("SELECT id FROM %s WHERE %s", t.name, strings.Join(matches, " OR "))
	if sortBy != "" {
		if err := t.checkColumns(sortBy); err != nil {
			return nil, err
		}
		query += " ORDER BY " + sortBy
		if desc {
			query += " DESC"
		}
	}
	rows, err := t.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.Int64("id"))
	}
	return ids, nil
}

// Exists reports whether at least one row matches the conjunction of conds.
func (t *Table) Exists(ctx context.Context, conds map[string]any) (bool, error) {
	clause, args, err := t.whereClause(conds)
	if err != nil {
		return false, err
	}
	rows, err := t.db.Query(ctx, fmt.Sprintf("SELECT 1 FROM %s%s LIMIT 1", t.name, clause), args...)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// ── writes ────────────────────────────────────────────────────────────────────

// Insert adds one row from the given column/value pairs and returns the id
// the engine assigned to it.
func (t *Table) Insert(ctx context.Context, fields map[string]any) (int64, error) {
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: insert into %s with no fields", errs.ErrInvalidArgument, t.name)
	}
	columns := sortedKeys(fields)
	if err := t.checkColumns(columns...); err != nil {
		return 0, err
	}
	marks := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, c := range columns {
		marks[i] = "?"
		args[i] = fields[c]
	}
	res, err := t.db.Exec(ctx,
		fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.name, strings.Join(columns, ", "), strings.Join(marks, ", ")),
		args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: last insert id: %w", errs.ErrStorage, err)
	}
	return id, nil
}

// Update overwrites one column of the row with the given id. Updating a row
// that no longer exists fails with errs.ErrNotFound so that stale handles
// surface instead of silently writing nothing.
func (t *Table) Update(ctx context.Context, id int64, column string, value any) error {
	if err := t.checkColumns(column); err != nil {
		return err
	}
	res, err := t.db.Exec(ctx, fmt.Sprintf("UPDATE %s SET %s = ? WHERE id = ?", t.name, column), value, id)
	if err != nil {
		return err
	}
	return t.ensureAffected(res, id)
}

// Upsert inserts the row described by fields or, when a row with the same
// values in the key columns already exists, updates that row's remaining
// fields instead. Insert and update happen as one atomic statement.
func (t *Table) Upsert(ctx context.Context, keys []string, fields map[string]any) error {
	if len(keys) == 0 {
		return fmt.Errorf("%w: upsert into %s with no key columns", errs.ErrInvalidArgument, t.name)
	}
	if err := t.checkColumns(keys...); err != nil {
		return err
	}
	columns := sortedKeys(fields)
	if err := t.checkColumns(columns...); err != nil {
		return err
	}
	for _, k := range keys {
		if _, ok := fields[k]; !ok {
			return fmt.Errorf("%w: upsert into %s misses key column %q", errs.ErrInvalidArgument, t.name, k)
		}
	}
	marks := make([]string, len(columns))
	args := make([]any, len(columns))
	var sets []string
	for i, c := range columns {
		marks[i] = "?"
		args[i] = fields[c]
		if !slices.Contains(keys, c) {
			sets = append(sets, c+" = excluded."+c)
		}
	}
	action := "DO NOTHING"
	if len(sets) > 0 {
		action = "DO UPDATE SET " + strings.Join(sets, ", ")
	}
	_, err := t.db.Exec(ctx,
		fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT(%s) %s",
			t.name, strings.Join(columns, ", "), strings.Join(marks, ", "), strings.Join(keys, ", "), action),
		args...)
	return err
}

// Delete removes the row with the given id, errs.ErrNotFound when absent.
func (t *Table) Delete(ctx context.Context, id int64) error {
	res, err := t.db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", t.name), id)
	if err != nil {
		return err
	}
	return t.ensureAffected(res, id)
}

// DeleteWhere removes every row matching the conjunction of conds and fails
// with errs.ErrNotFound when nothing matched. Empty conds are rejected
// rather than emptying the table.
func (t *Table) DeleteWhere(ctx context.Context, conds map[string]any) error {
	if len(conds) == 0 {
		return fmt.Errorf("%w: delete from %s with no conditions", errs.ErrInvalidArgument, t.name)
	}
	clause, args, err := t.whereClause(conds)
	if err != nil {
		return err
	}
	res, err := t.db.Exec(ctx, fmt.Sprintf("DELETE FROM %s%s", t.name, clause), args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %w", errs.ErrStorage, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: no %s row matches %v", errs.ErrNotFound, t.name, conds)
	}
	return nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (t *Table) checkColumns(columns ...string) error {
	for _, c := range columns {
		if !columnAllowed(t.name, c) {
			return fmt.Errorf("%w: column %q is not part of table %s", errs.ErrInvalidArgument, c, t.name)
		}
	}
	return nil
}

func (t *Table) whereClause(conds map[string]any) (string, []any, error) {
	if len(conds) == 0 {
		return "", nil, nil
	}
	columns := sortedKeys(conds)
	if err := t.checkColumns(columns...); err != nil {
		return "", nil, err
	}
	parts := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, c := range columns {
		parts[i] = c + " = ?"
		args[i] = conds[c]
	}
	return " WHERE " + strings.Join(parts, " AND "), args, nil
}

func (t *Table) ensureAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %w", errs.ErrStorage, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s id %d", errs.ErrNotFound, t.name, id)
	}
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Package database owns the connection to the relational store and the
// generic data access façade every repository is built on.
package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// Row is a column -> value map used for inserts and patches.
type Row map[string]any

// Where is a column -> value equality filter joined with AND.
type Where map[string]any

// Observer receives the duration of each statement, keyed by operation.
type Observer func(op string, d time.Duration)

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Store runs parameter-bound statements. Table and column names come from
// code, never from callers' input, and are still checked against identRe.
// Statements are written with ? placeholders and rebound for the driver.
type Store struct {
	db      *sqlx.DB
	observe Observer
}

// NewStore wraps db. observe may be nil.
func NewStore(db *sqlx.DB, observe Observer) *Store {
	if observe == nil {
		observe = func(string, time.Duration) {}
	}
	return &Store{db: db, observe: observe}
}

// DB exposes the underlying handle for migrations and health checks.
func (s *Store) DB() *sqlx.DB { return s.db }

// Select runs a hand written query and scans every row into dest, which
// must be a pointer to a slice.
func (s *Store) Select(ctx context.Context, dest any, query string, args ...any) error {
	defer s.timed("select")()
	return s.db.SelectContext(ctx, dest, s.db.Rebind(query), args...)
}

// SelectIn is Select for queries with an IN (?) clause: slice arguments
// are expanded before rebinding. An empty slice matches nothing and skips
// the round trip.
func (s *Store) SelectIn(ctx context.Context, dest any, query string, args ...any) error {
	for _, a := range args {
		rv := reflect.ValueOf(a)
		if rv.Kind() == reflect.Slice && rv.Len() == 0 {
			return nil
		}
	}
	q, expanded, err := sqlx.In(query, args...)
	if err != nil {
		return fmt.Errorf("expand in: %w", err)
	}
	defer s.timed("select")()
	return s.db.SelectContext(ctx, dest, s.db.Rebind(q), expanded...)
}

// Get loads a single row of table into dest. It returns sql.ErrNoRows when
// nothing matches.
func (s *Store) Get(ctx context.Context, dest any, table string, cols []string, where Where) error {
	q, args, err := selectSQL(table, cols, where)
	if err != nil {
		return err
	}
	defer s.timed("get")()
	return s.db.GetContext(ctx, dest, s.db.Rebind(q+" LIMIT 1"), args...)
}

// Find loads every matching row of table into dest.
func (s *Store) Find(ctx context.Context, dest any, table string, cols []string, where Where) error {
	q, args, err := selectSQL(table, cols, where)
	if err != nil {
		return err
	}
	defer s.timed("find")()
	return s.db.SelectContext(ctx, dest, s.db.Rebind(q), args...)
}

// Insert adds row to table. Nil values are left to column defaults.
func (s *Store) Insert(ctx context.Context, table string, row Row) error {
	q, args, err := insertSQL(table, row)
	if err != nil {
		return err
	}
	defer s.timed("insert")()
	_, err = s.db.ExecContext(ctx, s.db.Rebind(q), args...)
	return err
}

// InsertReturning adds row and reports the generated value of col. Postgres
// uses RETURNING; MySQL reports LastInsertId.
func (s *Store) InsertReturning(ctx context.Context, table string, row Row, col string) (int64, error) {
	if !identRe.MatchString(col) {
		return 0, fmt.Errorf("invalid column %q", col)
	}
	q, args, err := insertSQL(table, row)
	if err != nil {
		return 0, err
	}
	defer s.timed("insert")()

	if sqlx.BindType(s.db.DriverName()) == sqlx.DOLLAR {
		var id int64
		err := s.db.QueryRowxContext(ctx, s.db.Rebind(q+" RETURNING "+col), args...).Scan(&id)
		return id, err
	}
	res, err := s.db.ExecContext(ctx, s.db.Rebind(q), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update applies patch to every row matching where. Nil patch values are
// skipped so callers can pass optional fields straight through; an empty
// patch is a no-op.
func (s *Store) Update(ctx context.Context, table string, patch Row, where Where) error {
	cols := present(patch)
	if len(cols) == 0 {
		return nil
	}
	if !identRe.MatchString(table) {
		return fmt.Errorf("invalid table %q", table)
	}
	if len(where) == 0 {
		return fmt.Errorf("update %s: refusing to run without a filter", table)
	}
	sets := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+len(where))
	for _, c := range cols {
		if !identRe.MatchString(c) {
			return fmt.Errorf("invalid column %q", c)
		}
		sets = append(sets, c+" = ?")
		args = append(args, value(patch[c]))
	}
	cond, wargs, err := whereSQL(where)
	if err != nil {
		return err
	}
	q := "UPDATE " + table + " SET " + strings.Join(sets, ", ") + cond
	defer s.timed("update")()
	_, err = s.db.ExecContext(ctx, s.db.Rebind(q), append(args, wargs...)...)
	return err
}

// Delete physically removes every row matching where.
func (s *Store) Delete(ctx context.Context, table string, where Where) error {
	if !identRe.MatchString(table) {
		return fmt.Errorf("invalid table %q", table)
	}
	if len(where) == 0 {
		return fmt.Errorf("delete %s: refusing to run without a filter", table)
	}
	cond, args, err := whereSQL(where)
	if err != nil {
		return err
	}
	defer s.timed("delete")()
	_, err = s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM "+table+cond), args...)
	return err
}

func (s *Store) timed(op string) func() {
	start := time.Now()
	return func() { s.observe(op, time.Since(start)) }
}

func selectSQL(table string, cols []string, where Where) (string, []any, error) {
	if !identRe.MatchString(table) {
		return "", nil, fmt.Errorf("invalid table %q", table)
	}
	list := "*"
	if len(cols) > 0 {
		for _, c := range cols {
			if !identRe.MatchString(c) {
				return "", nil, fmt.Errorf("invalid column %q", c)
			}
		}
		list = strings.Join(cols, ", ")
	}
	cond, args, err := whereSQL(where)
	if err != nil {
		return "", nil, err
	}
	return "SELECT " + list + " FROM " + table + cond, args, nil
}

func insertSQL(table string, row Row) (string, []any, error) {
	if !identRe.MatchString(table) {
		return "", nil, fmt.Errorf("invalid table %q", table)
	}
	cols := present(row)
	if len(cols) == 0 {
		return "", nil, fmt.Errorf("insert %s: empty row", table)
	}
	marks := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		if !identRe.MatchString(c) {
			return "", nil, fmt.Errorf("invalid column %q", c)
		}
		marks[i] = "?"
		args[i] = value(row[c])
	}
	q := "INSERT INTO " + table + " (" + strings.Join(cols, ", ") + ") VALUES (" + strings.Join(marks, ", ") + ")"
	return q, args, nil
}

func whereSQL(where Where) (string, []any, error) {
	if len(where) == 0 {
		return "", nil, nil
	}
	keys := make([]string, 0, len(where))
	for k := range where {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	conds := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		if !identRe.MatchString(k) {
			return "", nil, fmt.Errorf("invalid column %q", k)
		}
		conds[i] = k + " = ?"
		args[i] = where[k]
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

// present returns the sorted keys of r whose value is not nil.
func present(r Row) []string {
	keys := make([]string, 0, len(r))
	for k, v := range r {
		if isNil(v) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// value dereferences optional fields so drivers see plain values.
func value(v any) any {
	if _, ok := v.(driver.Valuer); ok {
		return v
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		return rv.Elem().Interface()
	}
	return v
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// IsNotFound reports whether err means no row matched.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

//go:embed migrations
var migrationFiles embed.FS

// Migrator applies the embedded schema for the connected dialect.
type Migrator struct {
	db    *sqlx.DB
	files fs.FS
	log   *logrus.Logger
}

// NewMigrator selects migrations/postgres for $n drivers and
// migrations/mysql otherwise.
func NewMigrator(db *sqlx.DB, log *logrus.Logger) (*Migrator, error) {
	dir := "migrations/mysql"
	if sqlx.BindType(db.DriverName()) == sqlx.DOLLAR {
		dir = "migrations/postgres"
	}
	sub, err := fs.Sub(migrationFiles, dir)
	if err != nil {
		return nil, err
	}
	return NewMigratorFS(db, sub, log), nil
}

// NewMigratorFS reads .sql files from the root of files.
func NewMigratorFS(db *sqlx.DB, files fs.FS, log *logrus.Logger) *Migrator {
	return &Migrator{db: db, files: files, log: log}
}

// InitializeMigrationsTable creates the tracking table if it doesn't exist.
func (m *Migrator) InitializeMigrationsTable(ctx context.Context) error {
	const q = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version VARCHAR(255) PRIMARY KEY,
    applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`
	if _, err := m.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}
	return nil
}

// Pending returns file names not yet recorded, in lexical order.
func (m *Migrator) Pending(ctx context.Context) ([]string, error) {
	entries, err := fs.ReadDir(m.files, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	var versions []string
	if err := m.db.SelectContext(ctx, &versions, "SELECT version FROM schema_migrations ORDER BY version"); err != nil {
		return nil, fmt.Errorf("query migrations: %w", err)
	}
	applied := make(map[string]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}

	var pending []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		if !applied[strings.TrimSuffix(e.Name(), ".sql")] {
			pending = append(pending, e.Name())
		}
	}
	sort.Strings(pending)
	return pending, nil
}

// Apply runs one file inside a transaction and records its version.
// Statements are split on ";" because the MySQL driver rejects
// multi-statement Exec by default.
func (m *Migrator) Apply(ctx context.Context, name string) error {
	content, err := fs.ReadFile(m.files, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range splitStatements(string(content)) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	version := strings.TrimSuffix(name, ".sql")
	if _, err := tx.ExecContext(ctx, m.db.Rebind("INSERT INTO schema_migrations (version) VALUES (?)"), version); err != nil {
		return fmt.Errorf("record %s: %w", name, err)
	}
	return tx.Commit()
}

// MigrateUp applies every pending migration.
func (m *Migrator) MigrateUp(ctx context.Context) error {
	if err := m.InitializeMigrationsTable(ctx); err != nil {
		return err
	}
	pending, err := m.Pending(ctx)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		m.log.Info("schema is up to date")
		return nil
	}
	for _, name := range pending {
		m.log.WithField("migration", name).Info("applying migration")
		if err := m.Apply(ctx, name); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	m.log.WithField("count", len(pending)).Info("migrations applied")
	return nil
}

func splitStatements(sql string) []string {
	var out []string
	for _, s := range strings.Split(sql, ";") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

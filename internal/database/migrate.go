package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"
)

var migrationName = regexp.MustCompile(`^(\d{3})_(.+)\.sql$`)

// Migration is one versioned schema change.
type Migration struct {
	Version     int
	Description string
	UpSQL       string
	DownSQL     string
	Applied     bool
	AppliedAt   time.Time
}

// MigrationResult describes a migration run.
type MigrationResult struct {
	Applied        []Migration
	CurrentVersion int
	TargetVersion  int
}

// Migrator applies the embedded migrations to a database.
type Migrator struct {
	db         *DB
	migrations []Migration
}

// NewMigrator loads the embedded migrations and makes sure the
// schema_migrations bookkeeping table exists.
func NewMigrator(db *DB) (*Migrator, error) {
	migrations, err := loadMigrations(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("loading migrations: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("creating migrations table: %w", err)
	}

	return &Migrator{db: db, migrations: migrations}, nil
}

// Migrate opens a migrator and applies every pending migration.
func Migrate(ctx context.Context, db *DB) (*MigrationResult, error) {
	m, err := NewMigrator(db)
	if err != nil {
		return nil, err
	}
	return m.MigrateUp(ctx)
}

func loadMigrations(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	var migrations []Migration
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		matches := migrationName.FindStringSubmatch(entry.Name())
		if matches == nil {
			slog.Warn("skipping invalid migration filename", "name", entry.Name())
			continue
		}

		version, _ := strconv.Atoi(matches[1])

		content, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}

		up, down := parseMigration(string(content))
		migrations = append(migrations, Migration{
			Version:     version,
			Description: strings.ReplaceAll(matches[2], "_", " "),
			UpSQL:       up,
			DownSQL:     down,
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// parseMigration splits a migration file into its Up and Down sections.
// A file without markers is all Up.
func parseMigration(content string) (upSQL, downSQL string) {
	upIdx := strings.Index(content, upMarker)
	downIdx := strings.Index(content, downMarker)

	switch {
	case upIdx == -1:
		return strings.TrimSpace(content), ""
	case downIdx == -1:
		return strings.TrimSpace(content[upIdx+len(upMarker):]), ""
	case upIdx < downIdx:
		return strings.TrimSpace(content[upIdx+len(upMarker) : downIdx]),
			strings.TrimSpace(content[downIdx+len(downMarker):])
	default:
		return strings.TrimSpace(content[upIdx+len(upMarker):]),
			strings.TrimSpace(content[downIdx+len(downMarker) : upIdx])
	}
}

// CurrentVersion returns the highest applied migration version, or 0.
func (m *Migrator) CurrentVersion(ctx context.Context) (int, error) {
	var version int
	err := m.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(version), 0) FROM schema_migrations",
	).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("querying current version: %w", err)
	}
	return version, nil
}

// PendingMigrations returns migrations newer than the current version.
func (m *Migrator) PendingMigrations(ctx context.Context) ([]Migration, error) {
	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}

	var pending []Migration
	for _, mig := range m.migrations {
		if mig.Version > current {
			pending = append(pending, mig)
		}
	}
	return pending, nil
}

// MigrateUp applies all pending migrations, each in its own transaction.
func (m *Migrator) MigrateUp(ctx context.Context) (*MigrationResult, error) {
	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := m.PendingMigrations(ctx)
	if err != nil {
		return nil, err
	}

	result := &MigrationResult{CurrentVersion: current, TargetVersion: current}
	if len(pending) == 0 {
		slog.Debug("database schema is up to date", "version", current)
		return result, nil
	}
	result.TargetVersion = pending[len(pending)-1].Version

	for _, mig := range pending {
		slog.Info("applying migration", "version", mig.Version, "description", mig.Description)

		err := m.db.WithTransaction(ctx, func(tx *sql.Tx) error {
			if err := execStatements(ctx, tx, mig.UpSQL); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx,
				"INSERT INTO schema_migrations (version, description) VALUES (?, ?)",
				mig.Version, mig.Description,
			)
			if err != nil {
				return fmt.Errorf("recording migration: %w", err)
			}
			return nil
		})
		if err != nil {
			return result, fmt.Errorf("migration %d failed: %w", mig.Version, err)
		}

		mig.Applied = true
		mig.AppliedAt = time.Now()
		result.Applied = append(result.Applied, mig)
	}

	slog.Info("migrations complete", "from", current, "to", result.TargetVersion)
	return result, nil
}

// MigrateDown rolls back the most recent migration.
func (m *Migrator) MigrateDown(ctx context.Context) (*MigrationResult, error) {
	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}

	result := &MigrationResult{CurrentVersion: current, TargetVersion: current}
	if current == 0 {
		return result, errors.New("no migrations to roll back")
	}

	idx := sort.Search(len(m.migrations), func(i int) bool {
		return m.migrations[i].Version >= current
	})
	if idx == len(m.migrations) || m.migrations[idx].Version != current {
		return result, fmt.Errorf("migration %d not found", current)
	}
	mig := m.migrations[idx]
	if mig.DownSQL == "" {
		return result, fmt.Errorf("migration %d has no rollback SQL", current)
	}

	slog.Info("rolling back migration", "version", mig.Version, "description", mig.Description)

	err = m.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		if err := execStatements(ctx, tx, mig.DownSQL); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM schema_migrations WHERE version = ?", mig.Version); err != nil {
			return fmt.Errorf("removing migration record: %w", err)
		}
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("rollback %d failed: %w", mig.Version, err)
	}

	result.Applied = append(result.Applied, mig)
	if idx > 0 {
		result.TargetVersion = m.migrations[idx-1].Version
	} else {
		result.TargetVersion = 0
	}
	return result, nil
}

// Status returns every known migration with its applied state.
func (m *Migrator) Status(ctx context.Context) ([]Migration, error) {
	rows, err := m.db.QueryContext(ctx,
		"SELECT version, applied_at FROM schema_migrations ORDER BY version",
	)
	if err != nil {
		return nil, fmt.Errorf("querying applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]time.Time)
	for rows.Next() {
		var version int
		var appliedAt string
		if err := rows.Scan(&version, &appliedAt); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		t, _ := time.Parse(time.DateTime, appliedAt)
		applied[version] = t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	status := make([]Migration, len(m.migrations))
	for i, mig := range m.migrations {
		status[i] = mig
		if t, ok := applied[mig.Version]; ok {
			status[i].Applied = true
			status[i].AppliedAt = t
		}
	}
	return status, nil
}

func execStatements(ctx context.Context, tx *sql.Tx, script string) error {
	for _, stmt := range splitStatements(script) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing statement: %w\nSQL: %s", err, stmt)
		}
	}
	return nil
}

// splitStatements splits a script on semicolons that are outside quoted
// strings and drops empty statements.
func splitStatements(script string) []string {
	var statements []string
	var current strings.Builder
	var quote rune

	flush := func() {
		if stmt := strings.TrimSpace(current.String()); stmt != "" {
			statements = append(statements, stmt)
		}
		current.Reset()
	}

	for _, ch := range script {
		switch {
		case quote != 0:
			current.WriteRune(ch)
			if ch == quote {
				quote = 0
			}
		case ch == '\'' || ch == '"':
			quote = ch
			current.WriteRune(ch)
		case ch == ';':
			flush()
		default:
			current.WriteRune(ch)
		}
	}
	flush()

	return statements
}

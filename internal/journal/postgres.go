package journal

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DefaultLimit caps List when the filter has no limit.
const DefaultLimit = 50

// Postgres implements Journal backed by a PostgreSQL table.
type Postgres struct {
	db *sql.DB
}

var _ Journal = (*Postgres)(nil)

// NewPostgres opens the database at databaseURL and applies pending
// migrations.
func NewPostgres(databaseURL string) (*Postgres, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Postgres{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: "umkmctl_schema_migrations"})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (p *Postgres) Close() error {
	return p.db.Close()
}

const insertEntry = `INSERT INTO operations
	(op_id, command, method, path, status, bytes, error, database_url, actor, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING id`

// Record inserts e and sets its ID. A zero CreatedAt is set to now.
func (p *Postgres) Record(ctx context.Context, e *Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	err := p.db.QueryRowContext(ctx, insertEntry,
		e.OpID, e.Command, e.Method, e.Path, e.Status, e.Bytes,
		nullString(e.Error), e.DatabaseURL, e.Actor, e.CreatedAt,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

const selectEntries = `SELECT id, op_id, command, method, path, status, bytes, error, database_url, actor, created_at
	FROM operations`

// List returns entries newest first.
func (p *Postgres) List(ctx context.Context, f Filter) ([]*Entry, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := selectEntries
	args := []any{}
	if f.OpID != "" {
		query += " WHERE op_id = $1"
		args = append(args, f.OpID)
	}
	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d", len(args)+1)
	args = append(args, limit)

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	var out []*Entry
	for rows.Next() {
		var (
			e      Entry
			errCol sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.OpID, &e.Command, &e.Method, &e.Path, &e.Status, &e.Bytes,
			&errCol, &e.DatabaseURL, &e.Actor, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		e.Error = errCol.String
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal entries: %w", err)
	}
	return out, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

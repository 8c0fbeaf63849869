package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/shindearyan179/notesnap/internal/migrations"
	"github.com/shindearyan179/notesnap/internal/repositories/activity"
	"github.com/shindearyan179/notesnap/internal/repositories/notes"
	"github.com/shindearyan179/notesnap/internal/repositories/ratelimits"
	"github.com/shindearyan179/notesnap/internal/repositories/sessions"
	"github.com/shindearyan179/notesnap/internal/repositories/users"
)

// PostgresManager owns the *sql.DB and the PostgreSQL repository set.
type PostgresManager struct {
	db         *sql.DB
	users      users.Repository
	notes      notes.Repository
	sessions   sessions.Repository
	rateLimits ratelimits.Repository
	activity   activity.Repository
}

// NewPostgresManager opens the database, runs the embedded goose migrations
// and wires the repositories.
func NewPostgresManager(ctx context.Context, dsn string) (*PostgresManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresManager{
		db:         db,
		users:      users.NewPostgresRepository(db),
		notes:      notes.NewPostgresRepository(db),
		sessions:   sessions.NewPostgresRepository(db),
		rateLimits: ratelimits.NewPostgresRepository(db),
		activity:   activity.NewPostgresRepository(db),
	}

	if err := m.runMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}

func (m *PostgresManager) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, m.db, ".")
}

func (m *PostgresManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresManager) Users() users.Repository {
	return m.users
}

func (m *PostgresManager) Notes() notes.Repository {
	return m.notes
}

func (m *PostgresManager) Sessions() sessions.Repository {
	return m.sessions
}

func (m *PostgresManager) RateLimits() ratelimits.Repository {
	return m.rateLimits
}

func (m *PostgresManager) Activity() activity.Repository {
	return m.activity
}

func (m *PostgresManager) Close() error {
	return m.db.Close()
}

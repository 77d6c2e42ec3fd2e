package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-pkgz/repeater/v2"
	_ "github.com/jackc/pgx/v5/stdlib" // postgres driver, registered as "pgx"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

//go:embed schema_sqlite.sql schema_postgres.sql
var schemaFS embed.FS

// ErrNotFound is returned when a requested row doesn't exist
var ErrNotFound = errors.New("not found")

// ErrNotPending is returned when an enrichment result targets an item already in a terminal state
var ErrNotPending = errors.New("item is not pending")

// Config represents database configuration
type Config struct {
	Driver          string // sqlite or postgres
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Repositories contains all repository instances
type Repositories struct {
	App      *AppRepository
	Channel  *ChannelRepository
	Game     *GameRepository
	Review   *ReviewRepository
	Video    *VideoRepository
	Position *PositionRepository
	DB       *sqlx.DB
}

// NewRepositories creates all repositories with a shared database connection
func NewRepositories(ctx context.Context, cfg Config) (*Repositories, error) {
	driver, dsn, err := driverAndDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// configure connection pool
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if driver == "sqlite" {
		// journal mode is per database, the rest is set per connection through the dsn
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("enable wal: %w", err)
		}
	}

	if err := initSchema(ctx, db, driver); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return newRepositories(db), nil
}

func newRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		App:      NewAppRepository(db),
		Channel:  NewChannelRepository(db),
		Game:     NewGameRepository(db),
		Review:   NewReviewRepository(db),
		Video:    NewVideoRepository(db),
		Position: NewPositionRepository(db),
		DB:       db,
	}
}

// Close closes the database connection
func (r *Repositories) Close() error {
	return r.DB.Close()
}

// Ping verifies the database connection
func (r *Repositories) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

// driverAndDSN maps configured driver to the registered sql driver name and
// adds sqlite per-connection pragmas to the dsn
func driverAndDSN(cfg Config) (driver, dsn string, err error) {
	switch cfg.Driver {
	case "", "sqlite":
		dsn = cfg.DSN
		if dsn == "" {
			dsn = "file:reviewscope.db?cache=shared&mode=rwc&_txlock=immediate"
		}
		pragmas := []string{"foreign_keys(1)", "busy_timeout(5000)", "synchronous(NORMAL)", "temp_store(MEMORY)"}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		for _, p := range pragmas {
			dsn += sep + "_pragma=" + p
			sep = "&"
		}
		return "sqlite", dsn, nil
	case "postgres":
		if cfg.DSN == "" {
			return "", "", fmt.Errorf("postgres dsn is required")
		}
		return "pgx", cfg.DSN, nil
	default:
		return "", "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sqlx.DB, driver string) error {
	name := "schema_sqlite.sql"
	if driver == "pgx" {
		name = "schema_postgres.sql"
	}
	schema, err := schemaFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	for _, stmt := range strings.Split(string(schema), ";") {
		if strings.TrimSpace(stripComments(stmt)) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("execute schema: %w", err)
		}
	}
	return nil
}

func stripComments(stmt string) string {
	lines := strings.Split(stmt, "\n")
	res := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), "--") {
			continue
		}
		res = append(res, l)
	}
	return strings.Join(res, "\n")
}

// dbtx is implemented by *sqlx.DB and *sqlx.Conn, repositories work with either
type dbtx interface {
	sqlx.ExecerContext
	sqlx.QueryerContext
	Rebind(query string) string
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// builder returns squirrel statement builder with placeholders of the driver
func builder(driver string) sq.StatementBuilderType {
	if driver == "pgx" {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// errCritical marks errors which should stop the retry loop
var errCritical = errors.New("critical error")

// criticalError wraps an error to signal repeater to stop retrying
type criticalError struct {
	err error
}

func (e *criticalError) Error() string {
	return e.err.Error()
}

func (e *criticalError) Unwrap() error { return e.err }

func (e *criticalError) Is(target error) bool { return target == errCritical }

// withLockRetry runs fn and retries it on SQLite lock errors only
func withLockRetry(ctx context.Context, fn func() error) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		err := fn()
		if err == nil || isLockError(err) {
			return err // nil or retry
		}
		return &criticalError{err: err}
	}, errCritical)

	var ce *criticalError
	if errors.As(err, &ce) {
		return ce.err
	}
	return err
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"usermanagement/internal/config"
	"usermanagement/internal/logging"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // register the pure-Go sqlite driver
)

// Pragmas every SQLite connection needs: foreign keys for the ent migrator,
// a busy timeout for concurrent writers, and a parseable time encoding.
var sqlitePragmas = []struct{ key, param string }{
	{"foreign_keys", "_pragma=foreign_keys(1)"},
	{"busy_timeout", "_pragma=busy_timeout(5000)"},
	{"_time_format", "_time_format=sqlite"},
}

type Client struct {
	ent    *entsql.Driver
	drv    dialect.Driver
	db     *sql.DB
	logger logging.Logger
}

// NewClient opens the configured store (Postgres through pgx, otherwise SQLite)
// and wraps it in an ent SQL driver.
func NewClient(ctx context.Context, cfg config.DatabaseConfig, logger logging.Logger) (*Client, error) {
	driverName := cfg.Driver()
	dsn := cfg.EffectiveDSN()

	entDialect := dialect.Postgres
	if driverName == config.DriverSQLite {
		entDialect = dialect.SQLite
		dsn = SQLiteDSN(dsn)
	}

	dbStd, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}

	// SQLite allows a single writer; one connection also keeps
	// ":memory:" databases alive for the lifetime of the pool.
	if driverName == config.DriverSQLite {
		dbStd.SetMaxOpenConns(1)
	}

	if err := dbStd.PingContext(ctx); err != nil {
		_ = dbStd.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	c := &Client{
		ent:    entsql.OpenDB(entDialect, dbStd),
		db:     dbStd,
		logger: logger.With("component", "db_client", "driver", driverName),
	}

	c.drv = c.ent
	if cfg.Debug {
		c.drv = dialect.DebugWithContext(c.ent, func(ctx context.Context, args ...any) {
			c.logger.Debug("sql", "statement", fmt.Sprint(args...))
		})
	}

	return c, nil
}

// SQLiteDSN appends the pragmas the store relies on unless the caller set them.
func SQLiteDSN(dsn string) string {
	for _, p := range sqlitePragmas {
		if strings.Contains(dsn, p.key) {
			continue
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + p.param
	}
	return dsn
}

// Driver returns the ent driver repositories build their statements on.
func (c *Client) Driver() dialect.Driver {
	return c.drv
}

// Dialect reports the ent dialect name (postgres or sqlite3).
func (c *Client) Dialect() string {
	return c.ent.Dialect()
}

// Close closes the underlying DB pool.
func (c *Client) Close() error {
	return c.ent.Close()
}

// Ping is used by health checks.
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

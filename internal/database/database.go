// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/registhor/internal/config"
	"github.com/tomtom215/registhor/internal/database/query"
	"github.com/tomtom215/registhor/internal/logging"
	"github.com/tomtom215/registhor/internal/metrics"
)

// Supported drivers.
const (
	DriverDuckDB   = "duckdb"
	DriverPostgres = "pgx"
)

// DB wraps the registration store connection and provides data access
// methods. Every query runs through a timeout, the circuit breaker and
// the query metrics.
type DB struct {
	conn    *sql.DB
	cfg     *config.DatabaseConfig
	driver  string
	breaker *gobreaker.CircuitBreaker[struct{}]
}

// New opens the configured store and, when enabled, creates the schema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		driver = DriverDuckDB
	}

	var dsn string
	switch driver {
	case DriverDuckDB:
		var err error
		if dsn, err = duckDBConnString(cfg); err != nil {
			return nil, err
		}
	case DriverPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("database dsn is required for driver %q", driver)
		}
		dsn = cfg.DSN
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn:   conn,
		cfg:    cfg,
		driver: driver,
	}
	if cfg.Breaker.Enabled {
		db.breaker = newBreaker("database-"+driver, cfg.Breaker)
	}

	db.configureConnectionPool()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	if cfg.Migrate {
		if err := db.createTables(ctx); err != nil {
			closeQuietly(conn)
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	logging.Info().Str("driver", driver).Bool("migrated", cfg.Migrate).Msg("Database ready")
	return db, nil
}

// duckDBConnString builds the DuckDB DSN, creating the parent directory of
// a file database.
func duckDBConnString(cfg *config.DatabaseConfig) (string, error) {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	if path != ":memory:" {
		dbDir := filepath.Dir(path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return "", fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	// Extension autoloading reaches the network; the schema needs none.
	params := fmt.Sprintf("threads=%d&autoinstall_known_extensions=false&autoload_known_extensions=false", threads)
	if cfg.MaxMemory != "" {
		params += "&max_memory=" + cfg.MaxMemory
	}
	if path == ":memory:" {
		return path + "?" + params, nil
	}
	return path + "?access_mode=read_write&" + params, nil
}

// configureConnectionPool sets connection pool parameters
func (db *DB) configureConnectionPool() {
	maxOpen := db.cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = runtime.NumCPU()
	}
	maxIdle := db.cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 2
	}
	lifetime := db.cfg.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = time.Hour
	}

	db.conn.SetMaxOpenConns(maxOpen)
	db.conn.SetMaxIdleConns(maxIdle)
	db.conn.SetConnMaxLifetime(lifetime)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// Driver returns the driver name, "duckdb" or "pgx".
func (db *DB) Driver() string {
	return db.driver
}

// Conn returns the underlying SQL database connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Stats reports connection pool statistics.
func (db *DB) Stats() sql.DBStats {
	if db.conn == nil {
		return sql.DBStats{}
	}
	return db.conn.Stats()
}

// BreakerState reports the circuit breaker state, or "disabled".
func (db *DB) BreakerState() string {
	if db.breaker == nil {
		return "disabled"
	}
	return stateToString(db.breaker.State())
}

// Ping checks if the database connection is alive
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}

// Close closes the connection pool. For DuckDB a checkpoint flushes the
// WAL into the database file first.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	if db.driver == DriverDuckDB {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := db.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
			logging.Warn().Err(err).Msg("Failed to checkpoint database before close")
		}
		cancel()
	}
	return db.conn.Close()
}

// bind converts a "?" query for the active driver.
func (db *DB) bind(q string) string {
	if db.driver == DriverPostgres {
		return query.Rebind(q)
	}
	return q
}

// run executes fn under the query timeout, the circuit breaker and the
// query metrics. fn receives the derived context and must finish using
// any rows before returning.
func (db *DB) run(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	timeout := db.cfg.QueryTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	var err error
	if db.breaker == nil {
		err = fn(ctx)
	} else {
		err = db.execute(ctx, fn)
	}
	metrics.RecordDBQuery(db.driver, operation, time.Since(start), countedError(err))

	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Str("operation", operation).Msg("Query failed")
	}
	return err
}

// queryRows runs a SELECT and calls scan for each row.
func (db *DB) queryRows(ctx context.Context, operation, q string, args []interface{}, scan func(*sql.Rows) error) error {
	return db.run(ctx, operation, func(ctx context.Context) error {
		rows, err := db.conn.QueryContext(ctx, db.bind(q), args...)
		if err != nil {
			return fmt.Errorf("failed to query %s: %w", operation, err)
		}
		defer closeQuietly(rows)

		for rows.Next() {
			if err := scan(rows); err != nil {
				return fmt.Errorf("failed to scan %s: %w", operation, err)
			}
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to iterate %s: %w", operation, err)
		}
		return nil
	})
}

// exec runs a statement that returns no rows.
func (db *DB) exec(ctx context.Context, operation, q string, args ...interface{}) (int64, error) {
	var affected int64
	err := db.run(ctx, operation, func(ctx context.Context) error {
		res, err := db.conn.ExecContext(ctx, db.bind(q), args...)
		if err != nil {
			return fmt.Errorf("failed to execute %s: %w", operation, err)
		}
		affected, err = res.RowsAffected()
		if err != nil {
			affected = 0
		}
		return nil
	})
	return affected, err
}

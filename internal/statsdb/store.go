// Package statsdb persists completed analysis runs and their weekly aggregate
// rows to a SQL backend. The store is an export sink only: commands write run
// metadata and bucket rows, but no analysis ever reads prior results back to
// seed a new session.
package statsdb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/huangsam/repostats/internal/contract"
	"github.com/huangsam/repostats/schema"

	_ "github.com/go-sql-driver/mysql"   // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib"   // PostgreSQL driver
	_ "modernc.org/sqlite"               // SQLite driver (pure Go)
)

// Table names for stats export.
const (
	runsTable    = "repostats_runs"
	bucketsTable = "repostats_buckets"
)

// StatsStoreImpl implements the StatsStore interface.
type StatsStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.StatsStore = &StatsStoreImpl{} // Compile-time check

// NewStatsStore creates a new StatsStore with the specified backend.
func NewStatsStore(backend schema.DatabaseBackend, connStr string) (contract.StatsStore, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetDBFilePath()
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=... dbname=...", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled export
		return &StatsStoreImpl{db: nil, backend: backend}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. Verify the database server is running and accessible", backend, err)
	}

	// Create the table schemas
	if err := createStatsTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create stats tables: %w", err)
	}

	return &StatsStoreImpl{db: db, backend: backend}, nil
}

// createStatsTables creates the export tables.
func createStatsTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{runsTable, getCreateRunsQuery(backend)},
		{bucketsTable, getCreateBucketsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for repostats_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				patterns TEXT,
				since_bound VARCHAR(100),
				repositories INT,
				total_commits INT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				patterns TEXT,
				since_bound TEXT,
				repositories INT,
				total_commits INT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				patterns TEXT,
				since_bound TEXT,
				repositories INTEGER,
				total_commits INTEGER
			);
		`, quotedTableName)
	}
}

// getCreateBucketsQuery returns the CREATE TABLE query for repostats_buckets.
func getCreateBucketsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(bucketsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				period_start DATETIME(6) NOT NULL,
				contributor VARCHAR(255) NOT NULL,
				commits INT NOT NULL,
				lines_added INT NOT NULL,
				lines_deleted INT NOT NULL,
				PRIMARY KEY (run_id, period_start, contributor)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				period_start TIMESTAMPTZ NOT NULL,
				contributor TEXT NOT NULL,
				commits INT NOT NULL,
				lines_added INT NOT NULL,
				lines_deleted INT NOT NULL,
				PRIMARY KEY (run_id, period_start, contributor)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				period_start TEXT NOT NULL,
				contributor TEXT NOT NULL,
				commits INTEGER NOT NULL,
				lines_added INTEGER NOT NULL,
				lines_deleted INTEGER NOT NULL,
				PRIMARY KEY (run_id, period_start, contributor)
			);
		`, quotedTableName)
	}
}

// quoteTableName quotes a table identifier for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	if backend == schema.MySQLBackend {
		return "`" + name + "`"
	}
	return `"` + name + `"`
}

// BeginRun creates a new run row and returns its unique ID.
func (ss *StatsStoreImpl) BeginRun(run schema.RunRecord) (int64, error) {
	// Skip for NoneBackend
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return 0, nil
	}

	quotedTableName := quoteTableName(runsTable, ss.backend)

	var runID int64
	var err error
	switch ss.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, patterns, since_bound, repositories) VALUES ($1, $2, $3, $4) RETURNING run_id`, quotedTableName)
		err = ss.db.QueryRow(query, run.StartTime, run.Patterns, run.Since, run.Repositories).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, patterns, since_bound, repositories) VALUES (?, ?, ?, ?)`, quotedTableName)
		var result sql.Result
		result, err = ss.db.Exec(query, formatTime(run.StartTime, ss.backend), run.Patterns, run.Since, run.Repositories)
		if err != nil {
			return 0, fmt.Errorf("failed to insert run: %w", err)
		}
		runID, err = result.LastInsertId()
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	return runID, nil
}

// EndRun updates the run row with completion data.
func (ss *StatsStoreImpl) EndRun(runID int64, run schema.RunRecord) error {
	// Skip for NoneBackend
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(runsTable, ss.backend)

	var query string
	var args []any
	switch ss.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`UPDATE %s SET end_time = $1, total_commits = $2 WHERE run_id = $3`, quotedTableName)
		args = []any{run.EndTime, run.TotalCommits, runID}
	default: // SQLite and MySQL
		query = fmt.Sprintf(`UPDATE %s SET end_time = ?, total_commits = ? WHERE run_id = ?`, quotedTableName)
		var endTime any
		if run.EndTime != nil {
			endTime = formatTime(*run.EndTime, ss.backend)
		}
		args = []any{endTime, run.TotalCommits, runID}
	}

	if _, err := ss.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to update run %d: %w", runID, err)
	}

	return nil
}

// RecordBuckets stores the weekly aggregate rows for a run.
// The insert runs in one transaction so a partial batch never lands.
func (ss *StatsStoreImpl) RecordBuckets(runID int64, buckets []schema.BucketRecord) error {
	// Skip for NoneBackend
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil
	}
	if len(buckets) == 0 {
		return nil
	}

	quotedTableName := quoteTableName(bucketsTable, ss.backend)

	var query string
	switch ss.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (run_id, period_start, contributor, commits, lines_added, lines_deleted)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`
			INSERT INTO %s (run_id, period_start, contributor, commits, lines_added, lines_deleted)
			VALUES (?, ?, ?, ?, ?, ?)
		`, quotedTableName)
	}

	tx, err := ss.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin bucket transaction: %w", err)
	}

	for _, b := range buckets {
		var periodStart any = b.PeriodStart
		if ss.backend != schema.PostgreSQLBackend {
			periodStart = formatTime(b.PeriodStart, ss.backend)
		}
		if _, err := tx.Exec(query, runID, periodStart, b.Contributor, b.Commits, b.LinesAdded, b.LinesDeleted); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert bucket for %s: %w", b.Contributor, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bucket transaction: %w", err)
	}

	return nil
}

// GetStatus returns status information about the export store.
func (ss *StatsStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(ss.backend),
		Connected: ss.db != nil,
	}

	if ss.backend == schema.NoneBackend || ss.db == nil {
		return status, nil
	}

	runsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(runsTable, ss.backend))
	if err := ss.db.QueryRow(runsQuery).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	bucketsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(bucketsTable, ss.backend))
	if err := ss.db.QueryRow(bucketsQuery).Scan(&status.TotalBuckets); err != nil {
		return status, fmt.Errorf("failed to get total buckets: %w", err)
	}

	if status.TotalRuns > 0 {
		lastRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id DESC LIMIT 1", quoteTableName(runsTable, ss.backend))
		row := ss.db.QueryRow(lastRunQuery)

		switch ss.backend {
		case schema.SQLiteBackend:
			var lastRunTimeStr string
			if err := row.Scan(&lastRunTimeStr); err != nil {
				return status, fmt.Errorf("failed to get last run time: %w", err)
			}
			lastRunTime, err := time.Parse(time.RFC3339Nano, lastRunTimeStr)
			if err != nil {
				return status, fmt.Errorf("failed to parse last run time: %w", err)
			}
			status.LastRunTime = lastRunTime
		default: // MySQL and PostgreSQL store as native datetime
			if err := row.Scan(&status.LastRunTime); err != nil {
				return status, fmt.Errorf("failed to get last run time: %w", err)
			}
		}
	}

	return status, nil
}

// Clear removes all stored runs and buckets.
func (ss *StatsStoreImpl) Clear() error {
	// Skip for NoneBackend
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil
	}

	for _, table := range []string{bucketsTable, runsTable} {
		query := fmt.Sprintf("DELETE FROM %s", quoteTableName(table, ss.backend))
		if _, err := ss.db.Exec(query); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}

	return nil
}

// Close closes the underlying connection.
func (ss *StatsStoreImpl) Close() error {
	if ss.db != nil {
		return ss.db.Close()
	}
	return nil
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.Format(time.RFC3339Nano)
	default:
		return t
	}
}

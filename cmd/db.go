package cmd

import (
	"fmt"

	"github.com/huangsam/repostats/core"
	"github.com/huangsam/repostats/internal/contract"
	"github.com/huangsam/repostats/internal/statsdb"
	"github.com/huangsam/repostats/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// dbSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func dbSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get export-related config values
	backendStr := viper.GetString("db-backend")
	connStr := viper.GetString("db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.DBBackend = backend
	cfg.DBConnect = connStr

	return nil
}

// dbSetupWrapper wraps dbSetup to provide PreRunE for db commands.
func dbSetupWrapper(_ *cobra.Command, _ []string) error {
	return dbSetup()
}

// dbMigrateSetup loads minimal configuration needed for migrate operations.
// This setup does NOT open a store or create tables, allowing migrations
// to run on a fresh database.
func dbMigrateSetup() error {
	if err := dbSetup(); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if cfg.DBBackend == schema.SQLiteBackend && cfg.DBConnect == "" {
		cfg.DBConnect = contract.GetDBFilePath()
	}

	return nil
}

// dbMigrateSetupWrapper wraps dbMigrateSetup to provide PreRunE for migrate command.
func dbMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return dbMigrateSetup()
}

// dbCmd focused on stats export data management.
//
// Note: db subcommands other than export use minimal initialization (dbSetup)
// instead of the full sharedSetup. This avoids repository discovery and full
// config processing for simple store operations.
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage exported commit statistics",
	Long: `Manage the store that holds exported commit statistics.

Each export run stores:
- Run metadata (timestamp, path patterns, since bound, repository count)
- Weekly aggregate rows per contributor

The store is write-only from the analyzer's point of view: new runs never
read earlier runs back. Query the tables directly with your SQL tooling.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  export  - Run an analysis and store its weekly aggregates
  status  - Show export store statistics
  clear   - Remove all exported data
  migrate - Run database schema migrations

Examples:
  # Check export store status
  repostats db status

  # Export the current repository's weekly stats
  repostats db export`,
}

// dbExportCmd runs an analysis and writes the results to the store.
var dbExportCmd = &cobra.Command{
	Use:   "export [path-patterns...]",
	Short: "Run an analysis and store its weekly aggregates",
	Long: `Scan the matched repositories and persist the weekly aggregate rows
to the configured database backend.

Examples:
  # Export to the default SQLite store (~/.repostats.db)
  repostats db export

  # Export all repositories under ~/src to MySQL
  repostats db export '~/src/*' --db-backend mysql --db-connect 'user:pass@tcp(localhost:3306)/repostats'`,
	Args:    cobra.ArbitraryArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := statsdb.NewStatsStore(cfg.DBBackend, cfg.DBConnect)
		if err != nil {
			contract.LogFatal("Failed to open stats store", err)
		}
		defer func() { _ = store.Close() }()

		if err := core.ExecuteDBExport(rootCtx, cfg, store); err != nil {
			contract.LogFatal("Cannot run db export", err)
		}
	},
}

// dbStatusCmd shows export store status.
var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display export store statistics and connection details",
	Long: `Show detailed information about the export store.

Displays:
- Backend type and connection status
- Total number of exported runs and bucket rows
- Timestamp of the most recent run

Examples:
  # Check export store status
  repostats db status`,
	PreRunE: dbSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := statsdb.NewStatsStore(cfg.DBBackend, cfg.DBConnect)
		if err != nil {
			contract.LogFatal("Failed to open stats store", err)
		}
		defer func() { _ = store.Close() }()

		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		printStoreStatus(status)
	},
}

// dbClearCmd clears the exported data.
var dbClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all exported runs and bucket rows",
	Long: `Delete all stored runs and their weekly aggregate rows.

WARNING: This action cannot be undone.

Examples:
  # Clear the default SQLite store
  repostats db clear`,
	PreRunE: dbSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := statsdb.NewStatsStore(cfg.DBBackend, cfg.DBConnect)
		if err != nil {
			contract.LogFatal("Failed to open stats store", err)
		}
		defer func() { _ = store.Close() }()

		if err := store.Clear(); err != nil {
			contract.LogFatal("Failed to clear exported data", err)
		}
		fmt.Println("Exported data cleared successfully.")
	},
}

// dbMigrateCmd runs database migrations for the export store.
var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the export store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  repostats db migrate

  # Migrate to specific version
  repostats db migrate --target-version 1

  # Rollback all migrations
  repostats db migrate --target-version 0`,
	PreRunE: dbMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := statsdb.Migrate(cfg.DBBackend, cfg.DBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}

// printStoreStatus prints a human-readable view of the store status.
func printStoreStatus(status schema.StoreStatus) {
	fmt.Println("Export store status:")
	fmt.Printf("  Backend:       %s\n", status.Backend)
	fmt.Printf("  Connected:     %t\n", status.Connected)
	fmt.Printf("  Total runs:    %d\n", status.TotalRuns)
	fmt.Printf("  Total buckets: %d\n", status.TotalBuckets)
	if status.TotalRuns > 0 {
		fmt.Printf("  Last run:      %s\n", status.LastRunTime.Format("2006-01-02 15:04:05"))
	}
}

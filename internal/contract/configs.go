package contract

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/huangsam/repostats/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 20
	MaxResultLimit     = 1000
	DefaultRecentCount = 10
	DefaultTopCount    = 10
)

// DefaultWorkers is the default number of concurrent workers for per-commit
// stat queries.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Config holds the runtime configuration for one analysis session.
// This struct remains the "final, validated" config.
type Config struct {
	Patterns    []string // Path patterns (may include shell globs)
	Since       string   // Optional bound passed to git's date grammar verbatim
	Period      schema.Period
	Workers     int
	ResultLimit int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	DBBackend schema.DatabaseBackend
	DBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	PatternArgs []string

	Since      string `mapstructure:"since"`
	Period     string `mapstructure:"period"`
	Workers    int    `mapstructure:"workers"`
	Limit      int    `mapstructure:"limit"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`
	DBBackend  string `mapstructure:"db-backend"`
	DBConnect  string `mapstructure:"db-connect"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Patterns != nil {
		clone.Patterns = make([]string, len(c.Patterns))
		copy(clone.Patterns, c.Patterns)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Positional patterns ---
	cfg.Patterns = input.PatternArgs
	if len(cfg.Patterns) == 0 {
		cfg.Patterns = []string{"."}
	}

	// --- 1. Simple passthrough fields ---
	cfg.Since = strings.TrimSpace(input.Since)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// --- 2. Period validation ---
	cfg.Period = schema.Period(strings.ToLower(input.Period))
	if _, ok := schema.ValidPeriods[cfg.Period]; !ok {
		return fmt.Errorf("invalid period '%s'. must be day, week, month", input.Period)
	}

	// --- 3. Workers and limit validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 4. Output validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	// --- 5. Color flag ---
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 6. Export backend validation ---
	cfg.DBBackend = schema.DatabaseBackend(strings.ToLower(input.DBBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.DBBackend]; !ok {
		return fmt.Errorf("invalid db backend '%s'. must be sqlite, mysql, postgresql, none", input.DBBackend)
	}
	cfg.DBConnect = input.DBConnect
	if err := ValidateDatabaseConnectionString(cfg.DBBackend, cfg.DBConnect); err != nil {
		return err
	}

	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

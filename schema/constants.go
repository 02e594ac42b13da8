package schema

// Custom string types for type safety.
type (
	// Period represents a grouping granularity for aggregation buckets.
	Period string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for stats export.
	DatabaseBackend string
)

// All grouping periods supported.
const (
	DayPeriod   Period = "day"
	WeekPeriod  Period = "week" // default
	MonthPeriod Period = "month"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All export backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// DateOnlyFormat is the ISO date layout used for period starts in all exports.
const DateOnlyFormat = "2006-01-02"

// ValidPeriods lists all valid grouping periods.
var ValidPeriods = map[Period]struct{}{
	DayPeriod:   {},
	WeekPeriod:  {},
	MonthPeriod: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid export backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// PeriodColumnLabel returns the human column header for a period's bucket
// start, e.g. "Week Start" for weekly grouping.
func PeriodColumnLabel(p Period) string {
	switch p {
	case DayPeriod:
		return "Day"
	case MonthPeriod:
		return "Month Start"
	default:
		return "Week Start"
	}
}

// Package constants provides shared constants for the mortgage-schedule application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// ExtraIterationsGuard is added to twice the nominal term to bound the
	// schedule simulation.
	ExtraIterationsGuard = 24

	// MaxTermYears is the longest loan term the engine simulates. Longer
	// terms are clamped by the engine and rejected by the HTTP API.
	MaxTermYears = 1000

	// MaxTermMonths is MaxTermYears expressed in months.
	MaxTermMonths = MaxTermYears * MonthsPerYear

	// InitialScheduleCapacity bounds the rows preallocated for a schedule.
	InitialScheduleCapacity = 1200
)

// Schedule mode names
const (
	// ModeAnnuity keeps the instalment fixed.
	ModeAnnuity = "annuity"

	// ModeFalling keeps the principal component fixed.
	ModeFalling = "falling"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// DefaultDisplayRows is the number of schedule rows shown by the pretty
	// renderer before it stops printing rows.
	DefaultDisplayRows = 600
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultCacheTTL is the default lifetime of a cached schedule
	DefaultCacheTTL = "10m"

	// DefaultCacheMaxEntries bounds the in-memory schedule cache
	DefaultCacheMaxEntries = 10000

	// CacheBackendMemory keeps computed schedules in process memory.
	CacheBackendMemory = "memory"

	// CacheBackendRedis keeps computed schedules in Redis.
	CacheBackendRedis = "redis"

	// CacheBackendNone disables caching.
	CacheBackendNone = "none"
)

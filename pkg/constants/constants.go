// Package constants provides shared constants for the finance-guide application.
package constants

// Planning constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// EmergencyFundMonths is how many months of expenses the emergency fund covers
	EmergencyFundMonths = 6

	// DefaultAverageGoalYears is the averaging horizon used when no goals are defined
	DefaultAverageGoalYears = 5.0

	// DefaultYearsToRetirement is the retirement horizon used when none is given
	DefaultYearsToRetirement = 30

	// MinYearsToRetirement and MaxYearsToRetirement bound the retirement horizon input
	MinYearsToRetirement = 1
	MaxYearsToRetirement = 50

	// DecimalPrecision is the number of fraction digits kept for currency amounts
	DecimalPrecision = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Allocation constants
const (
	// HorizonTilt is the number of percentage points moved between stocks and bonds
	HorizonTilt = 10

	// LongHorizonYears is the horizon above which stocks are tilted up
	LongHorizonYears = 20

	// ShortHorizonYears is the horizon below which stocks are tilted down
	ShortHorizonYears = 10

	// MinStocksPercent is the floor applied to stocks on short horizons
	MinStocksPercent = 20

	// GoldPercent is constant across all profiles and horizons
	GoldPercent = 10
)

// Output format constants
const (
	// OutputFormatMarkdown is the human-readable report format
	OutputFormatMarkdown = "markdown"

	// OutputFormatJSON is the machine-readable plan format
	OutputFormatJSON = "json"

	// OutputFormatYAML is the YAML plan format
	OutputFormatYAML = "yaml"
)

// Language constants
const (
	LanguageItalian = "it"
	LanguageEnglish = "en"
	LanguageGerman  = "de"

	// DefaultLanguage is used for unknown or missing language codes
	DefaultLanguage = LanguageItalian
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// ExampleServerConfigFile is the example server configuration file name
	ExampleServerConfigFile = "server-config.yaml.example"

	// EnvPrefix prefixes environment overrides, e.g. FINANCE_GUIDE_LANGUAGE
	EnvPrefix = "FINANCE_GUIDE"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML profiles (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

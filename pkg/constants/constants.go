// Package constants provides shared constants used throughout the trendkit codebase.
// This includes file permissions, naming conventions for exports and merged
// outputs, and defaults for query generation and link opening.
package constants

import "time"

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Export and output naming conventions
const (
	// ExportGlob matches the per-query time series exports inside a topic directory
	ExportGlob = "multiTimeline*.csv"

	// RawSuffix is appended to "<topic>_<dir>" for the raw merged output
	RawSuffix = "_raw.csv"

	// AdjustedSuffix is appended to "<topic>_<dir>" for the ratio-linked output
	AdjustedSuffix = "_adjusted.csv"

	// PlaceholderFile keeps otherwise empty scaffold directories in version control
	PlaceholderFile = ".placeholder"

	// QueriesDir holds generated query CSVs inside a <region>_<language> directory
	QueriesDir = "queries"

	// DefaultDataDir is the root holding <region>_<language>/<topic>/ directories
	DefaultDataDir = "data"
)

// Query generation defaults
const (
	// TrendsExploreURL is the base URL for generated queries
	TrendsExploreURL = "https://trends.google.com/trends/explore"

	// DefaultTimeframe is the date range requested by generated queries
	DefaultTimeframe = "2019-03-01 2024-06-01"

	// DefaultAnchorTopic is the Knowledge Graph id appended to every query (email)
	DefaultAnchorTopic = "/m/02nf_"

	// DefaultHostLanguage is the interface language of generated queries
	DefaultHostLanguage = "en-US"

	// DefaultChunkSize is the number of keywords per query, leaving room for the anchor
	DefaultChunkSize = 4

	// FallbackLanguage is used when a country's language has no keywords or dictionary entry
	FallbackLanguage = "en"

	// InvalidTranslationMarker marks workbook cells that could not be translated
	InvalidTranslationMarker = "[Error: invalid destination language]"

	// QueryURLColumn is the CSV header holding generated query URLs
	QueryURLColumn = "query url"
)

// Link opener defaults
const (
	// DefaultBatchSize is the number of links opened before pausing for the user
	DefaultBatchSize = 10

	// LinkOpenDelay is the base delay between opening two links
	LinkOpenDelay = 5 * time.Second

	// LinkOpenJitter is the upper bound of the random delay added to LinkOpenDelay
	LinkOpenJitter = 3 * time.Second
)

// Path constants
const (
	// DefaultConfigName is the config file name searched in $HOME and the working directory
	DefaultConfigName = ".trendkit"

	// EnvPrefix prefixes environment variables bound to configuration keys
	EnvPrefix = "TRENDKIT"
)

// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 18

// Provider Source Identifiers - these keys manage the registration and selection of scraping providers.
const (
	DefaultSources = "sources.default"
)

// Scraper Resilience - these keys hold the request budgets every source pipeline starts from.
const (
	ScraperTimeout    = "scraper.timeout"
	ScraperRetries    = "scraper.retries"
	ScraperRetryDelay = "scraper.retry_delay"
)

// Metadata Configuration - these keys govern the retrieval and processing of manga metadata.
const (
	MetadataFetchAnilist          = "metadata.fetch_anilist"
	MetadataTagRelevanceThreshold = "metadata.tag_relevance_threshold"
)

// History Tracking - these keys configure the persistence of reading state.
const (
	HistorySaveOnRead = "history.save_on_read"
)

// Search Interaction - these keys define the UI/UX parameters for search discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Minimalist (Mini) Mode - these keys configure the lightweight interactive prompt loop.
const (
	MiniSearchLimit     = "mini.search_limit"
	MiniShowURLs        = "mini.show_urls"
	MiniReverseChapters = "mini.reverse_chapters"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// MyAnimeList Service Integration - these keys manage the metadata fallback client.
const (
	MALClientID = "mal.client_id"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern non-interactive application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)

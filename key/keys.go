// Package key defines the canonical set of configuration identifiers.
package key

// Provider selection.
const (
	DefaultSources = "sources.default"
)

// Metadata id lookups (Jikan, Anilist).
const (
	MetadataFetchIDs = "metadata.fetch_ids"
)

// Search behaviour.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
	SearchLimit                = "search.limit"
)

// Networking - these keys tune the shared HTTP stack used by every provider.
const (
	NetworkTimeout   = "network.timeout"
	NetworkSpoofTLS  = "network.spoof_tls"
	NetworkUserAgent = "network.user_agent"
)

// Kuramanime provider.
const (
	KuramanimeURL = "providers.kuramanime.url"
)

// SoraStream provider and the sites it aggregates.
const (
	SoraTMDBKey   = "providers.sorastream.tmdb_api_key"
	SoraTMDBURL   = "providers.sorastream.tmdb_url"
	SoraRezkaURL  = "providers.sorastream.rezka_url"
	SoraFilmxyURL = "providers.sorastream.filmxy_url"
	SoraGdbotURL  = "providers.sorastream.gdbot_url"
)

// Response cache.
const (
	CacheTTLHours = "cache.ttl_hours"
)

// Iconography.
const (
	IconsVariant = "icons.variant"
)

// Logging.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI execution environment.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)

// JSON API server.
const (
	ServeAddr           = "serve.addr"
	ServeAllowedOrigins = "serve.allowed_origins"
)

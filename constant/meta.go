// Package constant defines immutable application-level identifiers and build metadata.
package constant

const (
	// Kurasora is the canonical application identifier used for filesystem paths, env prefixes and CLI branding.
	Kurasora = "kurasora"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// Repository is the GitHub owner/name releases are published under.
	Repository = "kurasora/kurasora"

	// UserAgent is the default HTTP User-Agent sent to providers.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Build metadata, overridden with -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

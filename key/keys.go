// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Network - these keys tune how publisher APIs are contacted.
const (
	NetworkTimeout            = "network.timeout"
	NetworkUserAgent          = "network.user_agent"
	NetworkImpersonateBrowser = "network.impersonate_browser"
	NetworkRequestsPerSecond  = "network.requests_per_second"
)

// Token Storage - these keys select where scraped API tokens are kept between calls.
const (
	TokenStore = "token.store"
)

// Output - these keys shape how records are printed by the CLI.
const (
	OutputJson   = "output.json"
	OutputPretty = "output.pretty"
	OutputWrap   = "output.wrap"
)

// Program Listing - these keys govern filtering of program lists.
const (
	ProgramsFuzzy = "programs.fuzzy"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment.
const (
	CliColored = "cli.colored"
)

// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

import "github.com/samber/lo"

// RegistryFieldsCount is the number of fields held by the build-vars registry.
const RegistryFieldsCount = 13

// Debug Toggles - these keys switch diagnostic behavior of the client on and off.
const (
	DebugEnabled = "debug.enabled"
	DebugPrivate = "debug.private"
)

// Build Identity - these keys carry the release identifiers.
const (
	BuildVersionCode = "build.version_code"
	BuildVersionName = "build.version_name"
)

// Platform Application - these keys identify the client to the messaging platform API.
const (
	AppID     = "app.id"
	AppSecret = "app.secret"
)

// Crash Reporting - these keys authenticate against the crash-reporting service.
const (
	CrashKey      = "crash.key"
	CrashKeyDebug = "crash.key_debug"
)

// Search, Places and Maps - these keys enable optional third-party lookups. Empty means disabled.
const (
	SearchKey     = "search.key"
	PlacesKey     = "places.key"
	PlacesID      = "places.id"
	PlacesVersion = "places.version"
	MapsKey       = "maps.key"
)

// Iconography
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment
const (
	CliColored = "cli.colored"
)

// Secrets lists the credential keys that may live in the system keyring instead of the config file.
var Secrets = []string{
	AppSecret,
	CrashKey,
	CrashKeyDebug,
	SearchKey,
	PlacesKey,
	PlacesID,
	MapsKey,
}

// IsSecret reports whether k names a credential.
func IsSecret(k string) bool {
	return lo.Contains(Secrets, k)
}

// Package constant defines immutable application-level identifiers.
package constant

const (
	// Buildvars is the canonical application identifier used for filesystem paths, env prefixes and CLI branding.
	Buildvars = "buildvars"

	// Version is the current semantic version of the buildvars tool itself, not of the client it configures.
	Version = "0.1.0"

	// KeyringService is the service name under which credentials are stored in the system keyring.
	KeyringService = "buildvars"
)

// Build metadata, overridden at link time with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

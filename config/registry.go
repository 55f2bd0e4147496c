package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/tmessages/buildvars/key"
)

var (
	// ErrUnknownKey is returned when a key does not name a registry field.
	ErrUnknownKey = errors.New("unknown key")

	// ErrTypeMismatch is returned when a value does not match the field's type.
	ErrTypeMismatch = errors.New("type mismatch")
)

// Vars is the flat set of build variables consumed by the client.
// Empty credential strings mean the feature they unlock is disabled.
type Vars struct {
	DebugEnabled           bool   `json:"debug_enabled" jsonschema:"description=Verbose diagnostic behavior"`
	DebugPrivateEnabled    bool   `json:"debug_private" jsonschema:"description=Internal debug mode"`
	BuildVersionCode       int    `json:"build_version_code" jsonschema:"description=Monotonic build identifier,minimum=0"`
	BuildVersionName       string `json:"build_version_name" jsonschema:"description=Human-readable version label"`
	ApplicationID          int    `json:"app_id" jsonschema:"description=Platform-issued application identifier"`
	ApplicationSecret      string `json:"app_secret" jsonschema:"description=Shared secret paired with app_id"`
	CrashReportingKey      string `json:"crash_key" jsonschema:"description=Crash-reporting credential for release builds"`
	CrashReportingKeyDebug string `json:"crash_key_debug" jsonschema:"description=Crash-reporting credential for debug builds"`
	SearchProviderKey      string `json:"search_key" jsonschema:"description=Search API credential; empty disables search"`
	PlacesAPIKey           string `json:"places_key" jsonschema:"description=Places API credential; empty disables places"`
	PlacesAPIID            string `json:"places_id" jsonschema:"description=Places API companion identifier"`
	MapsAPIKey             string `json:"maps_key" jsonschema:"description=Maps API credential"`
	PlacesAPIVersion       string `json:"places_version" jsonschema:"description=Pinned places API version"`
}

// Defaults returns the values every registry starts from.
// Credentials have no embedded defaults and must be supplied externally.
func Defaults() Vars {
	return Vars{
		BuildVersionCode: 1155,
		BuildVersionName: "4.6",
		PlacesAPIVersion: "20150326",
	}
}

// binding connects a dotted key to one field of Vars.
type binding struct {
	get      func(*Vars) any
	set      func(*Vars, any) bool
	typeName string
}

func bind[T any](field func(*Vars) *T) binding {
	var zero T
	return binding{
		get: func(v *Vars) any { return *field(v) },
		set: func(v *Vars, value any) bool {
			t, ok := value.(T)
			if ok {
				*field(v) = t
			}
			return ok
		},
		typeName: fmt.Sprintf("%T", zero),
	}
}

var bindings = map[string]binding{
	key.DebugEnabled:     bind(func(v *Vars) *bool { return &v.DebugEnabled }),
	key.DebugPrivate:     bind(func(v *Vars) *bool { return &v.DebugPrivateEnabled }),
	key.BuildVersionCode: bind(func(v *Vars) *int { return &v.BuildVersionCode }),
	key.BuildVersionName: bind(func(v *Vars) *string { return &v.BuildVersionName }),
	key.AppID:            bind(func(v *Vars) *int { return &v.ApplicationID }),
	key.AppSecret:        bind(func(v *Vars) *string { return &v.ApplicationSecret }),
	key.CrashKey:         bind(func(v *Vars) *string { return &v.CrashReportingKey }),
	key.CrashKeyDebug:    bind(func(v *Vars) *string { return &v.CrashReportingKeyDebug }),
	key.SearchKey:        bind(func(v *Vars) *string { return &v.SearchProviderKey }),
	key.PlacesKey:        bind(func(v *Vars) *string { return &v.PlacesAPIKey }),
	key.PlacesID:         bind(func(v *Vars) *string { return &v.PlacesAPIID }),
	key.MapsKey:          bind(func(v *Vars) *string { return &v.MapsAPIKey }),
	key.PlacesVersion:    bind(func(v *Vars) *string { return &v.PlacesAPIVersion }),
}

// Keys returns the registry keys in lexical order.
func Keys() []string {
	keys := lo.Keys(bindings)
	sort.Strings(keys)
	return keys
}

// IsRegistryKey reports whether k names a registry field rather than a tool setting.
func IsRegistryKey(k string) bool {
	_, ok := bindings[k]
	return ok
}

// Builder is the only place a registry is mutated. It is meant to be used
// during startup and discarded once Build is called.
type Builder struct {
	vars Vars
}

// NewBuilder returns a builder seeded with Defaults.
func NewBuilder() *Builder {
	return &Builder{vars: Defaults()}
}

// Set overwrites the field named by k. The value is stored as is.
func (b *Builder) Set(k string, value any) error {
	bd, ok := bindings[k]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, k)
	}

	if !bd.set(&b.vars, value) {
		return fmt.Errorf("%w: %s expects %s, got %T", ErrTypeMismatch, k, bd.typeName, value)
	}

	return nil
}

// Build freezes the current values into a read-only Registry.
// Later calls to Set do not affect registries already built.
func (b *Builder) Build() *Registry {
	return &Registry{vars: b.vars}
}

// Registry is an immutable view over Vars, safe for concurrent reads.
type Registry struct {
	vars Vars
}

// Vars returns a copy of the underlying values.
func (r *Registry) Vars() Vars {
	return r.vars
}

// Get returns the value of the field named by k.
func (r *Registry) Get(k string) (any, error) {
	bd, ok := bindings[k]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, k)
	}

	return bd.get(&r.vars), nil
}

// Lookup is Get without the error.
func (r *Registry) Lookup(k string) mo.Option[any] {
	v, err := r.Get(k)
	if err != nil {
		return mo.None[any]()
	}
	return mo.Some(v)
}

// Enabled reports whether the field named by k is set to something other
// than its zero value. For credentials this is the "feature configured" check.
func (r *Registry) Enabled(k string) bool {
	v, err := r.Get(k)
	if err != nil {
		return false
	}

	switch value := v.(type) {
	case bool:
		return value
	case int:
		return value != 0
	case string:
		return value != ""
	default:
		return false
	}
}

// DebugEnabled reports the verbose diagnostics flag.
func (r *Registry) DebugEnabled() bool { return r.vars.DebugEnabled }

// DebugPrivateEnabled reports the internal debug mode flag.
func (r *Registry) DebugPrivateEnabled() bool { return r.vars.DebugPrivateEnabled }

// BuildVersionCode returns the numeric build identifier.
func (r *Registry) BuildVersionCode() int { return r.vars.BuildVersionCode }

// BuildVersionName returns the human-readable version label.
func (r *Registry) BuildVersionName() string { return r.vars.BuildVersionName }

// ApplicationID returns the platform-issued application identifier, 0 when unset.
func (r *Registry) ApplicationID() int { return r.vars.ApplicationID }

// ApplicationSecret returns the secret paired with ApplicationID.
func (r *Registry) ApplicationSecret() string { return r.vars.ApplicationSecret }

// CrashReportingKey returns the release crash-reporting credential.
func (r *Registry) CrashReportingKey() string { return r.vars.CrashReportingKey }

// CrashReportingKeyDebug returns the debug crash-reporting credential.
func (r *Registry) CrashReportingKeyDebug() string { return r.vars.CrashReportingKeyDebug }

// SearchProviderKey returns the search credential. Empty disables search.
func (r *Registry) SearchProviderKey() string { return r.vars.SearchProviderKey }

// PlacesAPIKey returns the places credential. Empty disables places.
func (r *Registry) PlacesAPIKey() string { return r.vars.PlacesAPIKey }

// PlacesAPIID returns the places companion identifier.
func (r *Registry) PlacesAPIID() string { return r.vars.PlacesAPIID }

// MapsAPIKey returns the maps credential.
func (r *Registry) MapsAPIKey() string { return r.vars.MapsAPIKey }

// PlacesAPIVersion returns the pinned places API version.
func (r *Registry) PlacesAPIVersion() string { return r.vars.PlacesAPIVersion }

// ActiveCrashKey returns the crash-reporting credential matching the build flavour.
func (r *Registry) ActiveCrashKey() string {
	if r.vars.DebugEnabled {
		return r.vars.CrashReportingKeyDebug
	}
	return r.vars.CrashReportingKey
}

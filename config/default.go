package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"github.com/tmessages/buildvars/color"
	"github.com/tmessages/buildvars/constant"
	"github.com/tmessages/buildvars/key"
	"github.com/tmessages/buildvars/secret"
	"github.com/tmessages/buildvars/style"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
	Secret      bool

	store secret.Store
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Buildvars + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// WithStore returns a copy of f whose Current falls back to store for credentials.
func (f Field) WithStore(store secret.Store) Field {
	f.store = store
	return f
}

// Current returns the value viper resolves for the field, masked when it is a secret.
// Empty credentials are looked up in the store given to WithStore, if any.
func (f *Field) Current() any {
	v := viper.Get(f.Key)
	if !f.Secret {
		return v
	}

	s := cast.ToString(v)
	if s == "" && f.store != nil {
		if stored, err := f.store.Get(f.Key); err == nil {
			s = stored
		}
	}
	return Mask(s)
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
		Secret      bool   `json:"secret"`
	}{
		Key:         f.Key,
		Value:       f.Current(),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
		Secret:      f.Secret,
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	default:
		return "unknown"
	}
}

// Mask hides a credential while keeping emptiness visible.
func Mask(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}
	return strings.Repeat("*", 8) + string(runes[len(runes)-4:])
}

// Default holds the map of all configuration fields, registry fields and tool settings alike.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc, Secret: key.IsSecret(k)}
		EnvExposed = append(EnvExposed, k)
	}

	defaults := Defaults()
	field := func(k, desc string) {
		register(k, bindings[k].get(&defaults), desc)
	}

	field(key.DebugEnabled, "Enable verbose diagnostic behavior of the client.\nAlso raises the log level to debug")
	field(key.DebugPrivate, "Enable the internal debug mode")
	field(key.BuildVersionCode, "Monotonically assigned build identifier")
	field(key.BuildVersionName, "Human-readable version label")
	field(key.AppID, "Application ID issued by the messaging platform.\nObtain your own at https://core.telegram.org/api/obtaining_api_id")
	field(key.AppSecret, "Application hash paired with the application ID")
	field(key.CrashKey, "Crash-reporting credential used by release builds")
	field(key.CrashKeyDebug, "Crash-reporting credential used when debug is enabled")
	field(key.SearchKey, "Web search API key.\nEmpty disables search")
	field(key.PlacesKey, "Places API key.\nEmpty disables venue lookup")
	field(key.PlacesID, "Places API client ID.\nEmpty disables venue lookup")
	field(key.MapsKey, "Maps API key")
	field(key.PlacesVersion, "Places API version the client is pinned to")

	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, plain, squares")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"wrap":     func(s string) string { return wordwrap.String(s, 72) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			if value == "" {
				return style.Faint(`""`)
			}
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint (wrap .Description) }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl .Current }}
{{ blue "Default:" }} {{ hl .Value }}
{{ blue "Type:" }}    {{ typename .Value }}{{ if .Secret }}
{{ blue "Secret:" }}  {{ cyan "keyring" }}{{ end }}`))

// Package config holds the build-vars registry together with the field catalogue
// and the Viper-based loader that fills it at startup.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"github.com/tmessages/buildvars/constant"
	"github.com/tmessages/buildvars/filesystem"
	"github.com/tmessages/buildvars/key"
	"github.com/tmessages/buildvars/log"
	"github.com/tmessages/buildvars/secret"
	"github.com/tmessages/buildvars/where"
)

// EnvKeyReplacer is a strings.Replacer used to normalize configuration keys into environment variable naming conventions.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup initializes the global configuration state: defaults, dotenv file,
// environment bindings and the toml file in the config directory.
// Precedence, lowest first: defaults, file, env (process env wins over .env).
func Setup() error {
	viper.SetConfigName(constant.Buildvars)
	viper.SetConfigType(where.ConfigType)
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	if err := loadDotenv(where.Env()); err != nil {
		return err
	}

	viper.SetEnvPrefix(constant.Buildvars)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}

	return nil
}

// loadDotenv exports variables from a dotenv file without overriding the process environment.
func loadDotenv(path string) error {
	if !filesystem.Exists(path) {
		return nil
	}

	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	env, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	for name, value := range env {
		if _, set := os.LookupEnv(name); set {
			continue
		}
		if err := os.Setenv(name, value); err != nil {
			return err
		}
	}

	return nil
}

// Coerce converts raw into the type of the field's default value.
// Viper hands back strings from env, int64 from toml and whatever flags hold.
func Coerce(k string, raw any) (any, error) {
	field, ok := Default[k]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, k)
	}

	var (
		v   any
		err error
	)
	switch field.Value.(type) {
	case string:
		v, err = cast.ToStringE(raw)
	case int:
		v, err = toInt(raw)
	case bool:
		v, err = cast.ToBoolE(raw)
	default:
		return raw, nil
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTypeMismatch, k, err)
	}

	return v, nil
}

// toInt parses strings as plain decimal. cast alone would read "01155" as octal.
func toInt(raw any) (int, error) {
	s, ok := raw.(string)
	if !ok {
		return cast.ToIntE(raw)
	}

	n, err := strconv.ParseInt(s, 10, 0)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Persist sets values in the config file and re-reads it. The file is handled
// by its own viper instance, so env, dotenv and flag overrides never reach it.
func Persist(values map[string]any) error {
	file := viper.New()
	file.SetFs(filesystem.API())
	file.SetConfigType(where.ConfigType)

	path := where.ConfigFile()
	if filesystem.Exists(path) {
		file.SetConfigFile(path)
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
	}

	for k, v := range values {
		file.Set(k, v)
	}

	if err := file.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return viper.ReadInConfig()
}

// Load builds the registry from the values Setup resolved. Credentials left
// empty are looked up in store; a missing secret keeps the empty sentinel.
// When the store itself fails the remaining lookups are skipped with a warning.
// A nil store skips the lookup.
func Load(ctx context.Context, store secret.Store) (*Registry, error) {
	b := NewBuilder()

	for _, k := range Keys() {
		v, err := Coerce(k, viper.Get(k))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", k, err)
		}
		if err := b.Set(k, v); err != nil {
			return nil, err
		}
	}

	if store == nil {
		return b.Build(), nil
	}

	for _, k := range key.Secrets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if current, _ := bindings[k].get(&b.vars).(string); current != "" {
			continue
		}

		v, err := store.Get(k)
		if errors.Is(err, secret.ErrNotFound) {
			continue
		}
		if err != nil {
			log.Warnf("keyring unavailable, credentials stay empty: secret %s: %s", k, err)
			break
		}

		log.Debugf("using %s from keyring", k)
		if err := b.Set(k, v); err != nil {
			return nil, err
		}
	}

	return b.Build(), nil
}

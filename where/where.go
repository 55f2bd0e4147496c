// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/tmessages/buildvars/constant"
	"github.com/tmessages/buildvars/filesystem"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "BUILDVARS_CONFIG_PATH"

// ConfigType is the format of the persisted configuration file.
const ConfigType = "toml"

// ensureDir guarantees the existence of a directory at the specified path, creating it if necessary.
func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the configuration directory.
// The path can be explicitly specified via the BUILDVARS_CONFIG_PATH environment variable.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Buildvars))
}

// ConfigFile resolves the path of the toml file viper reads and writes.
func ConfigFile() string {
	return filepath.Join(Config(), fmt.Sprintf("%s.%s", constant.Buildvars, ConfigType))
}

// Env resolves the path of the optional dotenv file holding BUILDVARS_* overrides.
func Env() string {
	return filepath.Join(Config(), ".env")
}

// Logs resolves the absolute path to the directory used for diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

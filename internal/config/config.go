// SPDX-License-Identifier: MPL-2.0

// Package config loads stackhand's configuration: the build tool paths,
// selection behavior and artifact auto-open toggles.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name, also the config directory name.
	AppName = "stackhand"
	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
)

type (
	// AutoOpenConfig toggles opening of scanned artifacts per class.
	AutoOpenConfig struct {
		Coverage bool `mapstructure:"coverage"`
		Haddock  bool `mapstructure:"haddock"`
	}

	// Config is the loaded application configuration.
	Config struct {
		// Tool is the build tool executable (name or path).
		Tool string `mapstructure:"tool"`
		// PkgTool is the installed-package query executable.
		PkgTool string `mapstructure:"pkg_tool"`
		// AutoTarget skips the target menu and acts on the whole
		// package.
		AutoTarget bool `mapstructure:"auto_target"`
		// EditBeforeRun routes every assembled command through the
		// editable-prompt escape hatch before launching.
		EditBeforeRun bool `mapstructure:"edit_before_run"`
		// AutoOpen controls artifact auto-opening after a run.
		AutoOpen AutoOpenConfig `mapstructure:"auto_open"`
	}
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Tool:    "stack",
		PkgTool: "ghc-pkg",
		AutoOpen: AutoOpenConfig{
			Coverage: true,
			Haddock:  true,
		},
	}
}

// ConfigDir returns the stackhand configuration directory using
// platform-specific conventions: %APPDATA% on Windows, Application
// Support on macOS, $XDG_CONFIG_HOME (default ~/.config) elsewhere.
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// Load reads the configuration. An explicit path is used exclusively; an
// empty path falls back to the platform config directory, where a
// missing file yields the defaults. STACKHAND_* environment variables
// override file values either way.
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("tool", defaults.Tool)
	v.SetDefault("pkg_tool", defaults.PkgTool)
	v.SetDefault("auto_target", defaults.AutoTarget)
	v.SetDefault("edit_before_run", defaults.EditBeforeRun)
	v.SetDefault("auto_open.coverage", defaults.AutoOpen.Coverage)
	v.SetDefault("auto_open.haddock", defaults.AutoOpen.Haddock)

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		dir, err := ConfigDir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileExt)
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config in %s: %w", dir, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

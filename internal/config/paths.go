package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	envHome   = "REM_HOME"
	envConfig = "REM_CONFIG"

	defaultDirName = ".rem-cli"
)

// Paths are the resolved on-disk locations for one run.
type Paths struct {
	BaseDir    string
	TasksDir   string
	ConfigPath string
	LogFile    string
}

// ResolvePaths picks the base directory from override, then $REM_HOME, then
// ~/.rem-cli. $REM_CONFIG replaces the config file location.
func ResolvePaths(override string) (Paths, error) {
	base := strings.TrimSpace(override)
	if base == "" {
		base = strings.TrimSpace(os.Getenv(envHome))
	}
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, fmt.Errorf("user home dir: %w", err)
		}
		base = filepath.Join(home, defaultDirName)
	}
	return PathsFor(base, os.Getenv(envConfig))
}

// PathsFor derives every location from base.
func PathsFor(base, configOverride string) (Paths, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		return Paths{}, fmt.Errorf("empty base dir")
	}
	if abs, err := filepath.Abs(base); err == nil {
		base = abs
	}
	base = filepath.Clean(base)

	configPath := strings.TrimSpace(configOverride)
	if configPath == "" {
		configPath = filepath.Join(base, "config.toml")
	}
	return Paths{
		BaseDir:    base,
		TasksDir:   filepath.Join(base, "tasks"),
		ConfigPath: configPath,
		LogFile:    filepath.Join(base, "log", "rem.log"),
	}, nil
}

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultAppName names the config/data directories when no override is given.
const DefaultAppName = "taskboard"

// Paths holds the resolved on-disk locations for one app name.
type Paths struct {
	ConfigPath string
	DataDir    string
	DBPath     string
	LogDir     string
}

// Options defines optional settings for path resolution.
type Options struct {
	AppName string
	DevMode bool
}

// Bases are the per-user root directories paths are derived from.
type Bases struct {
	Config string
	Data   string
	State  string
}

// DefaultPaths returns default paths.
func DefaultPaths() (Paths, error) {
	return DefaultPathsWithOptions(Options{AppName: DefaultAppName})
}

// DefaultPathsWithOptions resolves paths for the current OS and environment.
func DefaultPathsWithOptions(opts Options) (Paths, error) {
	appName := AppName(opts)

	configDir, err := os.UserConfigDir()
	if err != nil {
		return Paths{}, fmt.Errorf("user config dir: %w", err)
	}
	bases := Bases{Config: configDir, Data: configDir, State: configDir}
	switch runtime.GOOS {
	case "linux":
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return Paths{}, fmt.Errorf("user home dir: %w", homeErr)
		}
		bases.Data = filepath.Join(home, ".local", "share")
		bases.State = filepath.Join(home, ".local", "state")
	case "windows":
		if v := strings.TrimSpace(os.Getenv("LOCALAPPDATA")); v != "" {
			bases.Data = v
			bases.State = v
		}
	}

	env := map[string]string{
		"XDG_CONFIG_HOME": os.Getenv("XDG_CONFIG_HOME"),
		"XDG_DATA_HOME":   os.Getenv("XDG_DATA_HOME"),
		"XDG_STATE_HOME":  os.Getenv("XDG_STATE_HOME"),
		"APPDATA":         os.Getenv("APPDATA"),
		"LOCALAPPDATA":    os.Getenv("LOCALAPPDATA"),
	}
	return PathsFor(runtime.GOOS, env, bases, appName)
}

// AppName returns the directory name for opts, with a -dev suffix in dev mode.
func AppName(opts Options) string {
	appName := strings.TrimSpace(opts.AppName)
	if appName == "" {
		appName = DefaultAppName
	}
	if opts.DevMode {
		appName += "-dev"
	}
	return appName
}

// PathsFor derives paths from explicit inputs so it can be tested per OS.
func PathsFor(goos string, env map[string]string, bases Bases, appName string) (Paths, error) {
	if bases.Config == "" || bases.Data == "" {
		return Paths{}, fmt.Errorf("empty base dirs")
	}
	if bases.State == "" {
		bases.State = bases.Data
	}
	appName = strings.TrimSpace(appName)
	if appName == "" {
		return Paths{}, fmt.Errorf("empty app name")
	}

	switch goos {
	case "linux":
		if v := env["XDG_CONFIG_HOME"]; v != "" {
			bases.Config = v
		}
		if v := env["XDG_DATA_HOME"]; v != "" {
			bases.Data = v
		}
		if v := env["XDG_STATE_HOME"]; v != "" {
			bases.State = v
		}
	case "windows":
		if v := env["APPDATA"]; v != "" {
			bases.Config = v
		}
		if v := env["LOCALAPPDATA"]; v != "" {
			bases.Data = v
			bases.State = v
		}
	}

	appDataDir := filepath.Join(bases.Data, appName)
	return Paths{
		ConfigPath: filepath.Join(bases.Config, appName, "config.toml"),
		DataDir:    appDataDir,
		DBPath:     filepath.Join(appDataDir, appName+".db"),
		LogDir:     filepath.Join(bases.State, appName, "log"),
	}, nil
}

// Package flags holds the global flags shared by every mcpgw command.
// Each flag falls back to its MCPGW_ environment variable, then to a default.
package flags

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
)

const (
	// Env vars
	EnvVarConfigFile = "MCPGW_CONFIG_FILE"
	EnvVarLogPath    = "MCPGW_LOG_PATH"
	EnvVarLogLevel   = "MCPGW_LOG_LEVEL"
	EnvVarBackendURL = "MCPGW_BACKEND_URL"

	// Defaults
	DefaultConfigFile = ".mcpgw.toml"
	DefaultLogPath    = ""
	DefaultLogLevel   = "info"
	DefaultBackendURL = ""

	// Flag names
	FlagNameConfigFile = "config-file"
	FlagNameLogPath    = "log-path"
	FlagNameLogLevel   = "log-level"
	FlagNameBackendURL = "backend-url"
)

var (
	ConfigFile string
	LogPath    string
	LogLevel   string
	BackendURL string
)

// InitFlags registers the global flags on fs.
func InitFlags(fs *pflag.FlagSet) {
	initConfigFile(fs)
	initLogger(fs)
	initEndpoints(fs)
}

func initConfigFile(fs *pflag.FlagSet) {
	if ConfigFile == "" {
		ConfigFile = fromEnv(EnvVarConfigFile, DefaultConfigFile)
	}
	fs.StringVar(&ConfigFile, FlagNameConfigFile, ConfigFile, "path to config file")
}

func initLogger(fs *pflag.FlagSet) {
	if LogPath == "" {
		LogPath = fromEnv(EnvVarLogPath, DefaultLogPath)
	}
	fs.StringVar(&LogPath, FlagNameLogPath, LogPath, "path to generated log file")

	if LogLevel == "" {
		LogLevel = strings.ToLower(fromEnv(EnvVarLogLevel, DefaultLogLevel))
	}
	fs.StringVar(&LogLevel, FlagNameLogLevel, LogLevel, "log level for mcpgw logs (trace, debug, info, warn, error, off)")
}

func initEndpoints(fs *pflag.FlagSet) {
	if BackendURL == "" {
		BackendURL = fromEnv(EnvVarBackendURL, DefaultBackendURL)
	}
	fs.StringVar(&BackendURL, FlagNameBackendURL, BackendURL, "gateway backend base URL (overrides backend.url in the config file)")
}

func fromEnv(envVar string, fallback string) string {
	if env := strings.TrimSpace(os.Getenv(envVar)); env != "" {
		return env
	}
	return fallback
}

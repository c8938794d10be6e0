package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/cloudnook/mcpgw/internal/flags"
	"github.com/cloudnook/mcpgw/internal/perms"
)

// AppName is the name of the binary.
const AppName = "mcpgw"

// version is set at build time via -ldflags.
var version = "dev"

// Version returns the version of the binary.
func Version() string {
	return version
}

// BaseCmd holds what every command shares.
type BaseCmd struct {
	logger    hclog.Logger
	logOutput io.Writer
}

// SetLogger updates the command's logger.
func (c *BaseCmd) SetLogger(logger hclog.Logger) {
	c.logger = logger
}

// SetDefaultLogOutput sets where logs are written when no log path is configured.
func (c *BaseCmd) SetDefaultLogOutput(w io.Writer) {
	c.logOutput = w
}

// Logger returns the logger for the command, creating it from the log flags on first use.
// Without a log path, log output goes to the default log output, or is discarded when none was set,
// so it never interleaves with command output.
func (c *BaseCmd) Logger() (hclog.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}

	lvl := strings.ToLower(strings.TrimSpace(flags.LogLevel))
	if lvl == "" {
		lvl = flags.DefaultLogLevel
	}

	level := hclog.LevelFromString(lvl)
	if level == hclog.NoLevel {
		return nil, fmt.Errorf("invalid log level '%s'", flags.LogLevel)
	}

	output := c.logOutput
	if output == nil {
		output = io.Discard
	}
	if logPath := strings.TrimSpace(flags.LogPath); logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, perms.RegularFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file (%s): %w", logPath, err)
		}
		output = f
	}

	c.logger = hclog.New(&hclog.LoggerOptions{
		Name:   AppName,
		Level:  level,
		Output: output,
	})

	return c.logger, nil
}

// RequireTogether returns an error when only some of the named flags were set on cmd.
func (c *BaseCmd) RequireTogether(cmd *cobra.Command, flagNames ...string) error {
	set := 0
	for _, name := range flagNames {
		if cmd.Flags().Changed(name) {
			set++
		}
	}

	if set == 0 || set == len(flagNames) {
		return nil
	}

	names := slices.Clone(flagNames)
	slices.Sort(names)

	return fmt.Errorf("flags must be provided together or not at all: (%s)", strings.Join(names, ", "))
}

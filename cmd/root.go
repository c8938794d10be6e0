package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cloudnook/mcpgw/cmd/config"
	"github.com/cloudnook/mcpgw/cmd/inspect"
	"github.com/cloudnook/mcpgw/cmd/servers"
	"github.com/cloudnook/mcpgw/internal/cmd"
	cmdopts "github.com/cloudnook/mcpgw/internal/cmd/options"
	"github.com/cloudnook/mcpgw/internal/flags"
)

type RootCmd struct {
	*cmd.BaseCmd
}

// createCmdFunc is the shared constructor signature of every top-level command.
type createCmdFunc func(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error)

// Execute builds the root command and runs it against the process arguments.
func Execute() error {
	rootCmd, err := NewRootCmd(&cmd.BaseCmd{})
	if err != nil {
		return fmt.Errorf("error creating root command: %w", err)
	}

	return rootCmd.Execute()
}

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	c := &RootCmd{BaseCmd: baseCmd}

	rootCmd := &cobra.Command{
		Use:           fmt.Sprintf("%s <command> [args]", cmd.AppName),
		Short:         fmt.Sprintf("'%s' is the operator console for an MCP gateway.", cmd.AppName),
		Long:          c.longDescription(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       cmd.Version(),
	}

	// Global flags
	flags.InitFlags(rootCmd.PersistentFlags())

	fns := []createCmdFunc{
		NewInitCmd,
		NewDaemonCmd,
		NewMonitorCmd,
		servers.NewCmd,
		inspect.NewCmd,
		config.NewCmd,
	}

	for _, fn := range fns {
		tempCmd, err := fn(baseCmd, opt...)
		if err != nil {
			return nil, err
		}
		rootCmd.AddCommand(tempCmd)
	}

	return rootCmd, nil
}

func (c *RootCmd) longDescription() string {
	return fmt.Sprintf(`The '%s' CLI is the operator console for an MCP gateway.

It lists the MCP servers registered with the gateway backend, classifies their health,
tracks incidents and uptime, registers new servers, and sends JSON-RPC requests to them.`, cmd.AppName)
}

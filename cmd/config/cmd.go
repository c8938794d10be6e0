package config

import (
	"github.com/spf13/cobra"

	"github.com/cloudnook/mcpgw/internal/cmd"
	"github.com/cloudnook/mcpgw/internal/cmd/options"
)

func NewCmd(baseCmd *cmd.BaseCmd, opt ...options.CmdOption) (*cobra.Command, error) {
	cobraCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspects the console configuration",
		Long:  "Inspects the console configuration file used by every command",
	}

	// Sub-commands for: mcpgw config
	fns := []func(baseCmd *cmd.BaseCmd, opt ...options.CmdOption) (*cobra.Command, error){
		NewShowCmd, // show
	}

	for _, fn := range fns {
		tempCmd, err := fn(baseCmd, opt...)
		if err != nil {
			return nil, err
		}
		cobraCmd.AddCommand(tempCmd)
	}

	return cobraCmd, nil
}

package inspect

import (
	"github.com/spf13/cobra"

	"github.com/cloudnook/mcpgw/internal/cmd"
	"github.com/cloudnook/mcpgw/internal/cmd/options"
)

func NewCmd(baseCmd *cmd.BaseCmd, opt ...options.CmdOption) (*cobra.Command, error) {
	cobraCmd := &cobra.Command{
		Use:   "inspect",
		Short: "Sends JSON-RPC requests to MCP servers through the gateway",
		Long: "Lists the JSON-RPC methods the protocol inspector knows about, " +
			"and executes requests against a registered MCP server through the gateway backend",
	}

	// Sub-commands for: mcpgw inspect
	fns := []func(baseCmd *cmd.BaseCmd, opt ...options.CmdOption) (*cobra.Command, error){
		NewMethodsCmd, // methods
		NewCallCmd,    // call
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

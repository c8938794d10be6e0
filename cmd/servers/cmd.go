package servers

import (
	"github.com/spf13/cobra"

	"github.com/cloudnook/mcpgw/internal/cmd"
	"github.com/cloudnook/mcpgw/internal/cmd/options"
)

type Cmd struct {
	*cmd.BaseCmd
}

func NewCmd(baseCmd *cmd.BaseCmd, opt ...options.CmdOption) (*cobra.Command, error) {
	cobraCmd := &cobra.Command{
		Use:   "servers",
		Short: "Lists, shows and registers MCP servers",
		Long: "Lists, shows and registers the MCP servers known to the gateway backend, " +
			"with their health classified from reported metrics",
	}

	// Sub-commands for: mcpgw servers
	fns := []func(baseCmd *cmd.BaseCmd, opt ...options.CmdOption) (*cobra.Command, error){
		NewListCmd, // list
		NewShowCmd, // show
		NewAddCmd,  // add
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

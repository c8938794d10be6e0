package servers

import (
	"fmt"

	"github.com/spf13/cobra"

	internalcmd "github.com/cloudnook/mcpgw/internal/cmd"
	cmdopts "github.com/cloudnook/mcpgw/internal/cmd/options"
	"github.com/cloudnook/mcpgw/internal/cmd/output"
	"github.com/cloudnook/mcpgw/internal/config"
	"github.com/cloudnook/mcpgw/internal/console"
	"github.com/cloudnook/mcpgw/internal/printer"
)

type ShowCmd struct {
	*internalcmd.BaseCmd
	Format         internalcmd.OutputFormat
	cfgLoader      config.Loader
	backendFactory cmdopts.BackendFactory
	printer        output.Printer[console.DetailState]
}

func NewShowCmd(baseCmd *internalcmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ShowCmd{
		BaseCmd:        baseCmd,
		Format:         internalcmd.FormatText, // Default to plain text
		cfgLoader:      opts.ConfigLoader,
		backendFactory: opts.BackendFactory,
		printer:        &printer.DetailPrinter{},
	}

	cobraCmd := &cobra.Command{
		Use:   "show <server-id> <server-name>",
		Short: "Shows the detail page of an MCP server",
		Long: "Shows a server's properties, metrics, and the tools, resources and prompts it advertises. " +
			"The gateway backend looks servers up by both id and name",
		Args: cobra.ExactArgs(2),
		RunE: c.run,
	}

	allowed := internalcmd.AllowedOutputFormats()
	cobraCmd.Flags().Var(
		&c.Format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowed.String()),
	)

	return cobraCmd, nil
}

// run prints the detail state. A missing server is a state, not a command failure.
func (c *ShowCmd) run(cmd *cobra.Command, args []string) error {
	handler, err := internalcmd.FormatHandler(cmd.OutOrStdout(), c.Format, c.printer)
	if err != nil {
		return err
	}

	session, err := c.NewSession(c.cfgLoader, c.backendFactory)
	if err != nil {
		return handler.HandleError(err)
	}

	store, err := session.NewStore()
	if err != nil {
		return handler.HandleError(err)
	}
	defer store.Close()

	state, err := store.LoadDetail(cmd.Context(), args[0], args[1])
	if err != nil {
		return handler.HandleError(err)
	}

	return handler.HandleResult(state)
}

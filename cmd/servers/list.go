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

type ListCmd struct {
	*internalcmd.BaseCmd
	Format         internalcmd.OutputFormat
	Query          string
	cfgLoader      config.Loader
	backendFactory cmdopts.BackendFactory
	printer        output.Printer[console.DashboardView]
}

func NewListCmd(baseCmd *internalcmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ListCmd{
		BaseCmd:        baseCmd,
		Format:         internalcmd.FormatText, // Default to plain text
		cfgLoader:      opts.ConfigLoader,
		backendFactory: opts.BackendFactory,
		printer:        &printer.DashboardPrinter{},
	}

	cobraCmd := &cobra.Command{
		Use:   "list [--query <text>]",
		Short: "Lists registered MCP servers with their health",
		Long: "Lists the MCP servers registered with the gateway backend, with health counts and per-server " +
			"metrics. --query keeps servers whose name, description or endpoint contains the text, ignoring case",
		Args: cobra.NoArgs,
		RunE: c.run,
	}

	allowed := internalcmd.AllowedOutputFormats()
	cobraCmd.Flags().Var(
		&c.Format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowed.String()),
	)
	cobraCmd.Flags().StringVar(&c.Query, "query", "", "Only show servers matching this text")

	return cobraCmd, nil
}

func (c *ListCmd) run(cmd *cobra.Command, _ []string) error {
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

	if err := store.Refresh(cmd.Context()); err != nil {
		return handler.HandleError(err)
	}

	return handler.HandleResult(store.Dashboard(c.Query))
}

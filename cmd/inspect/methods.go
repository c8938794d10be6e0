package inspect

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	internalcmd "github.com/cloudnook/mcpgw/internal/cmd"
	cmdopts "github.com/cloudnook/mcpgw/internal/cmd/options"
	"github.com/cloudnook/mcpgw/internal/inspector"
	"github.com/cloudnook/mcpgw/internal/printer"
)

type MethodsCmd struct {
	*internalcmd.BaseCmd
	Format  internalcmd.OutputFormat
	printer *printer.MethodGroupPrinter
}

func NewMethodsCmd(baseCmd *internalcmd.BaseCmd, _ ...cmdopts.CmdOption) (*cobra.Command, error) {
	p := &printer.MethodGroupPrinter{}
	p.SetFooter(printer.MethodsFooter())

	c := &MethodsCmd{
		BaseCmd: baseCmd,
		Format:  internalcmd.FormatText, // Default to plain text
		printer: p,
	}

	cobraCmd := &cobra.Command{
		Use:   "methods [query]",
		Short: "Lists the JSON-RPC methods the inspector knows about",
		Long: "Lists the JSON-RPC methods the inspector knows about, grouped by category. " +
			"The optional query keeps methods whose name or category contains it, ignoring case",
		Args: cobra.MaximumNArgs(1),
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

func (c *MethodsCmd) run(cmd *cobra.Command, args []string) error {
	handler, err := internalcmd.FormatHandler[inspector.CategoryGroup](cmd.OutOrStdout(), c.Format, c.printer)
	if err != nil {
		return err
	}

	query := ""
	if len(args) > 0 {
		query = strings.TrimSpace(args[0])
	}

	return handler.HandleResults(inspector.GroupByCategory(inspector.SearchMethods(query))...)
}

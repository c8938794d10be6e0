package config

import (
	"fmt"

	"github.com/spf13/cobra"

	internalcmd "github.com/cloudnook/mcpgw/internal/cmd"
	cmdopts "github.com/cloudnook/mcpgw/internal/cmd/options"
	"github.com/cloudnook/mcpgw/internal/cmd/output"
	"github.com/cloudnook/mcpgw/internal/config"
	"github.com/cloudnook/mcpgw/internal/flags"
	"github.com/cloudnook/mcpgw/internal/printer"
)

type ShowCmd struct {
	*internalcmd.BaseCmd
	Format    internalcmd.OutputFormat
	cfgLoader config.Loader
	printer   output.Printer[*config.Config]
}

func NewShowCmd(baseCmd *internalcmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ShowCmd{
		BaseCmd:   baseCmd,
		Format:    internalcmd.FormatText, // Default to plain text
		cfgLoader: opts.ConfigLoader,
		printer:   &printer.ConfigPrinter{},
	}

	cobraCmd := &cobra.Command{
		Use:   "show",
		Short: "Shows the loaded configuration",
		Long: fmt.Sprintf(
			"Loads and validates the configuration file, then prints it. "+
				"When the project %s does not exist the user-specific configuration file is used",
			flags.DefaultConfigFile,
		),
		Args: cobra.NoArgs,
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

func (c *ShowCmd) run(cmd *cobra.Command, _ []string) error {
	handler, err := internalcmd.FormatHandler(cmd.OutOrStdout(), c.Format, c.printer)
	if err != nil {
		return err
	}

	path, err := config.ResolvePath(flags.ConfigFile)
	if err != nil {
		return handler.HandleError(err)
	}

	cfg, err := c.cfgLoader.Load(path)
	if err != nil {
		return handler.HandleError(err)
	}

	return handler.HandleResult(cfg)
}

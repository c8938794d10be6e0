package servers

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cloudnook/mcpgw/internal/api"
	internalcmd "github.com/cloudnook/mcpgw/internal/cmd"
	cmdopts "github.com/cloudnook/mcpgw/internal/cmd/options"
	"github.com/cloudnook/mcpgw/internal/cmd/output"
	"github.com/cloudnook/mcpgw/internal/config"
	"github.com/cloudnook/mcpgw/internal/domain"
	"github.com/cloudnook/mcpgw/internal/printer"
)

const (
	flagTransport   = "transport"
	flagEndpoint    = "endpoint"
	flagDescription = "description"
	flagVersion     = "version"
)

// AddCmd should be used to represent the 'servers add' command.
type AddCmd struct {
	*internalcmd.BaseCmd
	Format         internalcmd.OutputFormat
	Transport      string
	Endpoint       string
	Description    string
	Version        string
	cfgLoader      config.Loader
	backendFactory cmdopts.BackendFactory
	printer        output.Printer[api.ServerRecord]
}

func NewAddCmd(baseCmd *internalcmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &AddCmd{
		BaseCmd:        baseCmd,
		Format:         internalcmd.FormatText, // Default to plain text
		cfgLoader:      opts.ConfigLoader,
		backendFactory: opts.BackendFactory,
		printer:        &printer.ServerRecordPrinter{},
	}

	cobraCmd := &cobra.Command{
		Use:   "add <server-name> --transport <type> [--endpoint <url>]",
		Short: "Registers an MCP server with the gateway",
		Long:  c.longDescription(),
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}

	allowed := internalcmd.AllowedOutputFormats()
	cobraCmd.Flags().Var(
		&c.Format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowed.String()),
	)
	cobraCmd.Flags().StringVar(
		&c.Transport,
		flagTransport,
		"",
		fmt.Sprintf("Transport the server uses (one of: %s)", transportNames()),
	)
	cobraCmd.Flags().StringVar(&c.Endpoint, flagEndpoint, "", "Network endpoint, required for network transports")
	cobraCmd.Flags().StringVar(&c.Description, flagDescription, "", "Optional, a description of the server")
	cobraCmd.Flags().StringVar(&c.Version, flagVersion, "", "Optional, the version of the server")

	_ = cobraCmd.MarkFlagRequired(flagTransport)

	return cobraCmd, nil
}

func (c *AddCmd) longDescription() string {
	return "Registers an MCP server with the gateway backend. " +
		"Servers using a network transport (sse, streamable_http) must declare --endpoint; " +
		"local process (stdio) servers must not"
}

func (c *AddCmd) run(cmd *cobra.Command, args []string) error {
	handler, err := internalcmd.FormatHandler(cmd.OutOrStdout(), c.Format, c.printer)
	if err != nil {
		return err
	}

	reg, err := c.registration(args[0])
	if err != nil {
		return handler.HandleError(err)
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

	record, err := store.Register(cmd.Context(), reg)
	if err != nil {
		session.Logger.Warn("Server registration failed", "name", reg.Name, "transport", reg.TransportType, "error", err)
		return handler.HandleError(fmt.Errorf("failed to register server '%s': %w", reg.Name, err))
	}

	result, err := api.DomainServerRecord(record).ToAPIType()
	if err != nil {
		return handler.HandleError(err)
	}

	return handler.HandleResult(result)
}

// registration builds and validates the registration payload from the arguments and flags.
func (c *AddCmd) registration(name string) (domain.Registration, error) {
	transport, err := domain.ParseTransportType(c.Transport)
	if err != nil {
		return domain.Registration{}, err
	}

	reg := domain.Registration{
		Name:          strings.TrimSpace(name),
		Description:   strings.TrimSpace(c.Description),
		TransportType: transport,
		Endpoint:      strings.TrimSpace(c.Endpoint),
		Version:       strings.TrimSpace(c.Version),
	}

	if err := reg.Validate(); err != nil {
		return domain.Registration{}, err
	}

	return reg, nil
}

func transportNames() string {
	types := domain.AllTransportTypes()
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.String())
	}
	return strings.Join(names, ", ")
}

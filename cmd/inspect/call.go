package inspect

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	internalcmd "github.com/cloudnook/mcpgw/internal/cmd"
	cmdopts "github.com/cloudnook/mcpgw/internal/cmd/options"
	"github.com/cloudnook/mcpgw/internal/cmd/output"
	"github.com/cloudnook/mcpgw/internal/config"
	"github.com/cloudnook/mcpgw/internal/inspector"
	"github.com/cloudnook/mcpgw/internal/printer"
)

const (
	flagMethod  = "method"
	flagParams  = "params"
	flagID      = "id"
	flagRequest = "request"

	// stdinPath reads the request from standard input.
	stdinPath = "-"
)

// CallCmd should be used to represent the 'inspect call' command.
type CallCmd struct {
	*internalcmd.BaseCmd
	Format         internalcmd.OutputFormat
	Method         string
	Params         string
	ID             string
	RequestPath    string
	cfgLoader      config.Loader
	backendFactory cmdopts.BackendFactory
	printer        output.Printer[inspector.Result]
}

func NewCallCmd(baseCmd *internalcmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &CallCmd{
		BaseCmd:        baseCmd,
		Format:         internalcmd.FormatText, // Default to plain text
		cfgLoader:      opts.ConfigLoader,
		backendFactory: opts.BackendFactory,
		printer:        &printer.InspectorResultPrinter{},
	}

	cobraCmd := &cobra.Command{
		Use:   "call <server-id> (--method <name> [--params <json>] | --request <file>)",
		Short: "Executes a JSON-RPC request against an MCP server",
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
	cobraCmd.Flags().StringVar(&c.Method, flagMethod, "", "JSON-RPC method to execute (e.g. tools/list)")
	cobraCmd.Flags().StringVar(&c.Params, flagParams, "", "JSON object of method parameters")
	cobraCmd.Flags().StringVar(&c.ID, flagID, "1", "Request identifier, numeric when it parses as an integer")
	cobraCmd.Flags().StringVar(
		&c.RequestPath,
		flagRequest,
		"",
		fmt.Sprintf("Path to a complete JSON-RPC request, or '%s' to read it from standard input", stdinPath),
	)

	cobraCmd.MarkFlagsMutuallyExclusive(flagRequest, flagMethod)
	cobraCmd.MarkFlagsMutuallyExclusive(flagRequest, flagParams)
	cobraCmd.MarkFlagsMutuallyExclusive(flagRequest, flagID)
	cobraCmd.MarkFlagsOneRequired(flagRequest, flagMethod)

	return cobraCmd, nil
}

func (c *CallCmd) longDescription() string {
	return "Executes a JSON-RPC request against a registered MCP server through the gateway backend.\n\n" +
		"Build the request from --method, --params and --id, or pass a complete request with --request. " +
		"Invalid requests and errors reported by the server are printed as JSON-RPC error responses; " +
		"tools/call arguments are checked against the tool's input schema before dispatch"
}

func (c *CallCmd) run(cmd *cobra.Command, args []string) error {
	handler, err := internalcmd.FormatHandler(cmd.OutOrStdout(), c.Format, c.printer)
	if err != nil {
		return err
	}

	serverID := strings.TrimSpace(args[0])
	if serverID == "" {
		return handler.HandleError(fmt.Errorf("server-id is required"))
	}

	req, err := c.request(cmd.InOrStdin())
	if err != nil {
		return handler.HandleError(err)
	}

	session, err := c.NewSession(c.cfgLoader, c.backendFactory)
	if err != nil {
		return handler.HandleError(err)
	}

	insp, err := inspector.NewInspector(session.Backend, inspector.WithLogger(session.Logger))
	if err != nil {
		return handler.HandleError(err)
	}

	result, err := insp.Execute(cmd.Context(), serverID, req)
	if err != nil {
		return handler.HandleError(fmt.Errorf("failed to execute %s on %s: %w", req.Method, serverID, err))
	}

	return handler.HandleResult(result)
}

// request builds the JSON-RPC request from --request, or from --method, --params and --id.
func (c *CallCmd) request(stdin io.Reader) (inspector.Request, error) {
	if c.RequestPath != "" {
		data, err := c.readRequest(stdin)
		if err != nil {
			return inspector.Request{}, err
		}
		return inspector.ParseRequest(data)
	}

	params, err := parseParams(c.Params)
	if err != nil {
		return inspector.Request{}, err
	}

	return inspector.NewRequest(parseID(c.ID), strings.TrimSpace(c.Method), params), nil
}

func (c *CallCmd) readRequest(stdin io.Reader) ([]byte, error) {
	if c.RequestPath == stdinPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("error reading request from stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(c.RequestPath)
	if err != nil {
		return nil, fmt.Errorf("error reading request file: %w", err)
	}
	return data, nil
}

// parseParams decodes a JSON object, keeping numbers as json.Number.
func parseParams(s string) (map[string]any, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var params map[string]any
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	if err := dec.Decode(&params); err != nil {
		return nil, fmt.Errorf("invalid --%s: must be a JSON object: %w", flagParams, err)
	}

	return params, nil
}

func parseID(s string) any {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return s
}

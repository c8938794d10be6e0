package printer

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/cloudnook/mcpgw/internal/cmd/output"
	"github.com/cloudnook/mcpgw/internal/config"
)

var _ output.Printer[*config.Config] = (*ConfigPrinter)(nil)

// ConfigPrinter prints a configuration in the TOML form it is stored in.
type ConfigPrinter struct {
	frame[*config.Config]
}

func (p *ConfigPrinter) Item(w io.Writer, c *config.Config) error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if path := c.Path(); path != "" {
		_, _ = fmt.Fprintf(w, "# %s\n", path)
	}

	return toml.NewEncoder(w).Encode(c)
}

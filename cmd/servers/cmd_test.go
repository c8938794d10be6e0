package servers

import (
	"testing"

	"github.com/stretchr/testify/require"

	internalcmd "github.com/cloudnook/mcpgw/internal/cmd"
)

func TestNewCmd_Subcommands(t *testing.T) {
	t.Parallel()

	cobraCmd, err := NewCmd(&internalcmd.BaseCmd{})
	require.NoError(t, err)
	require.Equal(t, "servers", cobraCmd.Name())

	var names []string
	for _, c := range cobraCmd.Commands() {
		names = append(names, c.Name())
	}
	require.ElementsMatch(t, []string{"list", "show", "add"}, names)
}

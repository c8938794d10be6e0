package perms

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModes(t *testing.T) {
	t.Parallel()

	require.Equal(t, os.FileMode(0o644), RegularFile)
	require.Equal(t, os.FileMode(0o755), RegularDir)
	require.True(t, RegularFile.IsRegular())
}

func TestModes_AppliedOnCreate(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "conf")
	require.NoError(t, os.Mkdir(dir, RegularDir))
	require.NoError(t, os.Chmod(dir, RegularDir))

	file := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(file, []byte("x"), RegularFile))
	require.NoError(t, os.Chmod(file, RegularFile))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.Equal(t, RegularDir, info.Mode().Perm())

	info, err = os.Stat(file)
	require.NoError(t, err)
	require.Equal(t, RegularFile, info.Mode().Perm())
}

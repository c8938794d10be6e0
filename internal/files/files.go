// Package files locates and prepares the directories mcpgw writes to.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudnook/mcpgw/internal/perms"
)

// EnvVarXDGConfigHome is the XDG Base Directory env var name for config files.
const EnvVarXDGConfigHome = "XDG_CONFIG_HOME"

// AppDirName returns the name of the application directory inside user-specific directories.
func AppDirName() string {
	return "mcpgw"
}

// UserSpecificConfigDir returns the directory holding user-specific configuration.
// It respects XDG_CONFIG_HOME, which must be absolute, and defaults to ~/.config/mcpgw.
// See: https://specifications.freedesktop.org/basedir-spec/latest/
func UserSpecificConfigDir() (string, error) {
	if v, ok := os.LookupEnv(EnvVarXDGConfigHome); ok && strings.TrimSpace(v) != "" {
		home := strings.TrimSpace(v)
		if !filepath.IsAbs(home) {
			return "", fmt.Errorf("environment variable '%s' must be an absolute path, got: %s", EnvVarXDGConfigHome, home)
		}
		return filepath.Join(home, AppDirName()), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", AppDirName()), nil
}

// EnsureAtLeastRegularDir creates a directory with standard permissions if it doesn't exist,
// and verifies that it has at least the required regular permissions if it already exists.
// It does not attempt to repair ownership or permissions: if they are wrong, it returns an error.
// Symlinked directories are rejected.
func EnsureAtLeastRegularDir(path string) error {
	if err := os.MkdirAll(path, perms.RegularDir); err != nil {
		return fmt.Errorf("could not ensure directory exists for '%s': %w", path, err)
	}

	info, err := os.Lstat(path)
	if err != nil {
		return fmt.Errorf("could not stat directory '%s': %w", path, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("path '%s' is a symlink, not a directory", path)
	}

	if !info.IsDir() {
		return fmt.Errorf("path '%s' is not a directory", path)
	}

	if !isPermissionAcceptable(info.Mode().Perm(), perms.RegularDir) {
		return fmt.Errorf(
			"incorrect permissions for directory '%s' (%#o, want %#o or more restrictive)",
			path, info.Mode().Perm(),
			perms.RegularDir,
		)
	}

	return nil
}

// isPermissionAcceptable reports whether actual grants no permission bit that required does not.
func isPermissionAcceptable(actual, required os.FileMode) bool {
	return (actual & ^required) == 0
}

// Package perms holds the file and directory modes mcpgw creates things with.
package perms

import "os"

const (
	// RegularFile is used for configuration and log files: owner read/write, everyone else read.
	RegularFile os.FileMode = 0o644

	// RegularDir is used for configuration directories: owner full access, everyone else read/traverse.
	RegularDir os.FileMode = 0o755
)

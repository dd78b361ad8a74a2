package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureAppDir returns the per-user data directory for the given application
// name, creating it if needed. It lives under the OS config directory
// (XDG_CONFIG_HOME on Linux); when that cannot be resolved it falls back to a
// dot-directory in the current working directory.
func EnsureAppDir(appName string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			return "", fmt.Errorf("getwd: %w", cwdErr)
		}
		base = cwd
		appName = "." + appName
	}

	dir := filepath.Join(base, appName)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

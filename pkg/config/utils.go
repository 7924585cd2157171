package config

import (
	"os"
	"path/filepath"
)

// FindEnvFile searches for the nearest file named filename, starting at the
// working directory and walking up to the filesystem root.
// An empty filename means .env.
func FindEnvFile(filename string) (string, error) {
	if filename == "" {
		filename = ".env"
	}
	startDir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	curr := startDir
	for {
		candidate := filepath.Join(curr, filename)
		if _, err = os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(curr)
		if parent == curr {
			break
		}
		curr = parent
	}
	return "", os.ErrNotExist
}

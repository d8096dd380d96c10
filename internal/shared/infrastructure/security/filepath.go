// Package security validates user-supplied file paths.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// dangerousChars contains shell metacharacters rejected in file paths.
var dangerousChars = []string{";", "&", "|", "$", "`", "<", ">", "\n", "\r"}

// ValidateFilePath cleans path, makes it absolute, and resolves symlinks
// for files that already exist.
func ValidateFilePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}

	for _, char := range dangerousChars {
		if strings.Contains(path, char) {
			return "", fmt.Errorf("file path contains forbidden character %q: %s", char, path)
		}
	}

	cleanPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve file path: %w", err)
	}

	resolvedPath, err := filepath.EvalSymlinks(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			// not created yet
			return cleanPath, nil
		}
		return "", fmt.Errorf("failed to resolve file path: %w", err)
	}

	return resolvedPath, nil
}

// SafeWriteFile writes data owner-only after validating the path.
func SafeWriteFile(path string, data []byte) (string, error) {
	cleanPath, err := ValidateFilePath(path)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return "", fmt.Errorf("file path is a directory: %s", cleanPath)
	}
	if err := os.WriteFile(cleanPath, data, 0600); err != nil {
		return "", err
	}
	return cleanPath, nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// HomeEnvVar overrides the searchtool home directory
	HomeEnvVar = "SEARCHTOOL_HOME"

	homeDirName    = ".searchtool"
	configFileName = "config.yaml"
	historyDBName  = "history.db"
)

// GetHome returns the searchtool home directory.
// Priority order:
//  1. SEARCHTOOL_HOME environment variable (if set)
//  2. ~/.searchtool
//  3. ./.searchtool when the user home cannot be determined
//
// The directory is not created here; writers create what they need.
func GetHome() (string, error) {
	userHome, err := os.UserHomeDir()
	if err != nil {
		userHome = ""
	}
	return GetHomeWithBase(userHome)
}

// GetHomeWithBase is GetHome with the user home directory supplied by the caller.
// An empty base selects the working-directory fallback.
func GetHomeWithBase(base string) (string, error) {
	if home := os.Getenv(HomeEnvVar); home != "" {
		return home, nil
	}

	if base != "" {
		return filepath.Join(base, homeDirName), nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return filepath.Join(cwd, homeDirName), nil
}

// DefaultConfigPath returns <home>/config.yaml
func DefaultConfigPath() (string, error) {
	home, err := GetHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configFileName), nil
}

// DefaultHistoryDBPath returns <home>/history.db
func DefaultHistoryDBPath() (string, error) {
	home, err := GetHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, historyDBName), nil
}

package config

import (
	"fmt"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/dep-autosync/internal/messages"
)

// ExpandPath resolves a leading ~ in path to the user's home directory.
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf(messages.RootResolvePathFmt, path, err)
	}
	return expanded, nil
}

// DefaultConfigPath returns the expanded default config location.
func DefaultConfigPath() (string, error) {
	return ExpandPath(messages.RootDefaultConfig)
}

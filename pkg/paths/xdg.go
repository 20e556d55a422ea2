// Package paths provides XDG-compliant path resolution for ccsessions.
//
// Resolution order:
// 1. CCSESSIONS_HOME (portable root) → $CCSESSIONS_HOME/{config,state}
// 2. XDG env vars → $XDG_*_HOME/ccsessions
// 3. Platform defaults → ~/.config/ccsessions, ~/.local/state/ccsessions
package paths

import (
	"os"
	"path/filepath"
)

const appName = "ccsessions"

// getConfigHome returns the base config home directory.
func getConfigHome() string {
	if home := os.Getenv("CCSESSIONS_HOME"); home != "" {
		return filepath.Join(home, "config")
	}
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config")
	}
	return ""
}

// getStateHome returns the base state home directory.
func getStateHome() string {
	if home := os.Getenv("CCSESSIONS_HOME"); home != "" {
		return filepath.Join(home, "state")
	}
	if xdgStateHome := os.Getenv("XDG_STATE_HOME"); xdgStateHome != "" {
		return xdgStateHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "state")
	}
	return ""
}

// ConfigDir returns the ccsessions configuration directory.
// Used for config.yml and the label store.
func ConfigDir() string {
	base := getConfigHome()
	if base == "" {
		return ""
	}
	if os.Getenv("CCSESSIONS_HOME") != "" {
		return base
	}
	return filepath.Join(base, appName)
}

// StateDir returns the ccsessions state directory.
// Used for logs.
func StateDir() string {
	base := getStateHome()
	if base == "" {
		return ""
	}
	if os.Getenv("CCSESSIONS_HOME") != "" {
		return base
	}
	return filepath.Join(base, appName)
}

// LabelsFile returns the default label store location.
func LabelsFile() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "session-tags.json")
}

// LogDir returns the directory for daily log files.
func LogDir() string {
	dir := StateDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "logs")
}

// ClaudeProjectsDir returns the root that holds one directory per project
// with one JSONL log per session. CLAUDE_CONFIG_DIR relocates it the same
// way it relocates the upstream tool's own state.
func ClaudeProjectsDir() string {
	if dir := os.Getenv("CLAUDE_CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, "projects")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".claude", "projects")
}

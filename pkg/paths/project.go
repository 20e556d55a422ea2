package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// EncodeProjectDir encodes a filesystem path the way the upstream tool names
// its per-project log directories: "/" and "." become "-" with a leading dash.
func EncodeProjectDir(path string) string {
	encoded := strings.ReplaceAll(path, "/", "-")
	encoded = strings.ReplaceAll(encoded, ".", "-")
	encoded = strings.TrimPrefix(encoded, "-")
	return "-" + encoded
}

// RepoName derives a short display name for a project. When the working
// directory is known its base name is used; otherwise the encoded directory
// name is shortened by stripping the encoded home directory prefix.
func RepoName(projectDir, cwd string) string {
	if cwd != "" {
		if home, err := os.UserHomeDir(); err == nil && filepath.Clean(cwd) == filepath.Clean(home) {
			return "~"
		}
		if base := filepath.Base(cwd); base != "" && base != "." && base != string(filepath.Separator) {
			return base
		}
	}

	name := filepath.Base(projectDir)
	if home, err := os.UserHomeDir(); err == nil {
		prefix := EncodeProjectDir(home)
		if name == prefix {
			return "~"
		}
		if strings.HasPrefix(name, prefix+"-") {
			name = strings.TrimPrefix(name, prefix+"-")
		}
	}
	name = strings.TrimPrefix(name, "-")
	if name == "" {
		return "unknown"
	}
	return name
}

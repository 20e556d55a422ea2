package sessions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/moby/patternmatcher"
)

const (
	logExt         = ".jsonl"
	agentLogPrefix = "agent-"
)

// candidate is a log file selected for parsing.
type candidate struct {
	path string
	info os.FileInfo
}

// discover lists session logs under root. Project directories matching
// exclude are skipped; in the recent window, files whose mtime is before
// cutoff are skipped without being opened. Read failures become notes.
func discover(root string, cutoff time.Time, exclude *patternmatcher.PatternMatcher) ([]candidate, []string) {
	var notes []string

	projects, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, []string{fmt.Sprintf("no session logs at %s", root)}
		}
		return nil, []string{fmt.Sprintf("cannot read %s: %v", root, err)}
	}

	var found []candidate
	for _, project := range projects {
		if !project.IsDir() {
			continue
		}
		if exclude != nil {
			if skip, _ := exclude.MatchesOrParentMatches(project.Name()); skip {
				continue
			}
		}

		dir := filepath.Join(root, project.Name())
		entries, err := os.ReadDir(dir)
		if err != nil {
			notes = append(notes, fmt.Sprintf("skipped %s: %v", project.Name(), err))
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasSuffix(name, logExt) || strings.HasPrefix(name, agentLogPrefix) {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				notes = append(notes, fmt.Sprintf("skipped %s: %v", name, err))
				continue
			}
			if !info.Mode().IsRegular() {
				continue
			}
			if !cutoff.IsZero() && info.ModTime().Before(cutoff) {
				continue
			}
			found = append(found, candidate{path: filepath.Join(dir, name), info: info})
		}
	}

	return found, notes
}

package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Window values accepted in config.
const (
	WindowRecent = "48h"
	WindowAll    = "all"
)

// Sort values accepted in config.
const (
	SortRecency  = "recency"
	SortMessages = "messages"
)

const defaultWorkers = 8

// Config is the user configuration for ccsessions. Every field is optional.
type Config struct {
	// ProjectsDir is the root holding one directory per project with one
	// JSONL log per session. Defaults to ~/.claude/projects.
	ProjectsDir string `yaml:"projects_dir"`

	// LabelsFile is the label store location. Defaults to
	// <config dir>/session-tags.json.
	LabelsFile string `yaml:"labels_file"`

	// Window is the initial ingestion window: "48h" (default) or "all".
	Window string `yaml:"window"`

	// Sort is the initial sort order: "recency" (default) or "messages".
	Sort string `yaml:"sort"`

	// Workers bounds the number of log files parsed concurrently.
	Workers int `yaml:"workers"`

	// Exclude lists project directory patterns to skip during discovery.
	Exclude []string `yaml:"exclude"`

	// Theme selects the TUI palette (kanagawa, gruvbox, terminal).
	Theme string `yaml:"theme"`

	// Extensions holds every other top-level key, decoded on demand with
	// UnmarshalExtension (e.g. "logging").
	Extensions map[string]interface{} `yaml:",remain"`
}

// SetDefaults fills in unset fields.
func (c *Config) SetDefaults() {
	if c.Window == "" {
		c.Window = WindowRecent
	}
	if c.Sort == "" {
		c.Sort = SortRecency
	}
	if c.Workers == 0 {
		c.Workers = defaultWorkers
	}
}

// UnmarshalExtension decodes an extension section into target.
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// It's not an error if the key doesn't exist.
		// The target struct will simply remain zero-valued.
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}

// Effective returns the configuration as a flat map keyed like the config
// file, extensions included.
func (c *Config) Effective() map[string]interface{} {
	out := make(map[string]interface{}, len(c.Extensions)+7)
	for k, v := range c.Extensions {
		out[k] = v
	}
	out["projects_dir"] = c.ProjectsDir
	out["labels_file"] = c.LabelsFile
	out["window"] = c.Window
	out["sort"] = c.Sort
	out["workers"] = c.Workers
	out["exclude"] = c.Exclude
	out["theme"] = c.Theme
	return out
}

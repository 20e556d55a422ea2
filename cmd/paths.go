package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/grovetools/ccsessions/cli"
	"github.com/grovetools/ccsessions/config"
	"github.com/grovetools/ccsessions/pkg/paths"
	"github.com/spf13/cobra"
)

// PathsOutput lists the locations ccsessions reads and writes.
type PathsOutput struct {
	ConfigDir   string `json:"config_dir"`
	ConfigFile  string `json:"config_file"`
	StateDir    string `json:"state_dir"`
	LogDir      string `json:"log_dir"`
	LabelsFile  string `json:"labels_file"`
	ProjectsDir string `json:"projects_dir"`
}

func newPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the paths used by ccsessions as JSON",
		Long: `Print the paths used by ccsessions as JSON.

- config_dir: config.yml / config.toml and the default label store
- config_file: the config file in effect, empty when none exists
- state_dir: runtime state
- log_dir: daily log files
- labels_file: the label store
- projects_dir: the session logs that are browsed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			cfg, err := cli.LoadConfig(opts)
			if err != nil {
				return err
			}

			configFile := opts.ConfigFile
			if configFile == "" {
				configFile = config.FindConfigFile(paths.ConfigDir())
			}

			output := PathsOutput{
				ConfigDir:   paths.ConfigDir(),
				ConfigFile:  configFile,
				StateDir:    paths.StateDir(),
				LogDir:      paths.LogDir(),
				LabelsFile:  resolveLabelsFile(cfg),
				ProjectsDir: resolveProjectsDir(cmd, cfg),
			}

			data, err := json.MarshalIndent(output, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal paths to JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

package cmd

import (
	"fmt"

	"github.com/grovetools/ccsessions/cli"
	"github.com/grovetools/ccsessions/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Display the effective configuration",
		Long: `Shows the configuration after defaults, environment variable expansion and
validation have been applied. Unknown top-level sections such as "logging" and
"keys" are printed as they were read.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cli.GetOptions(cmd))
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg.Effective())
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "failed to encode configuration")
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

package cli

import (
	"github.com/grovetools/ccsessions/config"
	"github.com/grovetools/ccsessions/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommandOptions holds the flags shared by every command.
type CommandOptions struct {
	ConfigFile string
	Verbose    bool
}

// NewStandardCommand creates a command carrying the standard flags.
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to a config file (default: config dir)")

	SetStyledHelp(cmd)

	return cmd
}

// GetLogger returns the logger for a command, honoring --verbose.
func GetLogger(cmd *cobra.Command) *logrus.Entry {
	if opts := GetOptions(cmd); opts.Verbose {
		logging.SetLevel(logrus.DebugLevel)
	}
	return logging.NewLogger("cli").WithField("command", cmd.Name())
}

// GetOptions extracts common options from a command
func GetOptions(cmd *cobra.Command) CommandOptions {
	configFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	return CommandOptions{
		ConfigFile: configFile,
		Verbose:    verbose,
	}
}

// LoadConfig loads the file named by --config, or the default config file
// when the flag is empty, and applies its logging section.
func LoadConfig(opts CommandOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.ConfigFile != "" {
		cfg, err = config.Load(opts.ConfigFile)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}
	logging.Configure(cfg)
	return cfg, nil
}

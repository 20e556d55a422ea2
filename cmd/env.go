package cmd

import (
	"fmt"
	"os/exec"
	"time"

	"github.com/grovetools/ccsessions/cli"
	"github.com/grovetools/ccsessions/config"
	"github.com/grovetools/ccsessions/errors"
	"github.com/grovetools/ccsessions/pkg/demo"
	"github.com/grovetools/ccsessions/pkg/index"
	"github.com/grovetools/ccsessions/pkg/labels"
	"github.com/grovetools/ccsessions/pkg/paths"
	"github.com/grovetools/ccsessions/pkg/resume"
	"github.com/grovetools/ccsessions/pkg/sessions"
	"github.com/grovetools/ccsessions/tui/browser"
	"github.com/grovetools/ccsessions/tui/keymap"
	"github.com/grovetools/ccsessions/tui/theme"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// environment is everything a command needs, resolved from flags and config.
type environment struct {
	cfg         *config.Config
	window      sessions.Window
	sort        index.SortKey
	keys        keymap.Overrides
	demo        string
	projectsDir string
	labelsFile  string

	loader   browser.Loader
	labels   browser.LabelStore
	renamer  browser.Renamer
	launcher resume.Launcher

	log *logrus.Entry
}

// lookPath resolves the resume program; replaced in tests.
var lookPath = exec.LookPath

func newEnvironment(cmd *cobra.Command, now func() time.Time) (*environment, error) {
	opts := cli.GetOptions(cmd)
	log := cli.GetLogger(cmd)

	cfg, err := cli.LoadConfig(opts)
	if err != nil {
		return nil, err
	}
	if cfg.Theme != "" {
		theme.SetDefault(cfg.Theme)
	}

	env := &environment{cfg: cfg, log: log}

	if env.window, err = sessions.ParseWindow(cfg.Window); err != nil {
		return nil, errors.ConfigInvalid(err.Error())
	}
	if all, _ := cmd.Flags().GetBool("all"); all {
		env.window = sessions.WindowAll
	}
	sortKey, ok := index.ParseSortKey(cfg.Sort)
	if !ok {
		return nil, errors.ConfigInvalid(fmt.Sprintf("unknown sort %q", cfg.Sort))
	}
	env.sort = sortKey

	if env.keys, err = keymap.LoadOverrides(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid keys section")
	}

	if env.demo, err = demoVariant(cmd); err != nil {
		return nil, err
	}
	if env.demo != "" {
		src, err := demo.NewSource(env.demo, now)
		if err != nil {
			return nil, err
		}
		env.loader = src
		env.renamer = src
		env.labels = src.LabelStore()
		env.launcher = &resume.Recorder{}
		log.WithField("variant", env.demo).Debug("Using demo data")
		return env, nil
	}

	env.projectsDir = resolveProjectsDir(cmd, cfg)
	env.labelsFile = resolveLabelsFile(cfg)
	env.loader = &sessions.DirLoader{
		Root: env.projectsDir,
		Options: []sessions.LoadOption{
			sessions.WithNow(now),
			sessions.WithWorkers(cfg.Workers),
			sessions.WithExclude(cfg.Exclude),
			sessions.WithLogger(log),
		},
	}
	env.labels = labels.NewStore(env.labelsFile)
	env.renamer = sessions.Renamer{}
	env.launcher = resume.Detect(lookPath)

	log.WithFields(logrus.Fields{
		"projects_dir": env.projectsDir,
		"labels_file":  env.labelsFile,
		"window":       env.window.String(),
	}).Debug("Environment ready")
	return env, nil
}

// demoVariant returns the fixture selected by --demo or --demo-<variant>,
// or "" when none is set.
func demoVariant(cmd *cobra.Command) (string, error) {
	var chosen []string
	if on, _ := cmd.Flags().GetBool("demo"); on {
		chosen = append(chosen, demo.VariantDefault)
	}
	for _, v := range demo.Variants() {
		if v == demo.VariantDefault {
			continue
		}
		if on, _ := cmd.Flags().GetBool("demo-" + v); on {
			chosen = append(chosen, v)
		}
	}
	switch len(chosen) {
	case 0:
		return "", nil
	case 1:
		return chosen[0], nil
	default:
		return "", errors.InvalidInput(fmt.Sprintf("only one demo variant may be selected, got %v", chosen))
	}
}

func resolveProjectsDir(cmd *cobra.Command, cfg *config.Config) string {
	if dir, _ := cmd.Flags().GetString("projects-dir"); dir != "" {
		return dir
	}
	if cfg.ProjectsDir != "" {
		return cfg.ProjectsDir
	}
	return paths.ClaudeProjectsDir()
}

func resolveLabelsFile(cfg *config.Config) string {
	if cfg.LabelsFile != "" {
		return cfg.LabelsFile
	}
	return paths.LabelsFile()
}

package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/atharv3903/campusnav/internal/config"
)

// Build-time variables set via ldflags.
var (
	version = "0.1.0"
	commit  = ""
)

type app struct {
	cfg    *config.ServerConfig
	log    *logrus.Logger
	format string
}

func versionString() string {
	if commit != "" {
		return fmt.Sprintf("campusnav %s (commit %s)", version, commit)
	}
	return fmt.Sprintf("campusnav %s-dev", version)
}

func newRootCmd(cfg *config.ServerConfig) *cobra.Command {
	a := &app{cfg: cfg}

	root := &cobra.Command{
		Use:          "campusnav",
		Short:        "Campus navigation: routes and traversals over the campus map",
		Version:      versionString(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := config.NewLogger(a.cfg.LogLevel, a.cfg.LogFormat)
			if err != nil {
				return err
			}
			log.SetOutput(cmd.ErrOrStderr())
			a.log = log
			return nil
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	root.PersistentFlags().StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "Log level (env: LOG_LEVEL)")
	root.PersistentFlags().StringVar(&a.cfg.LogFormat, "log-format", a.cfg.LogFormat, "Log format: text|json (env: LOG_FORMAT)")
	root.PersistentFlags().StringVar(&a.format, "format", formatJSON, "Output format: json|table")

	root.AddCommand(a.newServeCmd())
	root.AddCommand(a.newPathCmd())
	root.AddCommand(a.newWeightedCmd())
	root.AddCommand(a.newTraverseCmd())
	root.AddCommand(a.newMSTCmd())
	root.AddCommand(a.newLocationsCmd())
	root.AddCommand(a.newSearchCmd())
	root.AddCommand(a.newValidateCmd())
	root.AddCommand(a.newSeedCmd())
	return root
}

func main() {
	cfg, err := config.FromEnvServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := newRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}

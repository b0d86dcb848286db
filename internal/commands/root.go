package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/taxdesk-dev/taxdesk/internal/buildinfo"
	"github.com/taxdesk-dev/taxdesk/internal/config"
	"github.com/taxdesk-dev/taxdesk/internal/logging"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log *logrus.Logger
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	log, err := logging.Setup(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	return nil
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "taxdesk",
		Short:   "Validate tax transaction files and compute profit tax",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "config file (defaults apply if it does not exist)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log.level from the config file")

	rootCmd.AddCommand(newImportCommand(a))
	rootCmd.AddCommand(newTaxCommand(a))
	rootCmd.AddCommand(newChecksumCommand())
	rootCmd.AddCommand(newGenerateCommand(a))
	rootCmd.AddCommand(newShellCommand(a))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

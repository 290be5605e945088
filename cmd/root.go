package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/chrisdamba/nutritrack/internal/frequency"
	"github.com/chrisdamba/nutritrack/internal/history"
	"github.com/chrisdamba/nutritrack/internal/logging"
	"github.com/chrisdamba/nutritrack/internal/menu"
	"github.com/chrisdamba/nutritrack/internal/models"
	"github.com/chrisdamba/nutritrack/internal/recommend"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var now = time.Now

// app holds what every subcommand needs once the config has been loaded.
type app struct {
	v       *viper.Viper
	cfgFile string

	cfg     *models.Config
	catalog *menu.Catalog
	store   *history.FileStore
	engine  *recommend.Engine
	logger  zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "nutritrack",
		Short: "Tracks food orders and recommends meals under a calorie budget",
		Long: `nutritrack records customer orders from a fixed menu in a flat history log and
recommends the next order within a calorie budget, based on what the customer usually eats.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./.nutritrack.yaml or $HOME/.nutritrack.yaml)")
	flags.String("history-file", "", "order history file (default "+models.DefaultHistoryFile+")")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error, disabled")
	flags.String("log-format", "", "log format: json or console")

	a.bindFlag(rootCmd, "history_file", "history-file")
	a.bindFlag(rootCmd, "log_level", "log-level")
	a.bindFlag(rootCmd, "log_format", "log-format")

	rootCmd.AddCommand(
		newMenuCmd(a),
		newOrderCmd(a),
		newHistoryCmd(a),
		newRecommendCmd(a),
		newSeedCmd(a),
		newExportCmd(a),
	)
	return rootCmd
}

// bindFlag ties a flag of cmd (persistent or local) to a config key.
func (a *app) bindFlag(cmd *cobra.Command, key, flag string) {
	f := cmd.PersistentFlags().Lookup(flag)
	if f == nil {
		f = cmd.Flags().Lookup(flag)
	}
	cobra.CheckErr(a.v.BindPFlag(key, f))
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := models.LoadConfig(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
	a.logger = logging.Component("cli")
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug().Str("file", used).Msg("using config file")
	}

	if len(cfg.MenuItems) > 0 {
		a.catalog, err = menu.NewCatalog(cfg.MenuItems)
		if err != nil {
			return fmt.Errorf("invalid menu_items: %w", err)
		}
	} else {
		a.catalog = menu.DefaultCatalog()
	}

	a.store = history.NewFileStore(cfg.HistoryFile, logging.Component("history"))
	if err := a.store.EnsureExists(); err != nil {
		return err
	}
	a.engine = recommend.NewEngine(a.catalog, frequency.NewBuilder(a.store), logging.Component("recommend"))
	return nil
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

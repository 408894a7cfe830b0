package commands

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/timeband/pkg/commands/options"
	"tableflip.dev/timeband/pkg/config"
	"tableflip.dev/timeband/pkg/logging"
)

// tuiAnnotation marks commands that own the terminal; their logs never go
// to stderr.
const tuiAnnotation = "timeband/tui"

var (
	oo  = &options.OutputOptions{}
	v   *viper.Viper
	cfg *config.Config

	configFile string
	logLevel   string
	logFile    string
)

func New() *cobra.Command {
	v = config.New()

	cmd := &cobra.Command{
		Use:   "timeband",
		Short: options.Wrap80("Pick dates and date ranges on a zoomable day, month and year timeline."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			logging.Close()
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Config file (default searches ./.timeband.yaml and ~/.timeband.yaml).")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn or error.")
	cmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"Write logs to this file.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addPick(topLevel)
	addItems(topLevel)
	addPeriod(topLevel)
	addSelect(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// setup binds the running command's flags, loads the config and starts
// logging.
func setup(cmd *cobra.Command) error {
	for flag, key := range options.FlagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	if f := cmd.Flags().Lookup("log-level"); f != nil {
		_ = v.BindPFlag("log.level", f)
	}
	if f := cmd.Flags().Lookup("log-file"); f != nil {
		_ = v.BindPFlag("log.file", f)
	}

	var err error
	if cfg, err = config.Load(v, configFile); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	lc := logging.Config{Level: cfg.Log.Level, File: cfg.Log.File}
	if cmd.Annotations[tuiAnnotation] != "" && lc.File == "" {
		lc.Output = io.Discard
	}
	if err := logging.Init(lc); err != nil {
		return err
	}
	if cfg.File != "" {
		logging.Debug("loaded config", "file", cfg.File)
	}
	return nil
}

package main

import (
	"github.com/pradhp1999/dhruva-sub011/config"
	"github.com/pradhp1999/dhruva-sub011/token"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// app holds state shared by subcommands after config is loaded.
type app struct {
	configFile string
	debug      bool

	cfg      *config.Config
	log      zerolog.Logger
	closeLog func() error
	registry *token.Registry
	metrics  *prometheus.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "tokendump",
		Short: "Decode binary token encoded SIP messages",
		Long: `tokendump decodes SIP messages compressed into binary token form
and prints them as SIP text or as decoder events.

Static dictionaries other than built-in one can be listed in config file.`,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	rootCmd.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newDecodeCmd(a))
	rootCmd.AddCommand(newSignatureCmd())
	rootCmd.AddCommand(newDictsCmd(a))
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	if a.debug {
		cfg.Log.Level = zerolog.LevelDebugValue
	}
	a.cfg = cfg

	logger, closeLog, err := config.NewLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.log = logger
	a.closeLog = closeLog
	log.Logger = logger

	a.registry, err = token.NewRegistryFromFiles(cfg.Dictionaries...)
	if err != nil {
		return err
	}
	a.log.Debug().Int("dictionaries", len(a.registry.Dictionaries())).Msg("Registry loaded")
	return nil
}

func (a *app) teardown(cmd *cobra.Command, args []string) error {
	if a.closeLog == nil {
		return nil
	}
	return a.closeLog()
}

// decoder builds decoder over loaded registry. Metrics are registered on
// private registry when enabled.
func (a *app) decoder(withMetrics bool) *token.Decoder {
	opts := []token.DecoderOption{
		token.WithRegistry(a.registry),
		token.WithDecoderLogger(a.log.With().Str("caller", "token.Decoder").Logger()),
	}
	if withMetrics || a.cfg.Metrics {
		a.metrics = prometheus.NewRegistry()
		opts = append(opts, token.WithMetrics(token.NewMetrics(a.metrics)))
	}
	return token.NewDecoder(opts...)
}

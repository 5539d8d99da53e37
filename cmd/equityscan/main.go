package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/equityscan/equityscan/internal/config"
)

const (
	appName = "equityscan"
	version = "v1.0.0"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "NSE equity screener: technical indicators, fundamental filters, ranked scans",
		Version: version,
		Long: `equityscan screens a fixed NSE universe against fundamental and technical
criteria, scores the survivors and ranks them. Run a one-shot scan with
'screen' or serve the API with 'serve'.`,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to YAML config (optional)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level override (trace|debug|info|warn|error)")

	rootCmd.AddCommand(newScreenCmd())
	rootCmd.AddCommand(newServeCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// loadConfig reads the config flag and applies logging settings.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if override, _ := cmd.Flags().GetString("log-level"); override != "" {
		level = override
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zerolog.SetGlobalLevel(parsed)

	if cfg.Logging.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return cfg, nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crimson-sun/sawmill/internal/config"
	"github.com/crimson-sun/sawmill/internal/logging"
	"github.com/crimson-sun/sawmill/internal/store"
)

var (
	cfgFile string
	dbPath  string
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "sawmill",
	Short: "Build-log pattern classification and embedding",
	Long: `Sawmill classifies build and system logs against a curated library of
regular-expression patterns and reduces each log into a per-utility
error-count vector for downstream comparison, clustering, or anomaly
detection. Unmatched lines can be turned into candidate patterns by an
external suggestion oracle, subject to human review.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./.sawmill.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (overrides config)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(".sawmill")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SAWMILL")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()

	if dbPath != "" {
		viper.Set("db_path", dbPath)
	}
}

// setup loads config, initializes logging, and opens the store. Every
// subcommand goes through here. outputIsStdout moves slog to JSON so the
// NDJSON stream on stdout stays parseable.
func setup(outputIsStdout bool) (config.Config, *store.Store, error) {
	cfg := config.Load()
	logging.Init(outputIsStdout, logging.ParseLevel(cfg.LogLevel))

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, st, nil
}

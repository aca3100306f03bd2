package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dd0wney/cluso-gridres/pkg/config"
	"github.com/dd0wney/cluso-gridres/pkg/logging"
)

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "gridres",
	Short: "Structural resilience analytics for transmission networks",
	Long: `gridres computes structural-resilience metrics over a static
transmission network snapshot: hub and dead-end analysis, betweenness
centrality, attack-robustness percolation, min-cut bottlenecks and
community structure.`,
	// Run: nil (forces help output).
	Run: nil,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to YAML config (default ./gridres.yaml when present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug|info|warn|error)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(bottleneckCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("gridres")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("GRIDRES")
	viper.AutomaticEnv()
	viper.ReadInConfig()
}

// loadConfig resolves the effective configuration: file (when found) over
// defaults, then flag and environment overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if path := viper.ConfigFileUsed(); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if env := viper.GetString("log_level"); env != "" {
		cfg.LogLevel = env
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the CLI logger on stderr so report tables stay clean on
// stdout.
func newLogger(cfg *config.Config) logging.Logger {
	return logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))
}

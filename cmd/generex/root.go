package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/coregx/generex"
	"github.com/coregx/generex/internal/logging"
	"github.com/spf13/cobra"
)

// Flags shared by every subcommand.
var (
	configPath string
	logLevel   string
	seed       int64
	exclude    []string
)

var rootCmd = &cobra.Command{
	Use:   "generex",
	Short: "Generate strings matched by a regular expression",
	Long: `generex counts, ranks, samples and enumerates the strings a regular
expression matches. Patterns use Go regexp syntax and always match whole strings.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logging.New(slog.LevelError).Error("command failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML file with generation settings")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Random seed (0 = time based)")
	rootCmd.PersistentFlags().StringSliceVar(&exclude, "exclude", nil, "Words generated strings must not contain")
}

// loadConfig merges the config file and the persistent flags over the
// library defaults. Flags win over the file.
func loadConfig(cmd *cobra.Command) (generex.Config, error) {
	config := generex.DefaultConfig()
	level := logLevel

	if configPath != "" {
		fc, err := readConfigFile(configPath)
		if err != nil {
			return config, err
		}
		fc.apply(&config)
		if fc.LogLevel != "" && !cmd.Flags().Changed("log-level") {
			level = fc.LogLevel
		}
	}

	if cmd.Flags().Changed("seed") {
		config.Seed = seed
	}
	if cmd.Flags().Changed("exclude") {
		config.Exclude = exclude
	}

	lvl, ok := logging.ParseLevel(level)
	if !ok {
		return config, fmt.Errorf("unknown log level %q", level)
	}
	config.Logger = logging.NewWithWriter(cmd.ErrOrStderr(), lvl)
	config.Logger.Debug("configuration loaded",
		slog.String("file", configPath),
		slog.Int64("seed", config.Seed),
		slog.Int("exclude", len(config.Exclude)))

	return config, config.Validate()
}

func compile(cmd *cobra.Command, pattern string) (*generex.Generex, error) {
	config, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return generex.CompileWithConfig(pattern, config)
}

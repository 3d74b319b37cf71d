package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/KumKeeHyun/cityagg/config"
)

// newRootCmd represents the base command when called without any subcommands.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cityagg",
		Short: "cityagg grows a list of cities on a timer.",
		Long: `cityagg combines a list of cities with fixed and rotating cities ` +
			`every interval for a bounded number of ticks, and logs every ` +
			`emission.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("config", "", "path to a YAML config file")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newContainsCmd())
	rootCmd.AddCommand(newHistoryCmd())
	return rootCmd
}

// loadConfig returns the defaults when no --config flag is given.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadConfig(path)
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

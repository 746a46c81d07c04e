package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/dirtar/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "dirtar",
	Short:   "Serve a directory as a tar archive over HTTP",
	Long: `dirtar is a small HTTP service that answers GET /download with a tar
archive of every regular file directly inside a configured directory.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFiles, _ := cmd.Flags().GetStringSlice("config")

		cfg, err := config.Load(configFiles, cmd.Flags())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger := setupLogging(cfg.Log, cmd.ErrOrStderr())

		ctx := config.WithContext(cmd.Context(), cfg)
		ctx = withLogger(ctx, logger)
		cmd.SetContext(ctx)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSlice("config", nil, "config file path(s), merged left to right (default: ./dirtar.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (env: DIRTAR_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text, json (env: DIRTAR_LOG_FORMAT)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

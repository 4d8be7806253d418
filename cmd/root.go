package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/killallgit/subarr/pkg/config"
	apperrors "github.com/killallgit/subarr/pkg/errors"
	"github.com/killallgit/subarr/pkg/logger"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "subarr",
	Short: "Media subscription manager",
	Long: `Subarr - subscribe to TV shows, movies and anime and keep their episodes in sync

Subscriptions resolve their metadata from TMDB (tv, movie) or Bangumi (anime),
import the episode list, allocate a media folder and, on removal, release the
torrents they own from qBittorrent.

Features:
  • HTTP API with Swagger documentation
  • Episode import with air date normalization
  • Quality profiles imported from YAML
  • Cleanup of torrents and media folders on unsubscribe`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd returns the root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./config/settings.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// loadConfig loads and validates configuration, then configures logging from
// it. Only commands that touch the database or providers call it.
func loadConfig(cmd *cobra.Command) (*config.Config, *logrus.Logger, error) {
	var err error
	if cfgFile != "" {
		err = config.Load(viper.GetViper(), cfgFile)
	} else {
		err = config.Init()
	}
	if err != nil {
		if apperrors.Is(err, apperrors.ErrCodeConfig) {
			return nil, nil, fmt.Errorf("%w (fix it in the config file or with %s_* environment variables)", err, config.EnvPrefix)
		}
		return nil, nil, fmt.Errorf("initializing config: %w", err)
	}

	cfg, err := config.GetConfig()
	if err != nil {
		return nil, nil, err
	}

	log, err := setupLogger(cmd, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// setupLogger applies the logging config; explicit flags win over it
func setupLogger(cmd *cobra.Command, cfg *config.Config) (*logrus.Logger, error) {
	opts := logger.Options{
		Level:  cfg.Logging.Level,
		JSON:   cfg.Logging.Format == "json",
		Output: cmd.ErrOrStderr(),
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		opts.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("json-logs") {
		opts.JSON, _ = flags.GetBool("json-logs")
	}
	return logger.Setup(opts)
}

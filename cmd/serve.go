package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/killallgit/subarr/api"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Subarr API server with the configured settings.

The database schema is migrated on startup. TMDB is only enabled when an API
key is configured; the download client only when qbittorrent.url is set.

Example:
  subarr serve
  subarr serve --port 9090
  subarr serve --host 127.0.0.1 --port 8989`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server flags
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", -1, "server port (overrides config, 0 picks a free port)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort >= 0 {
		cfg.Server.Port = serverPort
	}

	a, err := newApp(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.WithError(err).Warn("Failed to close resources")
		}
	}()

	srv := api.NewServer(api.OptionsFromConfig(cfg), a.dependencies(log))
	srv.Initialize()

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	log.WithField("address", api.OptionsFromConfig(cfg).Address).Info("Server is ready to handle requests")

	select {
	case <-ctx.Done():
		log.Info("Shutting down server...")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
		return err
	}

	log.Info("Server gracefully stopped")
	return nil
}

// commandContext returns the context of the current Execute call. Cobra only
// hands it to a subcommand whose own context is still unset, so the root's
// context is taken first.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Root().Context(); ctx != nil {
		return ctx
	}
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

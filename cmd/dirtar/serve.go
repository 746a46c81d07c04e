package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/sagarc03/dirtar"
	"github.com/sagarc03/dirtar/config"
	dirtarhttp "github.com/sagarc03/dirtar/http"
	"github.com/sagarc03/dirtar/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the dirtar HTTP server.

The server prints its bound address once it is ready to accept connections.
SIGINT or SIGTERM stops it from accepting new connections; requests already
in flight are allowed to finish.

Examples:
  # Serve ./logs on an ephemeral loopback port
  dirtar serve --dir ./logs

  # Serve on a fixed port with a download name
  dirtar serve --dir /var/log/app --address 0.0.0.0:8080 --prefix app-logs`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("address", "127.0.0.1:0", "listen address (host:port, port 0 picks a free port)")
	serveCmd.Flags().String("dir", ".", "directory to archive")
	serveCmd.Flags().String("prefix", "", "download name, sent as <prefix>.tar")
	serveCmd.Flags().Bool("stream", false, "stream the archive instead of buffering it")
	serveCmd.Flags().Int("shutdown-timeout", 0, "seconds to wait for in-flight requests on shutdown (0 waits indefinitely)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Restore default signal handling once shutdown has begun, so a second
	// signal terminates the process.
	go func() {
		<-ctx.Done()
		stop()
	}()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}
	logger := loggerFromContext(ctx)

	if info, statErr := os.Stat(cfg.Archive.Root); statErr != nil {
		logger.Warn("archive root is not accessible, downloads will fail", "root", cfg.Archive.Root, "err", statErr)
	} else if !info.IsDir() {
		logger.Warn("archive root is not a directory, downloads will fail", "root", cfg.Archive.Root)
	}

	archiver := dirtar.NewArchiver(
		afero.NewReadOnlyFs(afero.NewOsFs()),
		logger.With("component", "archiver"),
	)

	handlerConfig := dirtarhttp.HandlerConfig{
		Root:   cfg.Archive.Root,
		Prefix: cfg.Archive.Prefix,
		Stream: cfg.Archive.Stream,
		CORS:   cfg.CORS,
	}
	handler := dirtarhttp.NewHandler(&handlerConfig, archiver, logger.With("component", "http"))

	srv, err := server.Listen(cfg.Server.Address, handler.Router(), server.Options{
		ShutdownTimeout: cfg.Server.ShutdownTimeoutDuration(),
		Logger:          logger.With("component", "server"),
	})
	if err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	logger.Info("starting server",
		"addr", srv.Addr().String(),
		"root", cfg.Archive.Root,
		"stream", cfg.Archive.Stream,
	)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Server is ready at %s\n", srv.Addr())

	if err := srv.Serve(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

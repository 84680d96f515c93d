package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kayz/veoprompt/internal/logger"
	"github.com/kayz/veoprompt/internal/nodes"
	"github.com/kayz/veoprompt/internal/output"
	"github.com/kayz/veoprompt/internal/promptbuild"
	"github.com/kayz/veoprompt/internal/webui"
	"github.com/spf13/cobra"
)

var (
	servePort       int
	serveOutputRoot string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the prompt nodes over HTTP",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (default: server.port from config)")
	serveCmd.Flags().StringVar(&serveOutputRoot, "output-root", "", "Output root directory (default: output.root_dir from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := currentConfig()
	port := cfg.Server.Port
	if cmd.Flags().Changed("port") {
		port = servePort
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %d", port)
	}

	builder := promptbuild.NewBuilder()
	writer := newOutputWriter(cfg, serveOutputRoot)
	logOutputPolicy(writer)
	composer := promptbuild.NewComposer(writer, newClipboard(cfg))
	server := webui.NewServer(nodes.Default(builder, composer), builder, composer)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Node server listening on http://127.0.0.1:%d", port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("node server: %w", err)
		}
		return nil
	case sig := <-sigCh:
		logger.Info("Received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// logOutputPolicy reports where saves go and warns when the root itself
// falls outside the allowed paths.
func logOutputPolicy(w *output.Writer) {
	checker := w.Checker()
	if !checker.HasRestrictions() {
		logger.Info("Saving prompts under %s (no path restrictions)", w.Root())
		return
	}
	logger.Info("Saving prompts under %s, confined to %s", w.Root(), strings.Join(checker.AllowedPaths(), ", "))
	if !checker.IsAllowed(w.Root()) {
		logger.Warn("Output root %s is outside the allowed paths, saves will fail", w.Root())
	}
}

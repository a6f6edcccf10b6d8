package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rulesync/internal/config"
	"rulesync/internal/log"
	"rulesync/internal/server"

	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the load and save operations over HTTP",
		Long: `Start an HTTP server exposing POST /loadGlobalRules and
POST /saveGlobalRules, each taking {"path": ...} and returning the
operation result as JSON.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := listen
			if addr == "" {
				// The listen address comes from config; everything else is
				// re-read per request, so only startup needs a valid file.
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				addr = cfg.Server.Listen
			}

			srv := server.NewServer(addr, newService())

			errCh := make(chan error, 1)
			go func() {
				if err := srv.Start(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return fmt.Errorf("server failed: %w", err)
			case sig := <-sigCh:
				log.Info("Received %s, shutting down", sig)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (overrides config, default 127.0.0.1:7437)")

	return cmd
}

// loadConfig loads configuration honoring the --config flag
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFile(cfgFile)
	}
	return config.Load()
}

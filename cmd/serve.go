package cmd

import (
	"fmt"
	"net"
	"os/signal"
	"syscall"

	"github.com/naka-gawa/w3c-ie-stats/internal/httpserver"
	"github.com/naka-gawa/w3c-ie-stats/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serves the joined data as a read-only JSON API",
		Long: `Loads the three sources once and serves the snapshot over HTTP until
interrupted. Filters are recomputed per request from the loaded snapshot.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			// The server logs at LOG_LEVEL unless --verbose asks for debug.
			if verbose, _ := cmd.InheritedFlags().GetBool("verbose"); !verbose {
				log, err := logger.New(e.cfg.LogLevel)
				if err != nil {
					return fmt.Errorf("failed to create logger: %w", err)
				}
				e.logger = log
			}

			snap, err := e.load(cmd.Context())
			if err != nil {
				return err
			}

			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = e.cfg.HTTPAddr
			}
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", addr, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := httpserver.New(addr, e.logger, snap)
			if err := srv.Run(ctx, ln, e.cfg.ShutdownTimeout); err != nil {
				e.logger.Error("http server failed", zap.Error(err))
				return err
			}
			return nil
		},
	}

	cmd.Flags().String("addr", "", "Listen address (overrides IESTATS_HTTP_ADDR)")
	return cmd
}

package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gravitdam/gravitdam/internal/persist"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the persistence gateway over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, true)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		gw := persist.NewLocalGateway(e.store, nil)
		srv := persist.NewServer(e.cfg.Server, gw, e.logger)

		e.logger.Info("persistence gateway listening",
			zap.String("addr", e.cfg.Server.Addr),
			zap.String("endpoint", persist.DefaultEndpointPath),
		)
		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default 127.0.0.1:8080)")
}

package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/quantpath/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tracker as a local web page",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		d, err := openDeps(cmd, nil)
		if err != nil {
			return err
		}
		defer d.Close()

		srv, err := web.New(d.tracker, d.gateway, d.logger)
		if err != nil {
			return fmt.Errorf("build web server: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Listen(addr)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		case <-ctx.Done():
			d.logger.Info("shutting down web server")
			if err := srv.Shutdown(); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		}
	},
}

func init() {
	serveCmd.Flags().String("addr", web.DefaultAddr, "Listen address")
}

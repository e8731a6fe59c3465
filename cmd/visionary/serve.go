package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/japaniel/visionary/pkg/server"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var addr string

	command := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			n, err := a.svc.ResetSymbols(ctx, nil)
			if err != nil {
				return fmt.Errorf("failed to load symbol table: %w", err)
			}
			a.logger.Info("symbol table loaded", zap.Int("symbols", n))

			if a.cfg.Server.ReleaseMode {
				gin.SetMode(gin.ReleaseMode)
			}
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			router := server.NewRouter(a.svc, a.logger.Named("http"))
			return server.New(addr, router, a.logger).Run(ctx)
		},
	}
	command.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return command
}

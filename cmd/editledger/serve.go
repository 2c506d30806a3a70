package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/alansmodic/edit-ledger/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var listenAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the revision ledger over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if listenAddr != "" {
				a.cfg.ServerConfig.ListenAddr = listenAddr
			}

			ledger, store, err := a.openLedger()
			if err != nil {
				return err
			}
			defer store.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.NewServer(a.cfg.ServerConfig, ledger, a.logger).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address, overrides server_config.listen_addr")
	return cmd
}

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/piwi3910/slabcut/internal/api"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the cutlist API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := a.library()
			if err != nil {
				return err
			}
			presets, err := a.presets()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.config.ListenAddr
			}

			settings := a.settings()
			srv := api.NewServer(api.Options{
				Settings: &settings,
				Library:  lib,
				Presets:  presets,
				Logger:   a.logger,
				Metrics:  a.metrics,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config or SLABCUT_ADDR)")
	return cmd
}

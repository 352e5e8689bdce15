package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msaldanha/taskflow/server"
)

func newServeCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "serve the TaskFlow API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, er := o.logger(false)
			if er != nil {
				return er
			}
			srv, er := server.NewServer(server.Options{Config: o.cfg, Logger: logger})
			if er != nil {
				return er
			}
			defer srv.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}
}

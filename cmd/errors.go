package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func newErrorsCommand(o *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "errors",
		Short: "inspect error reports",
	}

	c.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "print the error reports kept after failed deliveries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, er := o.openServer()
			if er != nil {
				return er
			}
			defer srv.Close()

			logs, er := srv.Reporter().FallbackLogs()
			if er != nil {
				return er
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, l := range logs {
				if er = enc.Encode(l); er != nil {
					return er
				}
			}
			return nil
		},
	})

	return c
}

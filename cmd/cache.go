package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var ErrCacheMiss = errors.New("not cached")

func newCacheCommand(o *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "cache",
		Short: "inspect and maintain the cache",
	}

	c.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "print the cached value for key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, er := o.openServer()
			if er != nil {
				return er
			}
			defer srv.Close()

			v, ok := srv.Cache().Get(args[0]).Get()
			if !ok {
				return fmt.Errorf("%s: %w", args[0], ErrCacheMiss)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(v))
			return nil
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "list the cached keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, er := o.openServer()
			if er != nil {
				return er
			}
			defer srv.Close()

			keys, er := srv.Cache().Keys()
			if er != nil {
				return er
			}
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "remove every cache entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, er := o.openServer()
			if er != nil {
				return er
			}
			defer srv.Close()
			return srv.Cache().Clear()
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "sweep",
		Short: "remove expired cache entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, er := o.openServer()
			if er != nil {
				return er
			}
			defer srv.Close()

			n, er := srv.Cache().ClearExpired()
			if er != nil {
				return er
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired entries\n", n)
			return nil
		},
	})

	return c
}

package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/msaldanha/taskflow/config"
	"github.com/msaldanha/taskflow/server"
)

type rootOptions struct {
	configFile string
	verbose    bool
	cfg        config.Config
}

// logger builds the process logger. Commands other than serve stay quiet unless
// --verbose is set.
func (o *rootOptions) logger(quiet bool) (*zap.Logger, error) {
	if quiet && !o.verbose {
		return zap.NewNop(), nil
	}
	return server.NewLogger(o.cfg)
}

func (o *rootOptions) openServer() (*server.Server, error) {
	logger, er := o.logger(true)
	if er != nil {
		return nil, er
	}
	return server.NewServer(server.Options{Config: o.cfg, Logger: logger})
}

// NewRootCommand builds the taskflow command tree.
func NewRootCommand() *cobra.Command {
	o := &rootOptions{}

	root := &cobra.Command{
		Use:          "taskflow",
		Short:        "TaskFlow backend",
		Long:         `TaskFlow serves the task dashboard API and manages its cache, form validation and error reports.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, er := config.Load(o.configFile)
			if er != nil {
				return er
			}
			o.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&o.configFile, "config", "c", os.Getenv("TASKFLOW_CONFIG"), "YAML config file")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(
		newServeCommand(o),
		newCacheCommand(o),
		newValidateCommand(),
		newSanitizeCommand(),
		newErrorsCommand(o),
	)
	return root
}

func Execute() error {
	return NewRootCommand().Execute()
}

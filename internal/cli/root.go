// Package cli implements the ebank command line: session management from the
// terminal and the console HTTP server.
package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/99minutos/ebanking-console/internal/infrastructure/config"
	"github.com/99minutos/ebanking-console/pkg/logger"
)

type options struct {
	logLevel string
	pretty   bool

	loadConfig func() (*config.Config, error)

	cfg *config.Config
	log zerolog.Logger
}

// NewRootCmd creates the root cobra command for the ebank CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(loadConfig)
}

func newRootCmd(load func() (*config.Config, error)) *cobra.Command {
	o := &options{loadConfig: load}

	root := &cobra.Command{
		Use:   "ebank",
		Short: "E-banking console",
		Long:  "ebank signs users in to the banking backend and serves the role-based console.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.init(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&o.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error); defaults to EBANK_LOG_LEVEL")
	root.PersistentFlags().BoolVar(&o.pretty, "pretty", false, "Human-friendly console logs")

	root.AddCommand(
		newLoginCmd(o),
		newLogoutCmd(o),
		newWhoamiCmd(o),
		newNotificationsCmd(o),
		newServeCmd(o),
	)
	return root
}

func (o *options) init(cmd *cobra.Command) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	level := cfg.LogLevel
	if o.logLevel != "" {
		level = o.logLevel
	}
	o.cfg = cfg
	o.log = logger.Init(logger.Options{
		Level:  level,
		Pretty: o.pretty,
		Output: cmd.ErrOrStderr(),
	})
	return nil
}

// open connects the runtime for one command. Callers close it.
func (o *options) open(ctx context.Context) (*Runtime, error) {
	return Open(ctx, o.cfg, o.log)
}

// loadConfig turns the start-up panic of config.Load into an error.
func loadConfig() (cfg *config.Config, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return config.Load(), nil
}

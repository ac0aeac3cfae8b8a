package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/99minutos/ebanking-console/internal/api"
	"github.com/99minutos/ebanking-console/internal/api/metrics"
	"github.com/99minutos/ebanking-console/internal/core/controller"
	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/infrastructure/queue"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(o *options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the console HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := o.open(ctx)
			if err != nil {
				return err
			}
			defer rt.Close(context.Background())

			loop := queue.NewLoop(rt.Log)
			loop.Start(ctx)

			env := controller.Env{
				Loop:   loop,
				Log:    rt.Log,
				Timing: Timing(rt.Config.UI),
				OnPoll: metrics.ObservePoll,
			}
			screens := api.NewScreens(ctx, rt.Sessions, func(s domain.Session) *controller.Set {
				return controller.NewSet(rt.Gateways, rt.Sessions, s, env)
			}, rt.Log)
			defer screens.Close()

			e := api.NewRouter(api.Deps{
				Sessions: rt.Sessions,
				Screens:  screens,
				Health:   rt.Health,
				Log:      rt.Log,
			})

			if addr == "" {
				addr = ":" + rt.Config.Port
			}
			errCh := make(chan error, 1)
			go func() { errCh <- e.Start(addr) }()
			rt.Log.Info().
				Str("addr", addr).
				Str("env", rt.Config.Env).
				Str("backend", rt.Config.API.BaseURL).
				Str("store", rt.Config.Store.Driver).
				Msg("console listening")

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("serve: %w", err)
			case <-ctx.Done():
			}

			rt.Log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default :EBANK_PORT)")
	return cmd
}

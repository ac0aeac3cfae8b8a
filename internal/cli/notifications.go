package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/99minutos/ebanking-console/internal/core/controller"
	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/guard"
	"github.com/99minutos/ebanking-console/internal/core/view"
)

var notificationMessages = controller.Messages{Fallback: "Failed to load notifications."}

func newNotificationsCmd(o *options) *cobra.Command {
	var (
		filter string
		typ    string
	)

	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "List the notifications of the signed-in client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			read := view.ReadFilter(filter)
			switch read {
			case view.FilterAll, view.FilterUnread, view.FilterRead:
			default:
				return fmt.Errorf("invalid --filter %q (want all, unread or read)", filter)
			}

			ctx := cmd.Context()
			rt, err := o.open(ctx)
			if err != nil {
				return err
			}
			defer rt.Close(ctx)

			s := rt.Sessions.Current()
			if d := guard.RequireClient(s); !d.Allow {
				if !s.Authenticated() {
					return fmt.Errorf("%w: run 'ebank login' first", domain.ErrNotAuthenticated)
				}
				return errors.New("notifications are only available to clients")
			}

			all, err := rt.Gateways.Client.Notifications(ctx)
			if err != nil {
				rt.Log.Debug().Err(err).Msg("notifications failed")
				return errors.New(notificationMessages.For(err))
			}
			list := view.Filter(view.SortNewestFirst(all), read, typ)

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No notifications")
				return nil
			}
			now := time.Now()
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tPRIORITY\tTYPE\tAGE\tTITLE")
			for _, n := range list {
				status := "unread"
				if n.IsRead {
					status = "read"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					n.NotificationID, status, view.PriorityLabel(n.Priority), n.Type,
					view.TimeAgo(n.CreatedDate.Time, now), n.Title)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "%d shown, %d unread\n", len(list), view.UnreadCount(all))
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", string(view.FilterAll), "Read state: all, unread or read")
	cmd.Flags().StringVar(&typ, "type", view.AllTypes, "Notification type, or all")
	return cmd
}

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/99minutos/ebanking-console/internal/core/controller"
	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/guard"
)

func newLoginCmd(o *options) *cobra.Command {
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "login [username]",
		Short: "Sign in and persist the session",
		Long: `Sign in to the banking backend and store the session with the configured
credential store. The password is prompted without echo, or read from stdin
with --password-stdin.`,
		Example: `  ebank login alice
  echo "$PASSWORD" | ebank login alice --password-stdin`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			in := bufio.NewReader(cmd.InOrStdin())

			var username string
			switch {
			case len(args) == 1:
				username = args[0]
			case passwordStdin:
				return errors.New("username is required with --password-stdin")
			default:
				fmt.Fprint(cmd.ErrOrStderr(), "Username: ")
				line, err := readLine(in)
				if err != nil {
					return fmt.Errorf("read username: %w", err)
				}
				username = line
			}

			password, err := readPassword(cmd, in, passwordStdin)
			if err != nil {
				return err
			}

			rt, err := o.open(ctx)
			if err != nil {
				return err
			}
			defer rt.Close(ctx)

			info, err := rt.Sessions.Login(ctx, domain.Credentials{Username: username, Password: password})
			if err != nil {
				rt.Log.Debug().Err(err).Msg("login rejected")
				return errors.New(controller.LoginMessages.For(err))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Logged in as %s (%s)\n", info.User.Username, strings.Join(info.User.Roles.Authorities(), ", "))
			if !info.ExpiresAt.IsZero() {
				fmt.Fprintf(out, "Session expires %s\n", info.ExpiresAt.Local().Format(time.RFC1123))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	return cmd
}

func newLogoutCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := o.open(ctx)
			if err != nil {
				return err
			}
			defer rt.Close(ctx)

			was := rt.Sessions.Current()
			if err := rt.Sessions.Logout(ctx); err != nil {
				return err
			}
			if was.Authenticated() {
				fmt.Fprintf(cmd.OutOrStdout(), "Logged out %s\n", was.Username())
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
			}
			return nil
		},
	}
}

func newWhoamiCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := o.open(ctx)
			if err != nil {
				return err
			}
			defer rt.Close(ctx)

			s := rt.Sessions.Current()
			if !s.Authenticated() {
				return fmt.Errorf("%w: run 'ebank login' first", domain.ErrNotAuthenticated)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Username:\t%s\n", s.User.Username)
			if s.User.Email != "" {
				fmt.Fprintf(w, "Email:\t%s\n", s.User.Email)
			}
			fmt.Fprintf(w, "Roles:\t%s\n", strings.Join(s.User.Roles.Authorities(), ", "))
			fmt.Fprintf(w, "Home:\t%s\n", guard.Home(s))
			if !s.ExpiresAt.IsZero() {
				expires := s.ExpiresAt.Local().Format(time.RFC1123)
				if s.Expired(time.Now()) {
					expires += " (expired)"
				}
				fmt.Fprintf(w, "Expires:\t%s\n", expires)
			}
			return w.Flush()
		},
	}
}

// readPassword reads the password from stdin or prompts on the terminal
// with echo disabled.
func readPassword(cmd *cobra.Command, in *bufio.Reader, fromStdin bool) (string, error) {
	if fromStdin {
		password, err := readLine(in)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		if password == "" {
			return "", errors.New("password from stdin is empty")
		}
		return password, nil
	}

	f, ok := cmd.InOrStdin().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return "", errors.New("no terminal available for the password prompt (use --password-stdin)")
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

// readLine returns one line without its terminator. A final line without a
// newline is accepted.
func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

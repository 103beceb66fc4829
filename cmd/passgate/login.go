package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/passgate/internal/client"
	"github.com/MKhiriev/passgate/internal/clock"
	"github.com/MKhiriev/passgate/internal/logout"
	"github.com/MKhiriev/passgate/internal/store"
	"github.com/MKhiriev/passgate/models"
)

const shellHelp = `Commands:
  status              show the current session
  touch               record activity
  renew               issue a fresh session token
  device              show whether this device is remembered
  set KEY VALUE       keep a value until logout
  get KEY             print a kept value
  schedule DURATION   log out after DURATION (e.g. 10m)
  cancel              cancel a scheduled logout
  logout [--forget-device|--all]
  panic               end the session immediately
  exit                leave without logging out`

func newLoginCmd(c *cli) *cobra.Command {
	var (
		company  string
		user     string
		role     string
		remember bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and open an interactive session",
		Long: `login verifies the company passphrase and opens a session shell. The
session renews itself and ends after the configured idle timeout. The last
company and user are remembered between runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := &syncWriter{w: cmd.OutOrStdout()}

			if company == "" {
				if hint, ok := c.app.LastSessionHint(ctx); ok {
					company = hint.CompanyID
					if user == "" {
						user = hint.UserIdentifier
					}
					fmt.Fprintf(out, "Signing in to %s as %s.\n", company, orDash(user))
				}
			}
			if company == "" {
				return errors.New("--company is required")
			}

			passphrase, err := c.input.readSecret(out, "Passphrase: ")
			if err != nil {
				return err
			}
			res, err := c.app.Login(ctx, models.LoginRequest{
				Passphrase:     passphrase,
				CompanyID:      company,
				UserIdentifier: user,
				Role:           role,
				RememberDevice: remember,
			})
			if err != nil {
				return c.fail(err)
			}

			fmt.Fprintf(out, "Signed in. Session expires at %s.\n", res.ExpiresAt.Local().Format(time.Kitchen))
			if res.DeviceTokenID != "" {
				fmt.Fprintln(out, "This device will be remembered.")
			}

			sh := &shell{cli: c, out: out}
			return sh.run(ctx)
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "Company identifier (defaults to the last one used)")
	cmd.Flags().StringVar(&user, "user", "", "User identifier")
	cmd.Flags().StringVar(&role, "role", "", "Role recorded on the session")
	cmd.Flags().BoolVar(&remember, "remember", false, "Remember this device")
	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// syncWriter serialises writes from the shell and from session timers.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// shell is the line-oriented loop run while a session is active.
type shell struct {
	cli       *cli
	out       io.Writer
	scheduled clock.Handle
}

func (s *shell) run(ctx context.Context) error {
	app := s.cli.app
	ended := make(chan string, 1)

	id := app.OnSessionEvent(func(e models.SessionEvent) {
		switch e.Type {
		case models.SessionEventTimeout, models.SessionEventLogout:
			fmt.Fprintf(s.out, "\nSession ended (%s).\n", e.Reason)
			select {
			case ended <- e.Reason:
			default:
			}
		case models.SessionEventRenewal:
			fmt.Fprintln(s.out, "\nSession renewed.")
		}
	})
	defer app.OffSessionEvent(id)

	app.Start(ctx)

	fmt.Fprintln(s.out, `Type "help" for commands.`)
	for {
		select {
		case <-ended:
			return nil
		default:
		}

		fmt.Fprint(s.out, "passgate> ")
		line, err := s.cli.input.readLine()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return err
		}
		select {
		case <-ended:
			return nil
		default:
		}

		done, err := s.exec(ctx, strings.Fields(line))
		if err != nil {
			fmt.Fprintf(s.out, "error: %s\n", err)
		}
		if done {
			return nil
		}
	}
}

// exec runs one shell command and reports whether the shell should exit.
func (s *shell) exec(ctx context.Context, args []string) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}
	app := s.cli.app

	switch args[0] {
	case "help", "?":
		fmt.Fprintln(s.out, shellHelp)

	case "status":
		info := app.Session()
		if info == nil {
			return true, s.cli.fail(client.ErrNotSignedIn)
		}
		fmt.Fprintf(s.out, "User:      %s\n", info.UserID)
		fmt.Fprintf(s.out, "Company:   %s\n", info.CompanyID)
		fmt.Fprintf(s.out, "Session:   %s\n", info.SessionID)
		fmt.Fprintf(s.out, "Expires:   %s\n", info.ExpiresAt.Local().Format(time.RFC3339))
		fmt.Fprintf(s.out, "Active at: %s\n", info.LastActivityAt.Local().Format(time.RFC3339))

	case "touch":
		if err := app.Touch(); err != nil {
			return true, s.cli.fail(err)
		}
		fmt.Fprintln(s.out, "Activity recorded.")

	case "renew":
		info, err := app.Renew(ctx)
		if err != nil {
			return false, s.cli.fail(err)
		}
		fmt.Fprintf(s.out, "Renewed until %s.\n", info.ExpiresAt.Local().Format(time.RFC3339))

	case "device":
		info := app.Session()
		if info == nil {
			return true, s.cli.fail(client.ErrNotSignedIn)
		}
		if app.IsDeviceRemembered(ctx, info.CompanyID) {
			fmt.Fprintln(s.out, "This device is remembered.")
		} else {
			fmt.Fprintln(s.out, "This device is not remembered.")
		}

	case "set":
		if len(args) < 3 {
			return false, errors.New("usage: set KEY VALUE")
		}
		if err := app.Volatile().Set(ctx, args[1], strings.Join(args[2:], " ")); err != nil {
			return false, s.cli.fail(err)
		}
		_ = app.Touch()

	case "get":
		if len(args) != 2 {
			return false, errors.New("usage: get KEY")
		}
		v, err := app.Volatile().Get(ctx, args[1])
		if errors.Is(err, store.ErrKeyNotFound) {
			return false, fmt.Errorf("%s is not set", args[1])
		}
		if err != nil {
			return false, s.cli.fail(err)
		}
		fmt.Fprintln(s.out, v)
		_ = app.Touch()

	case "schedule":
		if len(args) != 2 {
			return false, errors.New("usage: schedule DURATION")
		}
		d, err := time.ParseDuration(args[1])
		if err != nil || d <= 0 {
			return false, fmt.Errorf("invalid duration %q", args[1])
		}
		s.scheduled = app.Coordinator().ScheduleLogout(d, "")
		fmt.Fprintf(s.out, "Logout scheduled in %s.\n", d)

	case "cancel":
		if s.scheduled == 0 || !app.Coordinator().CancelScheduledLogout(s.scheduled) {
			fmt.Fprintln(s.out, "No logout scheduled.")
			return false, nil
		}
		s.scheduled = 0
		fmt.Fprintln(s.out, "Scheduled logout cancelled.")

	case "logout":
		opts := logout.Options{}
		for _, a := range args[1:] {
			switch a {
			case "--forget-device":
				opts.ForgetDevice = true
			case "--all":
				opts.RevokeAllSessions = true
			default:
				return false, fmt.Errorf("unknown logout option %q", a)
			}
		}
		ran, err := app.LogoutWithConfirmation(ctx, opts)
		if err != nil {
			err = s.cli.fail(err)
		}
		return ran, err

	case "panic":
		app.EmergencyLogout(ctx)
		return true, nil

	case "exit", "quit":
		return true, nil

	default:
		return false, fmt.Errorf("unknown command %q, type help", args[0])
	}
	return false, nil
}

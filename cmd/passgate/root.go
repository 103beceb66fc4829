package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/passgate/internal/client"
	"github.com/MKhiriev/passgate/internal/config"
	"github.com/MKhiriev/passgate/internal/logger"
	"github.com/MKhiriev/passgate/internal/tui"
)

// cli is the state shared by all commands of one invocation.
type cli struct {
	input *lineInput
	flags *config.Flags
	cfg   *config.StructuredConfig
	app   *client.App

	// newApp is replaced in tests.
	newApp func(ctx context.Context, cfg *config.StructuredConfig, opts ...client.Option) (*client.App, error)
}

func newCLI(in io.Reader) *cli {
	return &cli{
		input:  newLineInput(in),
		newApp: client.NewApp,
	}
}

// userError carries the message shown to the user while keeping the
// underlying error for errors.Is.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

func (c *cli) fail(err error) error {
	if err == nil {
		return nil
	}
	return &userError{msg: c.app.UserMessage(err), err: err}
}

// newRootCmd builds the command tree. Every command except strength and
// version opens the configured stores before it runs.
func newRootCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passgate",
		Short: "Zero-knowledge passphrase sign-in for the terminal",
		Long: `passgate verifies a company passphrase without storing or sending it.
A successful sign-in starts a session that renews itself and ends after
a period of inactivity. Everything passgate keeps on disk is encrypted
with a key bound to this device.`,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations["offline"] == "true" {
				return nil
			}
			return c.open(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return c.close()
		},
	}

	c.flags = config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newInitCmd(c),
		newLoginCmd(c),
		newPasswdCmd(c),
		newStrengthCmd(c),
		newStatsCmd(c),
		newCleanupCmd(c),
		newForgetDeviceCmd(c),
		newVersionCmd(),
	)
	return cmd
}

func (c *cli) open(cmd *cobra.Command) error {
	cfg, err := config.GetStructuredConfig(c.flags.Overrides())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.cfg = cfg

	log := logger.NewClientLogger("passgate", cfg.Log.File).WithLevel(cfg.Log.Level)
	opts := []client.Option{client.WithLogger(log)}
	if c.input.isTerminal() {
		opts = append(opts, client.WithConfirmer(tui.NewConfirmer(nil, cmd.OutOrStdout(), log)))
	}

	app, err := c.newApp(cmd.Context(), cfg, opts...)
	if err != nil {
		return fmt.Errorf("start passgate: %w", err)
	}
	c.app = app
	return nil
}

func (c *cli) close() error {
	if c.app == nil {
		return nil
	}
	app := c.app
	c.app = nil
	if err := app.Close(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("close storage: %w", err)
	}
	return nil
}

func versionString() string {
	return fmt.Sprintf("%s (built %s, commit %s)", orNA(buildVersion), orNA(buildDate), orNA(buildCommit))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print build information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"offline": "true"},
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Build version: %s\n", orNA(buildVersion))
			fmt.Fprintf(out, "Build date: %s\n", orNA(buildDate))
			fmt.Fprintf(out, "Build commit: %s\n", orNA(buildCommit))
		},
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

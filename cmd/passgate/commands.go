package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/passgate/internal/client"
	"github.com/MKhiriev/passgate/internal/service"
)

func newInitCmd(c *cli) *cobra.Command {
	var (
		company string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Set up the passphrase for a company",
		Long: `init derives a key from a new passphrase and stores an encrypted
proof that later sign-ins are checked against. The passphrase itself is
never written anywhere.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if !force && c.app.IsInitialized(ctx, company) {
				return c.fail(client.ErrAlreadyInitialized)
			}

			passphrase, err := c.input.readSecret(out, "New passphrase: ")
			if err != nil {
				return err
			}
			strength := c.app.CheckPassphraseStrength(passphrase)
			printStrength(cmd, strength.Errors, strength.Suggestions)
			if !strength.Valid {
				return c.fail(service.ErrWeakPassphrase)
			}

			again, err := c.input.readSecret(out, "Repeat passphrase: ")
			if err != nil {
				return err
			}
			if again != passphrase {
				return errors.New("passphrases do not match")
			}

			if err = c.app.Setup(ctx, company, passphrase, force); err != nil {
				return c.fail(err)
			}
			fmt.Fprintf(out, "Passphrase set for %s.\n", company)
			return nil
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "Company identifier")
	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing passphrase")
	_ = cmd.MarkFlagRequired("company")
	return cmd
}

func newPasswdCmd(c *cli) *cobra.Command {
	var company string

	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change a company passphrase",
		Long: `passwd proves the current passphrase, replaces it, and forgets every
remembered device.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if !c.app.IsInitialized(ctx, company) {
				return c.fail(client.ErrNotInitialized)
			}
			current, err := c.input.readSecret(out, "Current passphrase: ")
			if err != nil {
				return err
			}
			next, err := c.input.readSecret(out, "New passphrase: ")
			if err != nil {
				return err
			}
			if err = c.app.ChangePassphrase(ctx, company, current, next); err != nil {
				return c.fail(err)
			}
			fmt.Fprintln(out, "Passphrase changed. Remembered devices were signed out.")
			return nil
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "Company identifier")
	_ = cmd.MarkFlagRequired("company")
	return cmd
}

func newStrengthCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:         "strength [passphrase]",
		Short:       "Rate a candidate passphrase",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"offline": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var passphrase string
			if len(args) == 1 {
				passphrase = args[0]
			} else {
				var err error
				if passphrase, err = c.input.readSecret(cmd.OutOrStdout(), "Passphrase: "); err != nil {
					return err
				}
			}

			result := service.CheckPassphraseStrength(passphrase)
			printStrength(cmd, result.Errors, result.Suggestions)
			if !result.Valid {
				return errors.New("passphrase is too weak")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Passphrase is acceptable.")
			return nil
		},
	}
}

func printStrength(cmd *cobra.Command, errs, suggestions []string) {
	out := cmd.OutOrStdout()
	for _, e := range errs {
		fmt.Fprintf(out, "  ✗ %s\n", e)
	}
	for _, s := range suggestions {
		fmt.Fprintf(out, "  • %s\n", s)
	}
}

func newStatsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show secure storage usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := c.app.StorageStats(cmd.Context())
			if err != nil {
				return c.fail(err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Backend: %s\n", backendName(c.cfg.Storage.Backend))
			fmt.Fprintf(out, "Entries: %d\n", stats.EntryCount)
			fmt.Fprintf(out, "Used:    %d of %d bytes (%.1f%%)\n", stats.UsedBytes, stats.LimitBytes, stats.PercentUsed)
			return nil
		},
	}
}

func backendName(b string) string {
	if b == "" {
		return "memory"
	}
	return b
}

func newCleanupCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Remove stale secure entries now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := c.app.Cleanup(cmd.Context())
			if err != nil {
				return c.fail(err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Removed %d stale entries.\n", report.Removed)
			if report.NearlyFull {
				fmt.Fprintf(out, "Warning: storage is %.1f%% full.\n", report.Stats.PercentUsed)
			}
			return nil
		},
	}
}

func newForgetDeviceCmd(c *cli) *cobra.Command {
	var (
		company string
		all     bool
	)

	cmd := &cobra.Command{
		Use:   "forget-device",
		Short: "Stop remembering this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if company == "" && !all {
				return errors.New("either --company or --all is required")
			}
			if all {
				company = ""
			}

			n, err := c.app.ForgetDevice(cmd.Context(), company)
			if err != nil {
				return c.fail(err)
			}
			scope := "all companies"
			if company != "" {
				scope = company
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Forgot %d remembered device %s for %s.\n", n, plural(n, "token", "tokens"), scope)
			return nil
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "Company identifier")
	cmd.Flags().BoolVar(&all, "all", false, "Forget this device for every company")
	return cmd
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

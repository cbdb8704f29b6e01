package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reolink-cli/reolink/internal/camera"
)

func newSirenCommand(a *app) *cobra.Command {
	siren := &cobra.Command{
		Use:   "siren",
		Short: "Siren control",
	}
	var duration int
	trigger := &cobra.Command{
		Use:   "trigger",
		Short: "Trigger the siren",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if duration < 0 {
				return usagef("duration must not be negative")
			}
			return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
				params := camera.SirenParams{ManualSwitch: 1}
				if duration > 0 {
					params.Mode = "times"
					params.Duration = duration
				}
				if err := cam.PlayAudioAlarm(ctx, params); err != nil {
					return err
				}
				f := a.formatter()
				if f.jsonMode {
					return f.JSON(map[string]any{"siren": "triggered", "duration": duration})
				}
				if duration > 0 {
					f.Line("Siren triggered for %ds.", duration)
				} else {
					f.Line("Siren triggered.")
				}
				return nil
			})
		},
	}
	trigger.Flags().IntVar(&duration, "duration", 0, "Siren duration in seconds")
	stop := &cobra.Command{
		Use:   "stop",
		Short: "Stop the siren",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
				if err := cam.PlayAudioAlarm(ctx, camera.SirenParams{ManualSwitch: 0}); err != nil {
					return err
				}
				f := a.formatter()
				if f.jsonMode {
					return f.JSON(map[string]any{"siren": "stopped"})
				}
				f.Line("Siren stopped.")
				return nil
			})
		},
	}
	siren.AddCommand(trigger, stop)
	return siren
}

// toggleCommand builds the shared enable/disable command pair used by the
// push, ftp, email, and recording features.
type toggleCommand struct {
	use    string
	short  string
	noun   string
	title  string
	status func(ctx context.Context, cam *camera.Client) (camera.Object, error)
	set    func(ctx context.Context, cam *camera.Client, enable bool) error
	fields func(raw camera.Object) []field
}

func (tc toggleCommand) build(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   tc.use,
		Short: tc.short,
	}
	if tc.status != nil {
		root.Args = cobra.NoArgs
		root.RunE = func(cmd *cobra.Command, args []string) error {
			return tc.runStatus(a, cmd)
		}
		root.AddCommand(&cobra.Command{
			Use:   "status",
			Short: fmt.Sprintf("Show %s status", tc.noun),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return tc.runStatus(a, cmd)
			},
		})
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "enable",
			Short: fmt.Sprintf("Enable %s", tc.noun),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return tc.runSet(a, cmd, true)
			},
		},
		&cobra.Command{
			Use:   "disable",
			Short: fmt.Sprintf("Disable %s", tc.noun),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return tc.runSet(a, cmd, false)
			},
		},
	)
	return root
}

func (tc toggleCommand) runStatus(a *app, cmd *cobra.Command) error {
	return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
		raw, err := tc.status(ctx, cam)
		if err != nil {
			return err
		}
		f := a.formatter()
		if f.jsonMode {
			return f.JSON(raw)
		}
		f.Block(tc.title, tc.fields(raw))
		return nil
	})
}

func (tc toggleCommand) runSet(a *app, cmd *cobra.Command, enable bool) error {
	return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
		if err := tc.set(ctx, cam, enable); err != nil {
			return err
		}
		f := a.formatter()
		verb := "disabled"
		if enable {
			verb = "enabled"
		}
		if f.jsonMode {
			return f.JSON(map[string]any{tc.use: verb})
		}
		f.Line("%s %s.", tc.title, verb)
		return nil
	})
}

func newPushCommand(a *app) *cobra.Command {
	return toggleCommand{
		use:   "push",
		short: "Push notifications",
		noun:  "push notifications",
		title: "Push notifications",
		status: func(ctx context.Context, cam *camera.Client) (camera.Object, error) {
			return cam.Push(ctx)
		},
		set: func(ctx context.Context, cam *camera.Client, enable bool) error {
			return cam.SetPush(ctx, enable)
		},
		fields: func(raw camera.Object) []field {
			return []field{{"Enabled", enabledDisabled(raw["enable"])}}
		},
	}.build(a)
}

func newFtpCommand(a *app) *cobra.Command {
	ftp := toggleCommand{
		use:   "ftp",
		short: "FTP upload",
		noun:  "FTP upload",
		title: "FTP upload",
		status: func(ctx context.Context, cam *camera.Client) (camera.Object, error) {
			return cam.Ftp(ctx)
		},
		set: func(ctx context.Context, cam *camera.Client, enable bool) error {
			return cam.SetFtp(ctx, enable)
		},
		fields: func(raw camera.Object) []field {
			fields := []field{{"Enabled", enabledDisabled(raw["enable"])}}
			fields = append(fields, pickFields(raw, []fieldMap{
				{"server", "Server"},
				{"port", "Port"},
				{"remoteDir", "Remote Dir"},
			})...)
			return fields
		},
	}.build(a)
	ftp.AddCommand(&cobra.Command{
		Use:   "test",
		Short: "Test the FTP configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
				if err := cam.TestFtp(ctx); err != nil {
					return err
				}
				f := a.formatter()
				if f.jsonMode {
					return f.JSON(map[string]any{"ftp_test": "ok"})
				}
				f.Line("FTP test successful.")
				return nil
			})
		},
	})
	return ftp
}

func newEmailCommand(a *app) *cobra.Command {
	email := toggleCommand{
		use:   "email",
		short: "Email alerts",
		noun:  "email alerts",
		title: "Email alerts",
		status: func(ctx context.Context, cam *camera.Client) (camera.Object, error) {
			return cam.Email(ctx)
		},
		set: func(ctx context.Context, cam *camera.Client, enable bool) error {
			return cam.SetEmail(ctx, enable)
		},
		fields: func(raw camera.Object) []field {
			fields := []field{{"Enabled", enabledDisabled(raw["enable"])}}
			fields = append(fields, pickFields(raw, []fieldMap{
				{"smtpServer", "SMTP Server"},
				{"smtpPort", "SMTP Port"},
				{"addr1", "Recipient"},
			})...)
			return fields
		},
	}.build(a)
	email.AddCommand(&cobra.Command{
		Use:   "test",
		Short: "Test the email configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
				if err := cam.TestEmail(ctx); err != nil {
					return err
				}
				f := a.formatter()
				if f.jsonMode {
					return f.JSON(map[string]any{"email_test": "ok"})
				}
				f.Line("Email test successful.")
				return nil
			})
		},
	})
	return email
}

func newRecordingCommand(a *app) *cobra.Command {
	// Status lives under "recordings status"; this command only toggles.
	return toggleCommand{
		use:   "recording",
		short: "Recording control",
		noun:  "recording",
		title: "Recording",
		set: func(ctx context.Context, cam *camera.Client, enable bool) error {
			return cam.SetRec(ctx, enable)
		},
	}.build(a)
}

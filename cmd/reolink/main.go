package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/reolink-cli/reolink/internal/camera"
	"github.com/reolink-cli/reolink/internal/logging"
	"github.com/reolink-cli/reolink/internal/version"
)

// Exit codes, stable for scripting.
const (
	exitOK          = 0
	exitError       = 1
	exitUsage       = 2
	exitAuth        = 3
	exitUnreachable = 4
	exitUnsupported = 5
)

// usageError marks operator mistakes (bad flags, missing arguments) so they
// exit with a distinct code.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &app{}
	root := newRootCommand(app)
	if err := root.ExecuteContext(ctx); err != nil {
		printError(err)
		os.Exit(exitCodeFor(err))
	}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "reolink",
		Short:         "Command-line interface for controlling Reolink cameras",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_, a.closeLog = logging.Setup(logging.Options{
				Verbose:  a.verbose,
				FilePath: a.logFile,
			})
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.closeLog != nil {
				a.closeLog()
			}
		},
	}
	root.Version = version.FormatVersion(version.String())
	root.SetVersionTemplate("{{printf \"%s\\n\" .Version}}")
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usagef("%v", err)
	})

	flags := root.PersistentFlags()
	flags.StringVar(&a.host, "host", "", "Camera IP or hostname (env: REOLINK_HOST)")
	flags.StringVar(&a.username, "user", "", "Username (default: admin, env: REOLINK_USER)")
	flags.StringVar(&a.password, "password", "", "Password (env: REOLINK_PASS)")
	flags.IntVar(&a.channel, "channel", 0, "Channel index (env: REOLINK_CHANNEL)")
	flags.IntVar(&a.timeout, "timeout", 0, "Request timeout in seconds (default: 10)")
	flags.StringVar(&a.configFile, "config", "", "Config file path")
	flags.BoolVar(&a.jsonOut, "json", false, "Output in JSON format")
	flags.BoolVar(&a.quiet, "quiet", false, "Suppress informational output")
	flags.BoolVar(&a.verbose, "verbose", false, "Enable debug logging")
	flags.StringVar(&a.logFile, "log-file", "", "Mirror logs to a rotated file")

	root.AddCommand(
		newInfoCommand(a),
		newBatteryCommand(a),
		newStorageCommand(a),
		newNetworkCommand(a),
		newTimeCommand(a),
		newCapabilitiesCommand(a),
		newSnapCommand(a),
		newStreamCommand(a),
		newRecordingsCommand(a),
		newWatchCommand(a),
		newMotionCommand(a),
		newAiCommand(a),
		newIrCommand(a),
		newSpotlightCommand(a),
		newStatusLedCommand(a),
		newImageCommand(a),
		newEncodingCommand(a),
		newAudioCommand(a),
		newSirenCommand(a),
		newPushCommand(a),
		newFtpCommand(a),
		newEmailCommand(a),
		newRecordingCommand(a),
		newRebootCommand(a),
		newFirmwareCommand(a),
		newNtpCommand(a),
		newUsersCommand(a),
		&cobra.Command{
			Use:   "version",
			Short: "Show version",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Println(version.FormatVersion(version.String()))
			},
		},
	)
	return root
}

// exitCodeFor maps an error to the process exit code. Camera errors carry
// their class; flag and argument mistakes exit with the usage code.
func exitCodeFor(err error) int {
	if err == nil {
		return exitOK
	}
	var usage *usageError
	if errors.As(err, &usage) {
		return exitUsage
	}
	if camErr, ok := camera.As(err); ok {
		switch camErr.Kind {
		case camera.KindAuth:
			return exitAuth
		case camera.KindNetwork:
			return exitUnreachable
		case camera.KindUnsupported:
			return exitUnsupported
		}
	}
	return exitError
}

func printError(err error) {
	prefix := "Error:"
	if isatty.IsTerminal(os.Stderr.Fd()) {
		prefix = color.New(color.FgRed, color.Bold).Sprint("Error:")
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", prefix, err)
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/reolink-cli/reolink/internal/camera"
	"github.com/reolink-cli/reolink/internal/config"
)

// app holds the global flag values shared by every subcommand.
type app struct {
	host       string
	username   string
	password   string
	channel    int
	timeout    int
	configFile string
	jsonOut    bool
	quiet      bool
	verbose    bool
	logFile    string

	closeLog func() error
}

// resolveSettings layers flag values over the environment over the config
// file and validates that a host and password are available. The password
// falls back to an interactive prompt when stdin is a terminal.
func (a *app) resolveSettings(cmd *cobra.Command) (config.Settings, error) {
	path := a.configFile
	explicit := path != ""
	if path == "" {
		path = config.DefaultPath()
	}
	settings, err := config.Load(path, explicit)
	if err != nil {
		return config.Settings{}, err
	}

	if cmd.Flags().Changed("host") || settings.Host == "" {
		settings.Host = a.host
	}
	if cmd.Flags().Changed("user") || settings.Username == "" {
		settings.Username = a.username
	}
	if cmd.Flags().Changed("password") || settings.Password == "" {
		settings.Password = a.password
	}
	if cmd.Flags().Changed("channel") || settings.Channel == 0 {
		settings.Channel = a.channel
	}
	if cmd.Flags().Changed("timeout") || settings.TimeoutSeconds == 0 {
		settings.TimeoutSeconds = a.timeout
	}
	if a.logFile == "" && settings.LogFile != "" {
		a.logFile = settings.LogFile
	}

	if settings.Host == "" {
		return config.Settings{}, usagef("--host is required (or set %s)", config.EnvHost)
	}
	if settings.Password == "" {
		password, err := promptPassword()
		if err != nil {
			return config.Settings{}, err
		}
		settings.Password = password
	}
	return settings, nil
}

// promptPassword reads a password from the terminal with echo disabled.
// Without a terminal there is nothing to prompt, so it becomes a usage error.
func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !terminal.IsTerminal(fd) {
		return "", usagef("--password is required (or set %s)", config.EnvPassword)
	}
	fmt.Fprint(os.Stderr, "Password: ")
	data, err := terminal.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	if len(data) == 0 {
		return "", usagef("--password is required (or set %s)", config.EnvPassword)
	}
	return string(data), nil
}

// withClient runs fn with a connected client and always releases the camera
// session afterwards. Logout runs on a fresh context so a cancelled command
// still frees the camera-side session slot.
func (a *app) withClient(cmd *cobra.Command, fn func(ctx context.Context, cam *camera.Client) error) error {
	settings, err := a.resolveSettings(cmd)
	if err != nil {
		return err
	}
	cam := camera.New(camera.Options{
		Host:     settings.Host,
		Username: settings.Username,
		Password: settings.Password,
		Channel:  settings.Channel,
		Timeout:  time.Duration(settings.TimeoutSeconds) * time.Second,
	})
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		cam.Logout(ctx)
	}()
	return fn(cmd.Context(), cam)
}

func (a *app) formatter() *formatter {
	return &formatter{
		out:      os.Stdout,
		jsonMode: a.jsonOut,
		quiet:    a.quiet,
		color:    isatty.IsTerminal(os.Stdout.Fd()),
	}
}

// formatter renders command output either as indented JSON or as aligned
// key-value blocks for humans.
type formatter struct {
	out      io.Writer
	jsonMode bool
	quiet    bool
	color    bool
}

func (f *formatter) JSON(data any) error {
	if f.quiet {
		return nil
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	fmt.Fprintln(f.out, string(out))
	return nil
}

// field is one display row of a human-readable block.
type field struct {
	Label string
	Value string
}

// Block prints a titled block of aligned label/value rows.
func (f *formatter) Block(title string, fields []field) {
	if f.quiet {
		return
	}
	var b strings.Builder
	if title != "" {
		if f.color {
			b.WriteString(color.New(color.Bold).Sprint(title))
		} else {
			b.WriteString(title)
		}
		b.WriteByte('\n')
		b.WriteString(strings.Repeat("-", len(title)))
		b.WriteByte('\n')
	}
	width := 0
	for _, fl := range fields {
		if len(fl.Label) > width {
			width = len(fl.Label)
		}
	}
	for _, fl := range fields {
		fmt.Fprintf(&b, "  %-*s  %s\n", width, fl.Label, fl.Value)
	}
	io.WriteString(f.out, b.String())
}

// Line prints a plain informational line, suppressed in quiet mode.
func (f *formatter) Line(format string, args ...any) {
	if f.quiet {
		return
	}
	fmt.Fprintf(f.out, format+"\n", args...)
}

// fieldMap names an API key and the label it is displayed under.
type fieldMap struct {
	Key   string
	Label string
}

// pickFields extracts the mapped keys that are present, in order. Missing
// keys are skipped rather than shown empty; camera models differ in which
// fields they report.
func pickFields(obj camera.Object, fields []fieldMap) []field {
	out := make([]field, 0, len(fields))
	for _, fm := range fields {
		v, ok := obj[fm.Key]
		if !ok {
			continue
		}
		out = append(out, field{Label: fm.Label, Value: formatValue(v)})
	}
	return out
}

// formatValue renders a decoded JSON value for display. Whole-number floats
// print as integers, since JSON decoding turns every camera integer into a
// float64.
func formatValue(v any) string {
	switch val := v.(type) {
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}

func enabledDisabled(v any) string {
	if intValue(v) == 1 {
		return "Enabled"
	}
	return "Disabled"
}

func onOff(v any) string {
	if intValue(v) == 1 {
		return "On"
	}
	return "Off"
}

func intValue(v any) int {
	if f, ok := v.(float64); ok {
		return int(f)
	}
	return 0
}

// parseDate accepts "today", "yesterday", a date ("2026-08-30") or a full
// timestamp ("2026-08-30T14:00:00"), returning midnight for date-only forms.
func parseDate(value string) (time.Time, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch value {
	case "today":
		return midnight, nil
	case "yesterday":
		return midnight.AddDate(0, 0, -1), nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, now.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, usagef("invalid date %q (use today, yesterday, or ISO format)", value)
}

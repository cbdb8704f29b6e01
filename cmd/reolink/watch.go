package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/reolink-cli/reolink/internal/camera"
	"github.com/reolink-cli/reolink/internal/watch"
)

func newWatchCommand(a *app) *cobra.Command {
	var (
		interval int
		filters  []string
		execTmpl string
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch for motion and AI detection events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval < 1 {
				return usagef("interval must be at least 1 second")
			}
			types, err := parseEventTypes(filters)
			if err != nil {
				return err
			}
			return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
				f := a.formatter()
				if !f.jsonMode && !f.quiet {
					f.Line("Watching for events... (Ctrl+C to stop)")
				}
				w := watch.New(cam, watch.Options{
					Interval: time.Duration(interval) * time.Second,
					Types:    types,
					Logger:   slog.Default(),
				})
				err := w.Run(ctx, func(event watch.Event) {
					a.emitEvent(f, event)
					if execTmpl != "" {
						runEventHook(execTmpl, event)
					}
				})
				if errors.Is(err, context.Canceled) {
					err = nil
				}
				if err != nil {
					return err
				}
				if !f.jsonMode && !f.quiet {
					f.Line("Stopped watching.")
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&interval, "interval", 3, "Poll interval in seconds")
	cmd.Flags().StringSliceVar(&filters, "filter", nil, "Event types to report (motion, person, vehicle, animal)")
	cmd.Flags().StringVar(&execTmpl, "exec", "", "Shell command to run per event ({type}, {action}, {timestamp} are substituted)")
	return cmd
}

var knownEventTypes = map[string]bool{
	"motion":  true,
	"person":  true,
	"vehicle": true,
	"animal":  true,
}

func parseEventTypes(filters []string) ([]string, error) {
	var types []string
	for _, raw := range filters {
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if !knownEventTypes[name] {
				return nil, usagef("unknown event type %q", name)
			}
			types = append(types, name)
		}
	}
	return types, nil
}

func (a *app) emitEvent(f *formatter, event watch.Event) {
	if f.jsonMode {
		line, err := json.Marshal(event)
		if err != nil {
			slog.Error("cannot encode event", "error", err)
			return
		}
		f.out.Write(append(line, '\n'))
		return
	}
	if f.quiet {
		return
	}
	f.Line("[%s] %s %s", event.Timestamp.Format("2006-01-02 15:04:05"), event.Type, event.Action)
}

// runEventHook starts the hook command without waiting for it, so a slow
// hook cannot stall the poll loop.
func runEventHook(tmpl string, event watch.Event) {
	r := strings.NewReplacer(
		"{type}", event.Type,
		"{action}", event.Action,
		"{timestamp}", event.Timestamp.Format(time.RFC3339),
	)
	command := exec.Command("sh", "-c", r.Replace(tmpl))
	command.Stdout = os.Stdout
	command.Stderr = os.Stderr
	if err := command.Start(); err != nil {
		slog.Error("cannot run event hook", "error", err)
		return
	}
	go func() {
		if err := command.Wait(); err != nil {
			slog.Warn("event hook failed", "error", err)
		}
	}()
}

// Package watch polls a camera for motion and AI detection state and turns
// state transitions into events.
package watch

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/reolink-cli/reolink/internal/camera"
)

// StateSource is the subset of the camera client the poller needs.
type StateSource interface {
	MdState(ctx context.Context) (camera.Object, error)
	AiState(ctx context.Context) (camera.Object, error)
}

// Event is one detection state transition. Action is "start" when the
// detector triggered and "stop" when it cleared.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// Options configures a Watcher. Interval defaults to 3 seconds. An empty
// Types filter passes all event types.
type Options struct {
	Interval time.Duration
	Types    []string
	Logger   *slog.Logger
}

// Watcher polls detection state at a fixed interval and reports edges.
type Watcher struct {
	source   StateSource
	interval time.Duration
	types    map[string]bool
	log      *slog.Logger

	prev map[string]bool
}

// AI detection types in the order they are checked. The map key is the
// vendor's field name, the value the event type reported to the caller.
var aiTypes = []struct {
	apiKey    string
	eventType string
}{
	{"people", "person"},
	{"vehicle", "vehicle"},
	{"dog_cat", "animal"},
}

// New builds a watcher over the given state source.
func New(source StateSource, opts Options) *Watcher {
	interval := opts.Interval
	if interval <= 0 {
		interval = 3 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	var types map[string]bool
	if len(opts.Types) > 0 {
		types = make(map[string]bool, len(opts.Types))
		for _, t := range opts.Types {
			types[t] = true
		}
	}
	return &Watcher{
		source:   source,
		interval: interval,
		types:    types,
		log:      logger,
		prev:     make(map[string]bool),
	}
}

// Run polls until the context is cancelled, calling emit for every state
// transition. The first poll reports the current state of every supported
// detector, so a camera already in alarm produces an immediate event.
// Cameras without AI support are watched for plain motion only.
func (w *Watcher) Run(ctx context.Context, emit func(Event)) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if err := w.poll(ctx, emit); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *Watcher) poll(ctx context.Context, emit func(Event)) error {
	now := time.Now()

	md, err := w.source.MdState(ctx)
	if err != nil {
		return err
	}
	w.update("motion", "motion", intState(md, "state") == 1, now, emit)

	ai, err := w.source.AiState(ctx)
	if err != nil {
		if camera.IsUnsupported(err) {
			return nil
		}
		return err
	}
	for _, t := range aiTypes {
		info, ok := ai[t.apiKey].(map[string]any)
		if !ok || intState(camera.Object(info), "support") == 0 {
			continue
		}
		triggered := intState(camera.Object(info), "alarm_state") == 1
		w.update(t.apiKey, t.eventType, triggered, now, emit)
	}
	return nil
}

// update records the detector state and emits an event on change. The
// previous state updates even when the type filter suppresses the event,
// otherwise a filtered edge would be re-reported once the filter changes.
func (w *Watcher) update(key, eventType string, triggered bool, now time.Time, emit func(Event)) {
	prev, seen := w.prev[key]
	if seen && prev == triggered {
		return
	}
	w.prev[key] = triggered

	if w.types != nil && !w.types[eventType] {
		return
	}
	action := "stop"
	if triggered {
		action = "start"
	}
	event := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Action:    action,
		Timestamp: now,
	}
	w.log.Debug("detection event", "type", event.Type, "action", event.Action)
	emit(event)
}

func intState(obj camera.Object, key string) int {
	if f, ok := obj[key].(float64); ok {
		return int(f)
	}
	return 0
}

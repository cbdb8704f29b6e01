package main

import (
	"errors"
	"testing"

	"github.com/reolink-cli/reolink/internal/camera"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitOK},
		{"generic", errors.New("boom"), exitError},
		{"usage", usagef("missing flag"), exitUsage},
		{"auth", &camera.Error{Kind: camera.KindAuth, Message: "bad password"}, exitAuth},
		{"network", &camera.Error{Kind: camera.KindNetwork, Message: "refused"}, exitUnreachable},
		{"unsupported", &camera.Error{Kind: camera.KindUnsupported, Message: "no battery"}, exitUnsupported},
		{"api", &camera.Error{Kind: camera.KindAPI, Message: "bad param"}, exitError},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tc.err); got != tc.want {
				t.Fatalf("exitCodeFor(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestExitCodeForWrappedCameraError(t *testing.T) {
	t.Parallel()

	inner := &camera.Error{Kind: camera.KindAuth, Message: "token expired"}
	wrapped := errors.Join(errors.New("context"), inner)
	if got := exitCodeFor(wrapped); got != exitAuth {
		t.Fatalf("wrapped auth error exit code = %d, want %d", got, exitAuth)
	}
}

func TestParseEventTypes(t *testing.T) {
	t.Parallel()

	types, err := parseEventTypes([]string{"motion", "person,vehicle", " animal "})
	if err != nil {
		t.Fatalf("parseEventTypes: %v", err)
	}
	want := []string{"motion", "person", "vehicle", "animal"}
	if len(types) != len(want) {
		t.Fatalf("got %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("got %v, want %v", types, want)
		}
	}

	if _, err := parseEventTypes([]string{"dragon"}); err == nil {
		t.Fatal("expected error for unknown event type")
	} else if exitCodeFor(err) != exitUsage {
		t.Fatalf("unknown type should be a usage error, got %v", err)
	}
}

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/reolink-cli/reolink/internal/camera"
)

func TestBlockAlignsLabels(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	f := &formatter{out: &out}
	f.Block("Device Info", []field{
		{"Name", "Front Door"},
		{"Firmware", "v3.1.0.764"},
	})

	want := "Device Info\n" +
		"-----------\n" +
		"  Name      Front Door\n" +
		"  Firmware  v3.1.0.764\n"
	if out.String() != want {
		t.Fatalf("block output:\n%q\nwant:\n%q", out.String(), want)
	}
}

func TestQuietSuppressesOutput(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	f := &formatter{out: &out, quiet: true}
	f.Block("Title", []field{{"A", "B"}})
	f.Line("hello")
	if err := f.JSON(map[string]any{"a": 1}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("quiet mode wrote output: %q", out.String())
	}
}

func TestJSONIndents(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	f := &formatter{out: &out, jsonMode: true}
	if err := f.JSON(map[string]any{"name": "cam"}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if out.String() != "{\n  \"name\": \"cam\"\n}\n" {
		t.Fatalf("unexpected JSON output: %q", out.String())
	}
}

func TestPickFieldsSkipsMissingKeys(t *testing.T) {
	t.Parallel()

	obj := camera.Object{"model": "RLC-810A", "firmVer": "v3"}
	fields := pickFields(obj, []fieldMap{
		{"name", "Name"},
		{"model", "Model"},
		{"firmVer", "Firmware"},
	})
	if len(fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(fields))
	}
	if fields[0].Label != "Model" || fields[0].Value != "RLC-810A" {
		t.Fatalf("unexpected first field: %+v", fields[0])
	}
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   any
		want string
	}{
		{float64(42), "42"},
		{float64(2.5), "2.5"},
		{"main", "main"},
		{true, "true"},
		{nil, ""},
	}
	for _, tc := range cases {
		if got := formatValue(tc.in); got != tc.want {
			t.Fatalf("formatValue(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	today, err := parseDate("today")
	if err != nil {
		t.Fatalf("parseDate(today): %v", err)
	}
	if !today.Equal(midnight) {
		t.Fatalf("today = %v, want %v", today, midnight)
	}

	yesterday, err := parseDate("yesterday")
	if err != nil {
		t.Fatalf("parseDate(yesterday): %v", err)
	}
	if !yesterday.Equal(midnight.AddDate(0, 0, -1)) {
		t.Fatalf("yesterday = %v", yesterday)
	}

	exact, err := parseDate("2026-08-30T14:30:00")
	if err != nil {
		t.Fatalf("parseDate(timestamp): %v", err)
	}
	if exact.Hour() != 14 || exact.Minute() != 30 {
		t.Fatalf("timestamp = %v", exact)
	}

	dateOnly, err := parseDate("2026-08-30")
	if err != nil {
		t.Fatalf("parseDate(date): %v", err)
	}
	if dateOnly.Hour() != 0 || dateOnly.Day() != 30 {
		t.Fatalf("date = %v", dateOnly)
	}

	if _, err := parseDate("next tuesday"); err == nil {
		t.Fatal("expected error for unparseable date")
	} else if exitCodeFor(err) != exitUsage {
		t.Fatalf("bad date should be a usage error, got %v", err)
	}
}

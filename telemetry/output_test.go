package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v", om, err)
	}
	// A nil manager accepts writes.
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManagerWritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	for tick := int32(60); tick <= 180; tick += 60 {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: tick, Alive: int(tick)}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WritePerf(PerfStats{}, 60); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("telemetry.csv has %d lines, want header + 3 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "window_end,sim_time,systems") {
		t.Errorf("header = %q", lines[0])
	}
	if strings.Contains(strings.Join(lines[1:], "\n"), "window_end") {
		t.Error("header repeated")
	}

	perf, err := os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(perf), "window_end,avg_tick_us") {
		t.Errorf("perf.csv = %q", perf)
	}
}

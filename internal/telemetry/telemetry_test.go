package telemetry

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func readEvents(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	var out []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var m map[string]any
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatalf("line %q is not JSON: %v", sc.Text(), err)
		}
		out = append(out, m)
	}
	return out
}

func TestNewEmitterErrorOnBadPath(t *testing.T) {
	_, err := NewEmitter("/nonexistent/dir/events.jsonl")
	if err == nil {
		t.Fatal("expected error for bad path, got nil")
	}
	if !strings.Contains(err.Error(), "telemetry: open") {
		t.Errorf("expected wrapped error, got: %v", err)
	}
}

func TestEmitWritesJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	em, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}
	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	em.now = func() time.Time { return fixed }

	events := []Event{
		{Kind: KindBuildStart, BuildID: "b1"},
		{Kind: KindItemDone, BuildID: "b1", Item: "Scout/Bat/Bat.qc", Data: map[string]int{"completed": 1, "total": 2}},
		{Kind: KindBuildDone, BuildID: "b1"},
	}
	for _, evt := range events {
		if err := em.Emit(evt); err != nil {
			t.Fatalf("Emit: %v", err)
		}
	}
	if err := em.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got := readEvents(t, path)
	if len(got) != len(events) {
		t.Fatalf("got %d lines, want %d", len(got), len(events))
	}
	if got[0]["ts"] != "2025-01-01T00:00:00Z" {
		t.Errorf("ts = %v, want stamped time", got[0]["ts"])
	}
	if got[1]["item"] != "Scout/Bat/Bat.qc" {
		t.Errorf("item = %v", got[1]["item"])
	}
	if _, ok := got[0]["item"]; ok {
		t.Error("empty item should be omitted")
	}
}

func TestEmitAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	for range 2 {
		em, err := NewEmitter(path)
		if err != nil {
			t.Fatalf("NewEmitter: %v", err)
		}
		if err := em.Emit(Event{Kind: KindBuildStart}); err != nil {
			t.Fatalf("Emit: %v", err)
		}
		em.Close()
	}
	if n := len(readEvents(t, path)); n != 2 {
		t.Errorf("got %d events after two sessions, want 2", n)
	}
}

func TestNilEmitter(t *testing.T) {
	var em *Emitter
	if err := em.Emit(Event{Kind: KindBuildStart}); err != nil {
		t.Errorf("nil Emit: %v", err)
	}
	if err := em.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}

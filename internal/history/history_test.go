package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open(%q): %v", path, err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenEnablesWAL(t *testing.T) {
	s := testStore(t)
	var mode string
	if err := s.db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want %q", mode, "wal")
	}
}

func TestBuildLifecycle(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	clock := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	id, err := s.Begin(ctx, "", "Scout", 2)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := s.RecordItem(ctx, id, 1, "Scout/Bat/Bat.qc", nil, "compiled"); err != nil {
		t.Fatalf("RecordItem: %v", err)
	}
	if err := s.RecordItem(ctx, id, 2, "Scout/Scout.qc", errors.New("exit 1"), "ERROR"); err != nil {
		t.Fatalf("RecordItem: %v", err)
	}
	clock = clock.Add(time.Minute)
	if err := s.Finish(ctx, id, "", errors.New("studiomdl.exe didn't exit with exit code 0")); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	builds, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(builds) != 1 {
		t.Fatalf("len(Recent) = %d, want 1", len(builds))
	}
	b := builds[0]
	if b.ID != id || b.Status != StatusFailed || b.Total != 2 || b.Done != 1 {
		t.Errorf("build = %+v", b)
	}
	if got := b.FinishedAt.Sub(b.StartedAt); got != time.Minute {
		t.Errorf("duration = %v, want 1m", got)
	}

	items, err := s.Items(ctx, id)
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(items) != 2 || items[0].Status != ItemOK || items[1].Status != ItemFailed {
		t.Errorf("items = %+v", items)
	}
}

func TestRecentOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	clock := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { clock = clock.Add(time.Second); return clock }

	var ids []string
	for range 3 {
		id, err := s.Begin(ctx, "", "Spy", 1)
		if err != nil {
			t.Fatalf("Begin: %v", err)
		}
		ids = append(ids, id)
	}
	if err := s.Finish(ctx, ids[2], "/tf/custom/0_ViewmodelCustomized.vpk", nil); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	builds, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(builds) != 2 {
		t.Fatalf("len(Recent(2)) = %d", len(builds))
	}
	if builds[0].ID != ids[2] || builds[0].Status != StatusSucceeded {
		t.Errorf("newest = %+v, want finished build %s", builds[0], ids[2])
	}
	if builds[1].ID != ids[1] || builds[1].Status != StatusRunning || !builds[1].FinishedAt.IsZero() {
		t.Errorf("second = %+v", builds[1])
	}
}

func TestBeginKeepsGivenID(t *testing.T) {
	s := testStore(t)
	id, err := s.Begin(context.Background(), "build-1", "Pyro", 3)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if id != "build-1" {
		t.Errorf("Begin returned %q, want build-1", id)
	}
}

func TestFinishUnknownBuild(t *testing.T) {
	s := testStore(t)
	err := s.Finish(context.Background(), "nope", "", nil)
	if !errors.Is(err, ErrUnknownBuild) {
		t.Fatalf("Finish(unknown) = %v, want ErrUnknownBuild", err)
	}
}

func TestResolveID(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	for _, id := range []string{"abc12345-0000", "abc19999-0000", "def00000-0000"} {
		if _, err := s.Begin(ctx, id, "Spy", 1); err != nil {
			t.Fatalf("Begin(%s): %v", id, err)
		}
	}

	tests := []struct {
		prefix  string
		want    string
		wantErr error
	}{
		{"def", "def00000-0000", nil},
		{"abc12", "abc12345-0000", nil},
		{"abc19999-0000", "abc19999-0000", nil},
		{"abc", "", ErrAmbiguousBuild},
		{"zzz", "", ErrUnknownBuild},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			got, err := s.ResolveID(ctx, tt.prefix)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolveID(%q) error = %v, want %v", tt.prefix, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveID(%q): %v", tt.prefix, err)
			}
			if got != tt.want {
				t.Errorf("ResolveID(%q) = %q, want %q", tt.prefix, got, tt.want)
			}
		})
	}
}

// Package telemetry records a JSONL event stream for builds: one line per
// stage transition, compile unit and cleanup warning, so a failed build can
// be replayed from the log after the staging folder is gone.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Event kinds.
const (
	KindBuildStart     = "build_start"
	KindStaged         = "staged"
	KindPatched        = "patched"
	KindDiverted       = "diverted"
	KindItemDone       = "item_done"
	KindItemFailed     = "item_failed"
	KindPackaged       = "packaged"
	KindCleanupWarning = "cleanup_warning"
	KindBuildDone      = "build_done"
	KindBuildFailed    = "build_failed"
)

// Event is a single telemetry record.
type Event struct {
	Timestamp time.Time `json:"ts"`
	Kind      string    `json:"kind"`
	BuildID   string    `json:"build,omitempty"`
	Item      string    `json:"item,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// Emitter appends events to a JSONL file. A nil *Emitter discards events.
type Emitter struct {
	file *os.File
	enc  *json.Encoder
	now  func() time.Time
	mu   sync.Mutex
}

// NewEmitter opens path for appending, creating it if needed.
func NewEmitter(path string) (*Emitter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	return &Emitter{file: f, enc: json.NewEncoder(f), now: time.Now}, nil
}

// Emit writes one event, stamping it with the current time if unset.
func (e *Emitter) Emit(evt Event) error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if evt.Timestamp.IsZero() {
		evt.Timestamp = e.now().UTC()
	}
	if err := e.enc.Encode(evt); err != nil {
		return fmt.Errorf("telemetry: encode event: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.file.Close(); err != nil {
		return fmt.Errorf("telemetry: close: %w", err)
	}
	return nil
}

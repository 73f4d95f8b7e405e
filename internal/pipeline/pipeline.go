package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/papapumpkin/vcustomizer/internal/sca"
	"github.com/papapumpkin/vcustomizer/internal/staging"
	"github.com/papapumpkin/vcustomizer/internal/studiomdl"
	"github.com/papapumpkin/vcustomizer/internal/telemetry"
	"github.com/papapumpkin/vcustomizer/internal/workarea"
)

// Compiler runs the external build tools.
type Compiler interface {
	Compile(script string) (studiomdl.Result, error)
	Package() (string, studiomdl.Result, error)
}

// Recorder persists build outcomes. history.Store satisfies it.
type Recorder interface {
	Begin(ctx context.Context, id, classes string, total int) (string, error)
	RecordItem(ctx context.Context, buildID string, seq int, script string, itemErr error, output string) error
	Finish(ctx context.Context, buildID, archive string, buildErr error) error
}

// ProgressFunc is called after each compiled script with the number of
// scripts done so far and the queue length.
type ProgressFunc func(completed, total int, script string, res studiomdl.Result)

// Pipeline wires the stages of a build together. Recorder, Events and
// Logger are optional.
type Pipeline struct {
	Stager       *staging.Stager
	Patcher      *staging.Patcher
	Compiler     Compiler
	Area         *workarea.Lifecycle
	OnlyModified bool
	Recorder     Recorder
	Events       *telemetry.Emitter
	Logger       *zap.Logger
}

func (p *Pipeline) log() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

func (p *Pipeline) emit(kind, buildID, item string, data any) {
	if err := p.Events.Emit(telemetry.Event{Kind: kind, BuildID: buildID, Item: item, Data: data}); err != nil {
		p.log().Warn("telemetry write failed", zap.Error(err))
	}
}

// Prepare stages and patches the selected variants of cat, builds the
// compile queue and diverts the live folder. On failure the working area is
// cleaned up before the error is returned.
func (p *Pipeline) Prepare(ctx context.Context, cat *sca.Catalog) (*Build, error) {
	selected := cat.Selected()
	if len(selected) == 0 {
		return nil, ErrNothingSelected
	}
	classes := make([]string, len(selected))
	for i, cv := range selected {
		classes[i] = cv.Category.String()
	}
	b := &Build{ID: uuid.NewString(), Classes: strings.Join(classes, ","), p: p}
	p.emit(telemetry.KindBuildStart, b.ID, "", map[string]any{"classes": classes})

	if err := b.prepare(ctx, cat); err != nil {
		b.Abort(ctx, err)
		return nil, err
	}
	return b, nil
}

// Run prepares a build and drains it, calling onProgress after every
// compiled script. The context is checked between scripts only. It returns
// the relocated archive path.
func (p *Pipeline) Run(ctx context.Context, cat *sca.Catalog, onProgress ProgressFunc) (string, error) {
	b, err := p.Prepare(ctx, cat)
	if err != nil {
		return "", err
	}
	for {
		if err := ctx.Err(); err != nil {
			b.Abort(ctx, err)
			return "", err
		}
		script := b.Peek()
		done, res, err := b.Step(ctx)
		if err != nil {
			b.Abort(ctx, err)
			return "", err
		}
		if done {
			break
		}
		if onProgress != nil {
			onProgress(b.Completed(), b.Total(), script, res)
		}
	}
	archive, err := b.Finish(ctx)
	if err != nil {
		b.Abort(ctx, err)
		return "", err
	}
	return archive, nil
}

// Build is one prepared run with its compile queue.
type Build struct {
	ID      string
	Classes string

	p        *Pipeline
	queue    []string
	next     int
	failed   error
	recorded bool
}

func (b *Build) prepare(ctx context.Context, cat *sca.Catalog) error {
	p := b.p
	if err := p.Stager.Stage(cat); err != nil {
		_ = p.Area.MarkStaged() // partial staging still needs clearing
		return fmt.Errorf("staging: %w", err)
	}
	if err := p.Area.MarkStaged(); err != nil {
		return err
	}
	p.emit(telemetry.KindStaged, b.ID, "", nil)

	n, err := p.Patcher.PatchSelected(cat)
	if err != nil {
		return fmt.Errorf("patching: %w", err)
	}
	p.emit(telemetry.KindPatched, b.ID, "", map[string]int{"scripts": n})

	queue, err := p.Patcher.Scripts(cat, p.OnlyModified)
	if err != nil {
		return fmt.Errorf("collecting scripts: %w", err)
	}
	b.queue = queue

	if err := p.Area.Divert(); err != nil {
		return err
	}
	p.emit(telemetry.KindDiverted, b.ID, "", nil)
	if err := p.Area.BeginCompiling(); err != nil {
		return err
	}

	if p.Recorder != nil {
		if _, err := p.Recorder.Begin(ctx, b.ID, b.Classes, len(b.queue)); err != nil {
			p.log().Warn("history unavailable", zap.Error(err))
		} else {
			b.recorded = true
		}
	}
	p.log().Debug("build prepared", zap.String("build", b.ID), zap.Int("scripts", len(b.queue)))
	return nil
}

// Total returns the queue length.
func (b *Build) Total() int { return len(b.queue) }

// Completed returns how many scripts compiled successfully.
func (b *Build) Completed() int { return b.next }

// Queue returns a copy of the compile queue.
func (b *Build) Queue() []string { return append([]string(nil), b.queue...) }

// Peek returns the next script to compile, or "" when drained.
func (b *Build) Peek() string {
	if b.next >= len(b.queue) {
		return ""
	}
	return b.queue[b.next]
}

// Step compiles the next queued script. It reports done once the queue is
// empty. The first failure stops the batch: every later call returns
// ErrBuildFailed.
func (b *Build) Step(ctx context.Context) (bool, studiomdl.Result, error) {
	if b.failed != nil {
		return false, studiomdl.Result{}, fmt.Errorf("%w: %v", ErrBuildFailed, b.failed)
	}
	if b.next >= len(b.queue) {
		return true, studiomdl.Result{}, nil
	}
	p := b.p
	script := b.queue[b.next]
	res, err := p.Compiler.Compile(script)
	if b.recorded {
		if rerr := p.Recorder.RecordItem(ctx, b.ID, b.next+1, script, err, res.Output()); rerr != nil {
			p.log().Warn("history write failed", zap.Error(rerr))
		}
	}
	if err != nil {
		b.failed = err
		p.emit(telemetry.KindItemFailed, b.ID, script, map[string]string{"error": err.Error()})
		return false, res, err
	}
	b.next++
	p.emit(telemetry.KindItemDone, b.ID, script, map[string]int{"completed": b.next, "total": len(b.queue)})
	return false, res, nil
}

// Finish packs the compiled output, moves the archive into place, restores
// the live folder and deletes staging. It returns the archive path.
func (b *Build) Finish(ctx context.Context) (string, error) {
	if b.failed != nil {
		return "", fmt.Errorf("%w: %v", ErrBuildFailed, b.failed)
	}
	if b.next < len(b.queue) {
		return "", fmt.Errorf("%w: %d of %d compiled", ErrQueueNotDrained, b.next, len(b.queue))
	}
	p := b.p
	archive, _, err := p.Compiler.Package()
	if err != nil {
		b.failed = err
		return "", fmt.Errorf("packaging: %w", err)
	}
	p.emit(telemetry.KindPackaged, b.ID, archive, nil)
	if err := p.Area.MarkPackaged(); err != nil {
		b.failed = err
		return "", err
	}
	if err := p.Area.Complete(); err != nil {
		b.failed = err
		return "", err
	}
	if b.recorded {
		if err := p.Recorder.Finish(ctx, b.ID, archive, nil); err != nil {
			p.log().Warn("history write failed", zap.Error(err))
		}
	}
	p.emit(telemetry.KindBuildDone, b.ID, archive, nil)
	return archive, nil
}

// Abort cleans up the working area after a failure or cancellation and
// records cause. Cleanup problems are returned as warnings, never errors.
func (b *Build) Abort(ctx context.Context, cause error) []error {
	p := b.p
	if b.failed == nil {
		b.failed = cause
	}
	warnings := p.Area.Abort()
	for _, w := range warnings {
		p.emit(telemetry.KindCleanupWarning, b.ID, "", map[string]string{"warning": w.Error()})
	}
	if b.recorded {
		// cause is often ctx's own cancellation; the record must still land.
		if err := p.Recorder.Finish(context.WithoutCancel(ctx), b.ID, "", cause); err != nil {
			p.log().Warn("history write failed", zap.Error(err))
		}
		b.recorded = false
	}
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	p.emit(telemetry.KindBuildFailed, b.ID, "", map[string]string{"error": msg})
	return warnings
}

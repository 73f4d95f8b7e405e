// Package workarea owns the two temporary folders of a build: the staging
// folder next to the program and the diverted copy of the game's live models
// folder. It makes sure both are put back on success, on failure and on exit.
package workarea

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Default folder names.
const (
	DefaultStagingFolder  = "__v_customizer_temp__"
	DefaultLiveFolder     = "models"
	DefaultDivertedFolder = "__TEMP_MODELS"
)

// Options configures a Lifecycle.
type Options struct {
	Fs             afero.Fs
	StagingRoot    string
	ContentRoot    string
	LiveFolder     string // DefaultLiveFolder if empty
	DivertedFolder string // DefaultDivertedFolder if empty
	Logger         *zap.Logger
}

// Lifecycle tracks the working folders of one build. The rename-based
// diversion only excludes other users of the same Lifecycle; two processes
// sharing an install will corrupt each other.
type Lifecycle struct {
	fs          afero.Fs
	stagingRoot string
	liveDir     string
	divertedDir string
	log         *zap.Logger
	state       State
}

// New returns a Lifecycle in StateClean.
func New(opts Options) *Lifecycle {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.LiveFolder == "" {
		opts.LiveFolder = DefaultLiveFolder
	}
	if opts.DivertedFolder == "" {
		opts.DivertedFolder = DefaultDivertedFolder
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Lifecycle{
		fs:          opts.Fs,
		stagingRoot: opts.StagingRoot,
		liveDir:     filepath.Join(opts.ContentRoot, opts.LiveFolder),
		divertedDir: filepath.Join(opts.ContentRoot, opts.DivertedFolder),
		log:         opts.Logger,
	}
}

// State returns the current lifecycle state.
func (l *Lifecycle) State() State { return l.state }

// LiveDir returns the game's live models folder.
func (l *Lifecycle) LiveDir() string { return l.liveDir }

// DivertedDir returns where the live folder is parked during a build.
func (l *Lifecycle) DivertedDir() string { return l.divertedDir }

// StagingRoot returns the staging folder.
func (l *Lifecycle) StagingRoot() string { return l.stagingRoot }

func (l *Lifecycle) advance(from, to State) error {
	if l.state != from {
		return fmt.Errorf("%w: %s -> %s (currently %s)", ErrInvalidTransition, from, to, l.state)
	}
	l.log.Debug("working area", zap.Stringer("from", from), zap.Stringer("to", to))
	l.state = to
	return nil
}

// MarkStaged records that the staging folder has been populated.
func (l *Lifecycle) MarkStaged() error {
	return l.advance(StateClean, StateStaged)
}

// Divert moves the live folder aside before compilation.
func (l *Lifecycle) Divert() error {
	if l.state != StateStaged {
		return l.advance(StateStaged, StateDiverted)
	}
	if err := l.DivertLiveFolder(); err != nil {
		return err
	}
	return l.advance(StateStaged, StateDiverted)
}

// BeginCompiling records that compile units are being run.
func (l *Lifecycle) BeginCompiling() error {
	return l.advance(StateDiverted, StateCompiling)
}

// MarkPackaged records that the archive has been produced and relocated, so
// the compiled output in the live folder may be discarded.
func (l *Lifecycle) MarkPackaged() error {
	return l.advance(StateCompiling, StatePackaged)
}

// Complete restores the live folder and clears staging after a successful
// build. A failed restore moves the lifecycle to StateErrorCleanup; call
// Abort to retry.
func (l *Lifecycle) Complete() error {
	if l.state != StatePackaged {
		return l.advance(StatePackaged, StateClean)
	}
	if err := l.RestoreLiveFolder(); err != nil {
		l.state = StateErrorCleanup
		return err
	}
	if err := l.ClearStaging(); err != nil {
		l.log.Warn("failed to delete staging folder", zap.String("path", l.stagingRoot), zap.Error(err))
	}
	return l.advance(StatePackaged, StateClean)
}

// Abort cleans up from any state after a failure. It never fails; cleanup
// problems are returned as warnings.
func (l *Lifecycle) Abort() []error {
	if l.state == StateClean {
		return nil
	}
	l.log.Debug("working area", zap.Stringer("from", l.state), zap.Stringer("to", StateErrorCleanup))
	l.state = StateErrorCleanup
	warnings := l.Recover()
	l.state = StateClean
	return warnings
}

// Recover restores a pending diversion and deletes staging, logging rather
// than failing. It is safe to call at startup or exit regardless of state.
func (l *Lifecycle) Recover() []error {
	var warnings []error
	if err := l.RestoreLiveFolder(); err != nil {
		l.log.Warn("failed to restore live folder", zap.String("path", l.liveDir), zap.Error(err))
		warnings = append(warnings, err)
	}
	if err := l.ClearStaging(); err != nil {
		l.log.Warn("failed to delete staging folder", zap.String("path", l.stagingRoot), zap.Error(err))
		warnings = append(warnings, err)
	}
	return warnings
}

// DivertLiveFolder renames the live folder to the diverted name, creating an
// empty live folder first if there is none.
func (l *Lifecycle) DivertLiveFolder() error {
	if ok, _ := afero.Exists(l.fs, l.divertedDir); ok {
		return fmt.Errorf("%w: %s", ErrDiversionPending, l.divertedDir)
	}
	if ok, _ := afero.Exists(l.fs, l.liveDir); !ok {
		if err := l.fs.MkdirAll(l.liveDir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", l.liveDir, err)
		}
	}
	if err := l.fs.Rename(l.liveDir, l.divertedDir); err != nil {
		return fmt.Errorf("diverting %s: %w", l.liveDir, err)
	}
	return nil
}

// RestoreLiveFolder deletes whatever occupies the live folder and renames
// the diverted folder back. Anything written to the live folder since
// DivertLiveFolder is lost. No-op when nothing is diverted.
func (l *Lifecycle) RestoreLiveFolder() error {
	if ok, _ := afero.Exists(l.fs, l.divertedDir); !ok {
		return nil
	}
	if err := l.fs.RemoveAll(l.liveDir); err != nil {
		return fmt.Errorf("removing %s: %w", l.liveDir, err)
	}
	if err := l.fs.Rename(l.divertedDir, l.liveDir); err != nil {
		return fmt.Errorf("restoring %s: %w", l.liveDir, err)
	}
	return nil
}

// DiversionPending reports whether the live folder is currently diverted.
func (l *Lifecycle) DiversionPending() bool {
	ok, _ := afero.Exists(l.fs, l.divertedDir)
	return ok
}

// ClearStaging deletes the staging folder if present.
func (l *Lifecycle) ClearStaging() error {
	if err := l.fs.RemoveAll(l.stagingRoot); err != nil {
		return fmt.Errorf("removing %s: %w", l.stagingRoot, err)
	}
	return nil
}

package studiomdl

import (
	"errors"
	"fmt"
	"path/filepath"
)

const installHint = "program's folder has to be in your custom folder"

// Sentinel errors for tool discovery and invocation.
var (
	// ErrToolNotFound indicates studiomdl or vpk is missing from <game>/bin.
	ErrToolNotFound = errors.New("can't find build tool")
	// ErrContentRootNotFound indicates the game content folder (tf) is missing.
	ErrContentRootNotFound = errors.New("can't find tf folder")
	// ErrSpawnFailed indicates the tool could not be started at all.
	ErrSpawnFailed = errors.New("failed to start build tool")
	// ErrCompilerExitedNonZero indicates the tool ran but reported failure.
	ErrCompilerExitedNonZero = errors.New("build tool didn't exit with exit code 0")
	// ErrRelocateFailed indicates the packaged archive could not be moved to
	// its destination folder.
	ErrRelocateFailed = errors.New("failed to move archive")
)

// ExitError describes a tool run that exited with a non-zero status. It
// carries the captured output for display.
type ExitError struct {
	Tool   string // executable path
	Target string // script or folder passed to the tool
	Code   int
	Output string
}

// Error names the tool, exit code and target.
func (e *ExitError) Error() string {
	return fmt.Sprintf("%s didn't exit with exit code 0 (got %d) for %s", filepath.Base(e.Tool), e.Code, e.Target)
}

// Unwrap returns ErrCompilerExitedNonZero.
func (e *ExitError) Unwrap() error {
	return ErrCompilerExitedNonZero
}

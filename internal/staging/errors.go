package staging

import (
	"errors"
	"fmt"
)

// Sentinel errors for staging and build-script patching.
var (
	// ErrUnexpectedNesting indicates a folder inside an animation folder. The
	// library format allows exactly two levels below a class folder.
	ErrUnexpectedNesting = errors.New("folder found in an animation folder")
	// ErrScriptNotFound indicates no build script exists where one is required.
	ErrScriptNotFound = errors.New("qc file not found")
	// ErrAmbiguousScript indicates more than one build script where exactly one
	// is required.
	ErrAmbiguousScript = fmt.Errorf("%w: more than one candidate", ErrScriptNotFound)
)

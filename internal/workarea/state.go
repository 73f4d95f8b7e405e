package workarea

import "errors"

// State is a position in the working-area lifecycle.
//
//	Clean → Staged → Diverted → Compiling → Packaged → Clean
//
// ErrorCleanup is entered from any non-Clean state by Abort and always ends
// in Clean.
type State int

const (
	StateClean State = iota
	StateStaged
	StateDiverted
	StateCompiling
	StatePackaged
	StateErrorCleanup
)

var stateNames = [...]string{
	StateClean:        "clean",
	StateStaged:       "staged",
	StateDiverted:     "diverted",
	StateCompiling:    "compiling",
	StatePackaged:     "packaged",
	StateErrorCleanup: "error_cleanup",
}

// String returns the lowercase state name used in logs.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

var (
	// ErrInvalidTransition indicates a lifecycle step called out of order.
	ErrInvalidTransition = errors.New("invalid working-area transition")
	// ErrDiversionPending indicates the live folder is already diverted;
	// restore it before diverting again.
	ErrDiversionPending = errors.New("live folder already diverted")
)

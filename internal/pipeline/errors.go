package pipeline

import "errors"

var (
	// ErrNothingSelected indicates no variant carries a modified transform.
	ErrNothingSelected = errors.New("no origin is modified")
	// ErrBuildFailed indicates Step or Finish was called on a build that
	// already failed; Abort it instead.
	ErrBuildFailed = errors.New("build already failed")
	// ErrQueueNotDrained indicates Finish was called before every queued
	// script compiled.
	ErrQueueNotDrained = errors.New("compile queue not drained")
)

//go:build !windows

package studiomdl

import "syscall"

// detachedAttr places the tool in its own session so it never reads from the
// parent's controlling terminal.
func detachedAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}

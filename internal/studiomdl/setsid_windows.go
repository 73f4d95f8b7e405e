//go:build windows

package studiomdl

import "syscall"

// detachedProcess is DETACHED_PROCESS: no console window per invocation.
const detachedProcess = 0x00000008

// detachedAttr starts the tool without a console window.
func detachedAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: detachedProcess}
}

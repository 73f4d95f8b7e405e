// Package studiomdltest lays out a fake game install with shell-script
// stand-ins for studiomdl and vpk, for tests that exercise real process
// invocation.
package studiomdltest

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// Install is a fake <game> tree:
//
//	<Game>/bin/studiomdl.exe
//	<Game>/bin/vpk.exe
//	<Game>/tf/             (ContentRoot)
//	<Game>/tf/custom/vc/   (InstallDir)
type Install struct {
	Game        string
	ContentRoot string
	InstallDir  string
	Compiler    string
	Packager    string
}

// Options controls the behavior of the fake tools.
type Options struct {
	// FailScript makes studiomdl exit 1 for any script path containing it.
	FailScript string
	// FailPackage makes vpk exit 1.
	FailPackage bool
	// NoPackager omits vpk.exe.
	NoPackager bool
}

// New creates the fake install under t.TempDir. It skips the test on
// Windows, where the shell-script tools cannot run.
func New(t *testing.T, opts Options) *Install {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake build tools are shell scripts")
	}
	game := t.TempDir()
	in := &Install{
		Game:        game,
		ContentRoot: filepath.Join(game, "tf"),
		InstallDir:  filepath.Join(game, "tf", "custom", "vc"),
		Compiler:    filepath.Join(game, "bin", "studiomdl.exe"),
		Packager:    filepath.Join(game, "bin", "vpk.exe"),
	}
	for _, dir := range []string{filepath.Dir(in.Compiler), in.InstallDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("MkdirAll(%s): %v", dir, err)
		}
	}
	writeScript(t, in.Compiler, compilerScript(opts.FailScript))
	if !opts.NoPackager {
		writeScript(t, in.Packager, packagerScript(opts.FailPackage))
	}
	return in
}

// CompileLog returns the argument lines studiomdl was called with, in order.
func (in *Install) CompileLog(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(in.Game, "studiomdl.log"))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("reading compile log: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func compilerScript(failOn string) string {
	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	b.WriteString("root=\"$2\"\n")
	b.WriteString("for last; do :; done\n")
	fmt.Fprintf(&b, "echo \"$@\" >> %q\n", "$root/../studiomdl.log")
	b.WriteString("out=\"$root/models/__TEMP/0_ViewmodelCustomized\"\n")
	b.WriteString("mkdir -p \"$out\"\n")
	b.WriteString("touch \"$out/$(basename \"$last\" .qc).mdl\"\n")
	b.WriteString("echo \"compiled $last\"\n")
	if failOn != "" {
		fmt.Fprintf(&b, "case \"$last\" in *%s*) echo \"ERROR: bad qc\" >&2; exit 1;; esac\n", failOn)
	}
	b.WriteString("exit 0\n")
	return b.String()
}

func packagerScript(fail bool) string {
	if fail {
		return "#!/bin/sh\necho \"vpk: cannot pack $1\" >&2\nexit 1\n"
	}
	return "#!/bin/sh\n[ -d \"$1\" ] || { echo \"vpk: no folder $1\" >&2; exit 1; }\nprintf VPK > \"$1.vpk\"\necho \"packed $1\"\n"
}

func writeScript(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

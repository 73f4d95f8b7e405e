package studiomdl

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// The program is installed as <game>/tf/custom/<program>/, so the content
// root (tf) is two folders up and the game folder holding bin/ is three up.
const (
	contentRootDepth = 2
	gameRootDepth    = 3
)

// DefaultCompilerName is the model compiler executable inside <game>/bin.
const DefaultCompilerName = "studiomdl.exe"

// InstallDir returns the folder holding the running executable.
func InstallDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// ResolveContentRoot walks up from installDir to the game content folder.
func ResolveContentRoot(fs afero.Fs, installDir string) (string, error) {
	root := ancestor(installDir, contentRootDepth)
	if ok, _ := afero.DirExists(fs, root); !ok {
		return "", fmt.Errorf("%w, %s: %s", ErrContentRootNotFound, installHint, root)
	}
	return root, nil
}

// ResolveCompilerPath walks up from installDir to <game>/bin/studiomdl.exe.
func ResolveCompilerPath(fs afero.Fs, installDir string) (string, error) {
	path := filepath.Join(ancestor(installDir, gameRootDepth), "bin", DefaultCompilerName)
	if _, err := fs.Stat(path); err != nil {
		return "", fmt.Errorf("%w: can't find %s, %s: %s", ErrToolNotFound, DefaultCompilerName, installHint, path)
	}
	return path, nil
}

func ancestor(dir string, n int) string {
	dir = filepath.Clean(dir)
	for range n {
		dir = filepath.Dir(dir)
	}
	return dir
}

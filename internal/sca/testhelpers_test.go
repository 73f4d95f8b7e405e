package sca

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// newTestLibrary lays out a complete library in memory: every class folder
// exists, and variants lists the animation folders to create per class.
func newTestLibrary(t *testing.T, variants map[Category][]string) *Library {
	t.Helper()
	fs := afero.NewMemMapFs()
	lib := &Library{Fs: fs, Root: "/game/tf/custom/vc/SCA"}
	for _, c := range Categories() {
		dir := lib.CategoryPath(c)
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("MkdirAll(%s): %v", dir, err)
		}
		if err := afero.WriteFile(fs, filepath.Join(dir, c.Dir()+".qc"), []byte("$modelname x\n"), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		for _, v := range variants[c] {
			vd := filepath.Join(dir, v)
			if err := fs.MkdirAll(vd, 0o755); err != nil {
				t.Fatalf("MkdirAll(%s): %v", vd, err)
			}
		}
	}
	return lib
}

// Package session persists the user's origin transforms between runs in a
// small TOML file, keyed by class and animation name.
package session

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/papapumpkin/vcustomizer/internal/sca"
)

// DefaultFileName is the session file kept next to the program.
const DefaultFileName = "v_customizer.session.toml"

const currentVersion = 1

// Entry is one persisted transform.
type Entry struct {
	Class     string `toml:"class"`
	Animation string `toml:"animation"`
	sca.Transform
}

// File is the on-disk session document.
type File struct {
	Version  int     `toml:"version"`
	Variants []Entry `toml:"variant"`
}

// Load reads the session at path on fs. A missing file yields an empty
// session.
func Load(fs afero.Fs, path string) (*File, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{Version: currentVersion}, nil
		}
		return nil, fmt.Errorf("reading session file: %w", err)
	}
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing session file %s: %w", path, err)
	}
	return &f, nil
}

// Save writes the session atomically (write temp + rename).
func Save(fs afero.Fs, path string, f *File) error {
	f.Version = currentVersion
	data, err := toml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating session folder: %w", err)
	}
	tmp := path + ".tmp"
	if err := afero.WriteFile(fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing temp session file: %w", err)
	}
	if err := fs.Rename(tmp, path); err != nil {
		_ = fs.Remove(tmp)
		return fmt.Errorf("renaming session file: %w", err)
	}
	return nil
}

// FromCatalog captures every modified variant of cat.
func FromCatalog(cat *sca.Catalog) *File {
	f := &File{Version: currentVersion}
	for _, cv := range cat.Selected() {
		for _, v := range cv.Selected() {
			f.Variants = append(f.Variants, Entry{Class: cv.Category.String(), Animation: v.Name, Transform: v.Transform})
		}
	}
	return f
}

// Apply copies the stored transforms onto cat and returns the entries that
// no longer match a class or animation in the library.
func (f *File) Apply(cat *sca.Catalog) []Entry {
	var stale []Entry
	for _, e := range f.Variants {
		c, err := sca.ParseCategory(e.Class)
		if err != nil || !cat.Set(c, e.Animation, e.Transform) {
			stale = append(stale, e)
		}
	}
	return stale
}

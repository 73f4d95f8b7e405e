package sca

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Library is the SCA template folder on disk.
type Library struct {
	Fs   afero.Fs
	Root string
}

// NewLibrary returns a Library rooted at root on the OS filesystem.
func NewLibrary(root string) *Library {
	return &Library{Fs: afero.NewOsFs(), Root: root}
}

// CategoryPath returns the folder of c inside the library.
func (l *Library) CategoryPath(c Category) string {
	return filepath.Join(l.Root, c.Dir())
}

// ValidateLayout checks that the root and all nine class folders exist.
// A failure leaves the library unusable for the session.
func (l *Library) ValidateLayout() error {
	ok, err := afero.IsDir(l.Fs, l.Root)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("checking %s: %w", l.Root, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingLibraryRoot, l.Root)
	}
	for _, c := range Categories() {
		ok, err := afero.IsDir(l.Fs, l.CategoryPath(c))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("checking %s: %w", l.CategoryPath(c), err)
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingCategoryFolder, c)
		}
	}
	return nil
}

// BuildCatalog scans each class folder and creates one zero-transform
// Variant per immediate subdirectory. Plain files are ignored. Variant order
// follows directory enumeration and is not guaranteed to be sorted.
func (l *Library) BuildCatalog() (*Catalog, error) {
	if ok, _ := afero.DirExists(l.Fs, l.Root); !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingLibraryRoot, l.Root)
	}
	cat := &Catalog{Entries: make([]CategoryVariants, 0, numCategories)}
	for _, c := range Categories() {
		entries, err := afero.ReadDir(l.Fs, l.CategoryPath(c))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", l.CategoryPath(c), err)
		}
		cv := CategoryVariants{Category: c}
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			cv.Variants = append(cv.Variants, Variant{Name: e.Name()})
		}
		cat.Entries = append(cat.Entries, cv)
	}
	return cat, nil
}

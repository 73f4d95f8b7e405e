// Package staging copies selected parts of the SCA library into a disposable
// working folder and rewrites the copied build scripts there.
package staging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/papapumpkin/vcustomizer/internal/sca"
)

// Stager copies the selected classes of a library into Root.
type Stager struct {
	Fs      afero.Fs
	Library string // SCA root
	Root    string // staging root
}

// ClassDir returns the staged folder of c.
func (s *Stager) ClassDir(c sca.Category) string {
	return filepath.Join(s.Root, c.Dir())
}

// VariantDir returns the staged folder of one animation variant.
func (s *Stager) VariantDir(c sca.Category, variant string) string {
	return filepath.Join(s.Root, c.Dir(), variant)
}

// Stage copies every selected class folder of cat into the staging root,
// mirroring the class → animation → files shape. A class folder that already
// exists in the staging root is an error; clear staging before retrying.
// Partial copies are left in place on failure.
func (s *Stager) Stage(cat *sca.Catalog) error {
	if err := s.Fs.MkdirAll(s.Root, 0o755); err != nil {
		return fmt.Errorf("creating staging folder: %w", err)
	}
	for _, cv := range cat.Selected() {
		if err := s.stageClass(cv.Category); err != nil {
			return err
		}
	}
	return nil
}

func (s *Stager) stageClass(c sca.Category) error {
	src := filepath.Join(s.Library, c.Dir())
	dst := s.ClassDir(c)
	if err := s.Fs.Mkdir(dst, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	entries, err := afero.ReadDir(s.Fs, src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	for _, e := range entries {
		from := filepath.Join(src, e.Name())
		to := filepath.Join(dst, e.Name())
		if !e.IsDir() {
			if err := s.copyFile(from, to, e.Mode()); err != nil {
				return err
			}
			continue
		}
		if err := s.stageVariant(from, to); err != nil {
			return err
		}
	}
	return nil
}

func (s *Stager) stageVariant(src, dst string) error {
	if err := s.Fs.Mkdir(dst, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	entries, err := afero.ReadDir(s.Fs, src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	for _, e := range entries {
		from := filepath.Join(src, e.Name())
		if e.IsDir() {
			return fmt.Errorf("%w: %s", ErrUnexpectedNesting, from)
		}
		if err := s.copyFile(from, filepath.Join(dst, e.Name()), e.Mode()); err != nil {
			return err
		}
	}
	return nil
}

func (s *Stager) copyFile(src, dst string, mode os.FileMode) error {
	in, err := s.Fs.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := s.Fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dst, err)
	}
	return nil
}

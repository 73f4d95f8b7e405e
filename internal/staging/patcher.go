package staging

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/papapumpkin/vcustomizer/internal/sca"
)

// DefaultScriptExt is the extension of studiomdl build scripts.
const DefaultScriptExt = ".qc"

// Patcher prepends origin directives to staged build scripts.
type Patcher struct {
	Stager    *Stager
	Ext       string // build script extension, DefaultScriptExt if empty
	Directive string // directive keyword, sca.DefaultDirective if empty
}

func (p *Patcher) ext() string {
	if p.Ext == "" {
		return DefaultScriptExt
	}
	return p.Ext
}

func (p *Patcher) directive() string {
	if p.Directive == "" {
		return sca.DefaultDirective
	}
	return p.Directive
}

// Patch rewrites the staged build script of one variant as
// "<directive> x y z zrot\n" followed by the original content.
func (p *Patcher) Patch(c sca.Category, v sca.Variant) error {
	script, err := FindScript(p.Stager.Fs, p.Stager.VariantDir(c, v.Name), p.ext())
	if err != nil {
		return err
	}
	orig, err := afero.ReadFile(p.Stager.Fs, script)
	if err != nil {
		return fmt.Errorf("reading %s: %w", script, err)
	}
	content := v.Transform.Directive(p.directive()) + string(orig)
	if err := afero.WriteFile(p.Stager.Fs, script, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", script, err)
	}
	return nil
}

// PatchSelected patches every modified variant of cat. Unmodified variants
// keep their scripts untouched.
func (p *Patcher) PatchSelected(cat *sca.Catalog) (int, error) {
	n := 0
	for _, cv := range cat.Selected() {
		for _, v := range cv.Selected() {
			if err := p.Patch(cv.Category, v); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

// Scripts lists the compile units for cat: the per-animation scripts of the
// selected classes (only modified variants when onlyModified is set),
// followed by one class-level script per selected class.
func (p *Patcher) Scripts(cat *sca.Catalog, onlyModified bool) ([]string, error) {
	selected := cat.Selected()
	var anims, classes []string
	for _, cv := range selected {
		variants := cv.Variants
		if onlyModified {
			variants = cv.Selected()
		}
		for _, v := range variants {
			script, err := FindScript(p.Stager.Fs, p.Stager.VariantDir(cv.Category, v.Name), p.ext())
			if err != nil {
				return nil, err
			}
			anims = append(anims, script)
		}
	}
	for _, cv := range selected {
		script, err := FindScript(p.Stager.Fs, p.Stager.ClassDir(cv.Category), p.ext())
		if err != nil {
			return nil, err
		}
		classes = append(classes, script)
	}
	return append(anims, classes...), nil
}

// FindScript returns the single file with extension ext directly inside dir.
func FindScript(fs afero.Fs, dir, ext string) (string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", dir, err)
	}
	var found []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ext) {
			continue
		}
		found = append(found, filepath.Join(dir, e.Name()))
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("%w in %s", ErrScriptNotFound, dir)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("%w in %s: %s", ErrAmbiguousScript, dir, strings.Join(found, ", "))
	}
}

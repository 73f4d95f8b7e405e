package arch_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	maxFilesPerPackage = 20
	maxLinesPerFile    = 400
)

// TestPackageAndFileSize keeps packages under maxFilesPerPackage source
// files and every .go file, tests included, under maxLinesPerFile lines.
func TestPackageAndFileSize(t *testing.T) {
	t.Parallel()

	dir := internalDirPath(t)
	for _, pkg := range internalPackages(t) {
		pkgDir := filepath.Join(dir, pkg)
		if n := len(goFilesIn(t, pkgDir, false)); n > maxFilesPerPackage {
			t.Errorf("package %s has %d .go files (limit: %d); consider splitting", pkg, n, maxFilesPerPackage)
		}
		for _, file := range goFilesIn(t, pkgDir, true) {
			if isGenerated(t, file) {
				continue
			}
			data, err := os.ReadFile(file)
			if err != nil {
				t.Fatalf("reading %s: %v", file, err)
			}
			if n := strings.Count(string(data), "\n"); n > maxLinesPerFile {
				t.Errorf("%s/%s has %d lines (limit: %d); consider decomposing", pkg, filepath.Base(file), n, maxLinesPerFile)
			}
		}
	}
}

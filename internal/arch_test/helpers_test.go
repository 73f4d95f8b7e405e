// Package arch_test holds repository-wide structure checks: import layering,
// GoDoc coverage, package-level state and file sizes.
package arch_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"
)

const internalPfx = "github.com/papapumpkin/vcustomizer/internal/"

// internalDirPath returns the absolute path of internal/, found relative to
// this source file.
func internalDirPath(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	return filepath.Dir(filepath.Dir(thisFile))
}

// internalPackages lists the top-level packages under internal/ that hold
// Go source, excluding arch_test.
func internalPackages(t *testing.T) []string {
	t.Helper()
	dir := internalDirPath(t)
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading %s: %v", dir, err)
	}
	var pkgs []string
	for _, e := range entries {
		if !e.IsDir() || e.Name() == "arch_test" {
			continue
		}
		if len(goFilesIn(t, filepath.Join(dir, e.Name()), false)) > 0 {
			pkgs = append(pkgs, e.Name())
		}
	}
	sort.Strings(pkgs)
	return pkgs
}

// goFilesIn returns the .go files of dir, sorted. Test files are included
// only when withTests is set.
func goFilesIn(t *testing.T, dir string, withTests bool) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading directory %s: %v", dir, err)
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}
		if !withTests && strings.HasSuffix(name, "_test.go") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files
}

// importsOf returns the internal packages imported by the non-test files of
// pkgDir, by first path element ("studiomdl/studiomdltest" counts as
// "studiomdl").
func importsOf(t *testing.T, pkgDir string) []string {
	t.Helper()
	seen := make(map[string]bool)
	fset := token.NewFileSet()
	for _, f := range goFilesIn(t, pkgDir, false) {
		node, err := parser.ParseFile(fset, f, nil, parser.ImportsOnly)
		if err != nil {
			t.Fatalf("parsing imports in %s: %v", f, err)
		}
		for _, imp := range node.Imports {
			path := strings.Trim(imp.Path.Value, `"`)
			rel, ok := strings.CutPrefix(path, internalPfx)
			if !ok {
				continue
			}
			if i := strings.Index(rel, "/"); i != -1 {
				rel = rel[:i]
			}
			seen[rel] = true
		}
	}
	out := make([]string, 0, len(seen))
	for pkg := range seen {
		out = append(out, pkg)
	}
	sort.Strings(out)
	return out
}

func isGenerated(t *testing.T, filePath string) bool {
	t.Helper()
	data, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("reading %s: %v", filePath, err)
	}
	first, _, _ := strings.Cut(string(data), "\n")
	return strings.HasPrefix(first, "// Code generated")
}

func TestHelpers(t *testing.T) {
	t.Parallel()

	pkgs := internalPackages(t)
	for _, want := range []string{"pipeline", "sca", "staging", "studiomdl", "workarea"} {
		if !contains(pkgs, want) {
			t.Errorf("internalPackages() = %v, missing %q", pkgs, want)
		}
	}
	if contains(pkgs, "arch_test") {
		t.Error("internalPackages() must skip arch_test")
	}

	imports := importsOf(t, filepath.Join(internalDirPath(t), "pipeline"))
	if !contains(imports, "studiomdl") || !contains(imports, "workarea") {
		t.Errorf("importsOf(pipeline) = %v, want studiomdl and workarea", imports)
	}

	if !isGenerated(t, filepath.Join(internalDirPath(t), "sca", "category_string.go")) {
		t.Error("category_string.go should be detected as generated")
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

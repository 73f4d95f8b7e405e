package arch_test

import (
	"path/filepath"
	"testing"
)

// layers assigns each internal package to a numeric layer. A package at
// layer N may only import packages at layer N or below.
var layers = map[string]int{
	"logging":   0,
	"sca":       0,
	"telemetry": 0,

	"config":    1,
	"history":   1,
	"session":   1,
	"staging":   1,
	"studiomdl": 1,
	"watch":     1,
	"workarea":  1,

	"pipeline": 2,

	"ui": 3,
}

// TestDependencyLayering verifies that no internal package imports a package
// from a higher layer.
func TestDependencyLayering(t *testing.T) {
	t.Parallel()

	dir := internalDirPath(t)
	for _, pkg := range internalPackages(t) {
		importer, ok := layers[pkg]
		if !ok {
			continue // reported by TestNoUnknownPackages
		}
		for _, imp := range importsOf(t, filepath.Join(dir, pkg)) {
			if imported, ok := layers[imp]; ok && imported > importer {
				t.Errorf("layer violation: %s (layer %d) imports %s (layer %d)", pkg, importer, imp, imported)
			}
		}
	}
}

// TestNoUnknownPackages forces every new internal package into the layer map.
func TestNoUnknownPackages(t *testing.T) {
	t.Parallel()

	for _, pkg := range internalPackages(t) {
		if _, ok := layers[pkg]; !ok {
			t.Errorf("package %s has no layer assignment; add it to the layers map", pkg)
		}
	}
}

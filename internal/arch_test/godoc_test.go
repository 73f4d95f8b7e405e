package arch_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
	"testing"
)

// docExemptions lists exported symbols that intentionally lack GoDoc.
var docExemptions = map[string][]string{
	// Typed iota constants whose parent type is documented.
	"sca": {"Scout", "Soldier", "Pyro", "Demo", "Heavy", "Engineer", "Medic", "Sniper", "Spy"},
	"workarea": {
		"StateClean", "StateStaged", "StateDiverted",
		"StateCompiling", "StatePackaged", "StateErrorCleanup",
	},
}

// TestExportedSymbolsHaveGoDoc verifies that exported declarations carry a
// doc comment starting with their name. In grouped const/var blocks a block
// comment or an inline comment is enough.
func TestExportedSymbolsHaveGoDoc(t *testing.T) {
	t.Parallel()

	for _, pkg := range internalPackages(t) {
		t.Run(pkg, func(t *testing.T) {
			t.Parallel()

			exempt := make(map[string]bool)
			for _, name := range docExemptions[pkg] {
				exempt[name] = true
			}
			for _, file := range goFilesIn(t, filepath.Join(internalDirPath(t), pkg), false) {
				if isGenerated(t, file) {
					continue
				}
				for _, miss := range undocumented(t, file) {
					if !exempt[miss] {
						t.Errorf("%s: exported %s has no GoDoc comment", filepath.Base(file), miss)
					}
				}
			}
		})
	}
}

func undocumented(t *testing.T, file string) []string {
	t.Helper()
	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, file, nil, parser.ParseComments)
	if err != nil {
		t.Fatalf("parsing %s: %v", file, err)
	}

	var missing []string
	for _, decl := range node.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if !d.Name.IsExported() || (d.Recv != nil && !exportedRecv(d.Recv.List[0].Type)) {
				continue
			}
			if !startsWith(d.Doc, d.Name.Name) {
				missing = append(missing, d.Name.Name)
			}
		case *ast.GenDecl:
			grouped := len(d.Specs) > 1
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					if s.Name.IsExported() && !startsWith(s.Doc, s.Name.Name) && !startsWith(d.Doc, s.Name.Name) {
						missing = append(missing, s.Name.Name)
					}
				case *ast.ValueSpec:
					for _, name := range s.Names {
						if !name.IsExported() {
							continue
						}
						if grouped && (d.Doc != nil || s.Comment != nil || startsWith(s.Doc, name.Name)) {
							continue
						}
						if !grouped && (startsWith(s.Doc, name.Name) || startsWith(d.Doc, name.Name)) {
							continue
						}
						missing = append(missing, name.Name)
					}
				}
			}
		}
	}
	return missing
}

func startsWith(doc *ast.CommentGroup, name string) bool {
	return doc != nil && strings.HasPrefix(strings.TrimSpace(doc.Text()), name)
}

func exportedRecv(expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.IsExported()
	case *ast.StarExpr:
		return exportedRecv(e.X)
	case *ast.IndexExpr:
		return exportedRecv(e.X)
	}
	return false
}

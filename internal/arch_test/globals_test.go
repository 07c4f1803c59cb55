package arch_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
	"testing"
)

// allowedGlobals lists package-level vars that are constant after init but
// escape the detection heuristics.
var allowedGlobals = map[string][]string{
	// go:embed target, written only by the compiler.
	"catalog": {"janyaTOML"},
	// strings.Replacer is safe for concurrent use and never reassigned.
	"fuzzy": {"digraphs"},
	// Reverse lookup built once from the labels table.
	"swara": {"byText"},
}

// allowedGlobalPrefixes treats every var with one of these prefixes as
// constant-like: lipgloss styles (styleXxx) and colors (colorXxx).
var allowedGlobalPrefixes = map[string][]string{
	"tui": {"style", "color"},
}

// packageVar is one name bound by a package-level var declaration.
type packageVar struct {
	Name  string
	Type  ast.Expr // nil when inferred
	Value ast.Expr // nil when declared without initializer
}

// packageVars returns every package-level var in the parsed file.
func packageVars(node *ast.File) []packageVar {
	var vars []packageVar
	for _, decl := range node.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.VAR {
			continue
		}
		for _, spec := range gd.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			for i, name := range vs.Names {
				v := packageVar{Name: name.Name, Type: vs.Type}
				if i < len(vs.Values) {
					v.Value = vs.Values[i]
				}
				vars = append(vars, v)
			}
		}
	}
	return vars
}

// constantLike reports whether v falls into one of the accepted categories:
// compile-time interface checks, error sentinels, regexp.MustCompile, sync or
// atomic primitives, basic literals, and composite literal tables.
func constantLike(v packageVar) bool {
	if v.Name == "_" {
		return true
	}
	if id, ok := v.Type.(*ast.Ident); ok && id.Name == "error" {
		return true
	}
	if pkg, _ := selector(v.Type); pkg == "sync" || pkg == "atomic" {
		return true
	}
	switch val := v.Value.(type) {
	case *ast.BasicLit, *ast.CompositeLit:
		return true
	case *ast.CallExpr:
		switch pkg, fn := selector(val.Fun); {
		case pkg == "errors" && fn == "New",
			pkg == "fmt" && fn == "Errorf",
			pkg == "regexp" && fn == "MustCompile":
			return true
		}
	}
	return false
}

// selector splits a pkg.Name expression; both results are empty otherwise.
func selector(expr ast.Expr) (pkg, name string) {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok {
		return "", ""
	}
	id, ok := sel.X.(*ast.Ident)
	if !ok {
		return "", ""
	}
	return id.Name, sel.Sel.Name
}

func parseVars(t *testing.T, filePath string, src any) []packageVar {
	t.Helper()
	node, err := parser.ParseFile(token.NewFileSet(), filePath, src, 0)
	if err != nil {
		t.Fatalf("parsing %s: %v", filePath, err)
	}
	return packageVars(node)
}

// TestNoMutableGlobalState flags package-level vars that are neither
// constant-like nor explicitly allowed. Shared state belongs in values passed
// to constructors.
func TestNoMutableGlobalState(t *testing.T) {
	t.Parallel()

	dir := internalDirPath(t)

	for _, pkg := range internalPackages(t) {
		t.Run(pkg, func(t *testing.T) {
			t.Parallel()

			allowed := make(map[string]bool)
			for _, n := range allowedGlobals[pkg] {
				allowed[n] = true
			}

			for _, f := range goFilesIn(t, filepath.Join(dir, pkg)) {
				for _, v := range parseVars(t, f, nil) {
					if allowed[v.Name] || hasAllowedPrefix(v.Name, allowedGlobalPrefixes[pkg]) || constantLike(v) {
						continue
					}
					t.Errorf("mutable global state in %s: var %s; pass it through a constructor instead",
						filepath.Base(f), v.Name)
				}
			}
		})
	}
}

func hasAllowedPrefix(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// TestAllowedGlobalsAreUsed catches stale allowlist entries.
func TestAllowedGlobalsAreUsed(t *testing.T) {
	t.Parallel()

	dir := internalDirPath(t)

	for pkg, names := range allowedGlobals {
		t.Run(pkg, func(t *testing.T) {
			t.Parallel()

			files := goFilesIn(t, filepath.Join(dir, pkg))
			if len(files) == 0 {
				t.Fatalf("no .go files found for allowlisted package %q", pkg)
			}
			declared := make(map[string]bool)
			for _, f := range files {
				for _, v := range parseVars(t, f, nil) {
					declared[v.Name] = true
				}
			}
			for _, name := range names {
				if !declared[name] {
					t.Errorf("allowedGlobals[%q] lists %q but no such var exists", pkg, name)
				}
			}
		})
	}
}

func TestConstantLike(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"errors_new", `package p; import "errors"; var ErrFoo = errors.New("foo")`, true},
		{"fmt_errorf", `package p; import "fmt"; var ErrBar = fmt.Errorf("bar: %w", nil)`, true},
		{"typed_error", `package p; var ErrNil error`, true},
		{"interface_check", `package p; type I interface{}; type S struct{}; var _ I = (*S)(nil)`, true},
		{"regexp", `package p; import "regexp"; var re = regexp.MustCompile("^S")`, true},
		{"sync_once", `package p; import "sync"; var once sync.Once`, true},
		{"string_literal", `package p; var tonic = "S"`, true},
		{"array_table", `package p; var families = [7]string{"S", "R", "G", "M", "P", "D", "N"}`, true},
		{"map_table", `package p; var ambiguous = map[int]bool{2: true, 3: true}`, true},
		{"make_map", `package p; var cache = make(map[string]string)`, false},
		{"make_slice", `package p; var buf = make([]byte, 1024)`, false},
		{"make_chan", `package p; var ch = make(chan int)`, false},
		{"func_call", `package p; import "strings"; var r = strings.NewReplacer("sh", "s")`, false},
		{"bare_slice", `package p; var names []string`, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			vars := parseVars(t, "p.go", tc.src)
			if len(vars) == 0 {
				t.Fatal("no vars parsed")
			}
			for _, v := range vars {
				if got := constantLike(v); got != tc.want {
					t.Errorf("constantLike(%s) = %v, want %v", v.Name, got, tc.want)
				}
			}
		})
	}
}

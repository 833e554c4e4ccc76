package goast

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"sort"

	"golang.org/x/tools/go/packages"

	"github.com/sirkon/opana/ir"
)

// Config controls module loading.
type Config struct {
	// Name labels the root operation. Defaults to "source".
	Name string

	// Dir is the working directory of the underlying build system
	// queries. Empty means the current one.
	Dir string

	// Tests includes test packages into the tree.
	Tests bool
}

// Load builds an operation tree over the Go packages matched by patterns,
// resolved through the build system.
func Load(cfg Config, patterns ...string) (*Module, error) {
	pcfg := &packages.Config{
		Mode:  packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
		Dir:   cfg.Dir,
		Tests: cfg.Tests,
		Fset:  token.NewFileSet(),
	}

	pkgs, err := packages.Load(pcfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}

	for _, pkg := range pkgs {
		for _, perr := range pkg.Errors {
			return nil, fmt.Errorf("load package %s: %s", pkg.PkgPath, perr.Msg)
		}
	}

	mod := newModule(cfg.Name, pcfg.Fset)
	for _, pkg := range pkgs {
		mod.addPackage(pkg.PkgPath, pkg.Syntax)
	}

	return mod, nil
}

// ParseSource builds an operation tree over in-memory files, file name to
// source text. It needs no build system and groups files by their package
// clause. Meant for tests and tools that already hold sources at hand.
func ParseSource(name string, files map[string]string) (*Module, error) {
	fset := token.NewFileSet()

	names := make([]string, 0, len(files))
	for fname := range files {
		names = append(names, fname)
	}
	sort.Strings(names)

	byPkg := map[string][]*ast.File{}
	var pkgOrder []string
	for _, fname := range names {
		file, err := parser.ParseFile(fset, fname, files[fname], parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", fname, err)
		}

		pkgName := file.Name.Name
		if _, ok := byPkg[pkgName]; !ok {
			pkgOrder = append(pkgOrder, pkgName)
		}
		byPkg[pkgName] = append(byPkg[pkgName], file)
	}

	mod := newModule(name, fset)
	for _, pkgName := range pkgOrder {
		mod.addPackage(pkgName, byPkg[pkgName])
	}

	return mod, nil
}

func newModule(name string, fset *token.FileSet) *Module {
	if name == "" {
		name = "source"
	}
	return &Module{
		name:  name,
		fset:  fset,
		index: ir.NewSpanIndex(),
	}
}

// addPackage wires parsed files into the tree and registers file and
// function spans in the module index. Files must be added before their
// functions so the index resolves containment properly.
func (m *Module) addPackage(path string, files []*ast.File) {
	pkg := &Package{parent: m, path: path}

	for _, file := range files {
		fop := &File{
			parent: pkg,
			name:   filepath.Base(m.fset.Position(file.Pos()).Filename),
			file:   file,
		}
		m.index.Add(fop, ir.Span{Start: file.Pos(), End: file.End()})

		for _, decl := range file.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok {
				continue
			}

			fn := &Func{parent: fop, decl: fd}
			m.index.Add(fn, ir.Span{Start: fd.Pos(), End: fd.End()})
			fop.funcs = append(fop.funcs, fn)
		}

		pkg.files = append(pkg.files, fop)
	}

	m.packages = append(m.packages, pkg)
}

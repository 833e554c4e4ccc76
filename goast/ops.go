package goast

import (
	"go/ast"
	"go/token"

	"github.com/sirkon/opana/ir"
)

// Module is the root operation of a loaded source tree.
type Module struct {
	name     string
	packages []*Package

	fset  *token.FileSet
	index *ir.SpanIndex
}

var _ ir.Container = (*Module)(nil)

func (m *Module) OpName() string { return "module " + m.name }

func (m *Module) Parent() ir.Operation { return nil }

func (m *Module) Children() []ir.Operation {
	ops := make([]ir.Operation, len(m.packages))
	for i, p := range m.packages {
		ops[i] = p
	}
	return ops
}

// Packages returns the loaded package operations.
func (m *Module) Packages() []*Package { return m.packages }

// Fset returns the file set every span of the module is relative to.
func (m *Module) Fset() *token.FileSet { return m.fset }

// OperationAt returns the innermost operation covering pos, nil when pos
// hits no loaded file.
func (m *Module) OperationAt(pos token.Pos) ir.Operation {
	return m.index.At(pos)
}

// Package wraps one Go package of the module.
type Package struct {
	parent *Module
	path   string
	files  []*File
}

var _ ir.Container = (*Package)(nil)

func (p *Package) OpName() string { return "package " + p.path }

func (p *Package) Parent() ir.Operation { return p.parent }

func (p *Package) Children() []ir.Operation {
	ops := make([]ir.Operation, len(p.files))
	for i, f := range p.files {
		ops[i] = f
	}
	return ops
}

// Path returns the package import path, or its name when the module was
// built from in-memory sources.
func (p *Package) Path() string { return p.path }

// Files returns the file operations of the package.
func (p *Package) Files() []*File { return p.files }

// File wraps a single parsed source file.
type File struct {
	parent *Package
	name   string
	file   *ast.File
	funcs  []*Func
}

var _ ir.Container = (*File)(nil)

func (f *File) OpName() string { return "file " + f.name }

func (f *File) Parent() ir.Operation { return f.parent }

func (f *File) Children() []ir.Operation {
	ops := make([]ir.Operation, len(f.funcs))
	for i, fn := range f.funcs {
		ops[i] = fn
	}
	return ops
}

// Name returns the base name of the file.
func (f *File) Name() string { return f.name }

// AST returns the parsed file.
func (f *File) AST() *ast.File { return f.file }

// Funcs returns the function operations declared in the file.
func (f *File) Funcs() []*Func { return f.funcs }

// Func wraps one function declaration.
type Func struct {
	parent *File
	decl   *ast.FuncDecl
}

var _ ir.Operation = (*Func)(nil)

func (f *Func) OpName() string { return "func " + f.decl.Name.Name }

func (f *Func) Parent() ir.Operation { return f.parent }

// Decl returns the declaration node.
func (f *Func) Decl() *ast.FuncDecl { return f.decl }

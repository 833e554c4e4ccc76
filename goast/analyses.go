package goast

import (
	"go/ast"
	"sort"

	"golang.org/x/tools/go/ast/inspector"

	"github.com/sirkon/opana"
	"github.com/sirkon/opana/ir"
)

// FuncIndex lists the functions declared in one file. It is bound to File
// operations, request it with opana.GetTyped.
type FuncIndex struct {
	Funcs []FuncInfo
}

// FuncInfo describes a single declaration found by FuncIndex.
type FuncInfo struct {
	Name     string
	Receiver string
	Exported bool
}

func (x *FuncIndex) ComputeTyped(f *File) error {
	pector := inspector.New([]*ast.File{f.file})

	nodeFilter := []ast.Node{
		(*ast.FuncDecl)(nil),
	}

	pector.Preorder(nodeFilter, func(node ast.Node) {
		decl := node.(*ast.FuncDecl) // No need to assert check since we only get func decls.

		info := FuncInfo{
			Name:     decl.Name.Name,
			Exported: decl.Name.IsExported(),
		}
		if decl.Recv != nil && len(decl.Recv.List) > 0 {
			info.Receiver = receiverName(decl.Recv.List[0].Type)
		}
		x.Funcs = append(x.Funcs, info)
	})

	return nil
}

func receiverName(expr ast.Expr) string {
	switch v := expr.(type) {
	case *ast.Ident:
		return v.Name
	case *ast.StarExpr:
		return receiverName(v.X)
	case *ast.IndexExpr:
		return receiverName(v.X)
	case *ast.IndexListExpr:
		return receiverName(v.X)
	default:
		return ""
	}
}

// OpCount counts the operations of the subtree rooted at the requested
// one, itself included. Works on any operation.
type OpCount struct {
	Total  int
	Leaves int
}

func (c *OpCount) Compute(op ir.Operation) error {
	c.walk(op)
	return nil
}

func (c *OpCount) walk(op ir.Operation) {
	c.Total++

	box, ok := op.(ir.Container)
	if !ok || len(box.Children()) == 0 {
		c.Leaves++
		return
	}
	for _, child := range box.Children() {
		c.walk(child)
	}
}

// ExportedAPI is the exported free-function surface of one package. It is
// derived from the same declarations FuncIndex indexes, so it carries a
// custom invalidation rule: it survives a pass only while FuncIndex does
// too.
type ExportedAPI struct {
	Funcs []string
}

func (a *ExportedAPI) ComputeTyped(p *Package) error {
	for _, f := range p.files {
		for _, fn := range f.funcs {
			name := fn.decl.Name
			if !name.IsExported() || fn.decl.Recv != nil {
				continue
			}
			a.Funcs = append(a.Funcs, name.Name)
		}
	}
	sort.Strings(a.Funcs)

	return nil
}

func (a *ExportedAPI) IsInvalidated(pa *opana.PreservedAnalyses) bool {
	return !opana.IsPreserved[ExportedAPI](pa) || !opana.IsPreserved[FuncIndex](pa)
}

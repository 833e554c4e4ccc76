package ir

import "go/token"

// Span is a [Start, End] range of positions an operation covers in its
// source.
type Span struct {
	Start token.Pos
	End   token.Pos
}

// Op is a ready-made operation tree node for building representation trees
// by hand, in tests and small adapters.
type Op struct {
	name     string
	parent   Operation
	children []Operation
	span     Span
}

// NewOp creates a root operation with the given name.
func NewOp(name string) *Op {
	return &Op{name: name}
}

// NewChild creates an operation nested in o and returns it.
func (o *Op) NewChild(name string) *Op {
	child := &Op{name: name, parent: o}
	o.children = append(o.children, child)
	return child
}

func (o *Op) OpName() string { return o.name }

func (o *Op) Parent() Operation { return o.parent }

func (o *Op) Children() []Operation { return o.children }

// SetSpan records the source range the operation covers.
func (o *Op) SetSpan(s Span) { o.span = s }

// Span returns the range recorded with SetSpan, zero value if none was.
func (o *Op) Span() Span { return o.span }

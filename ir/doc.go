// Package ir defines the operation tree the analysis manager attaches its
// caches to.
//
// An operation is one node of a hierarchical program representation. The
// package fixes only what the manager needs from it: stable identity,
// upward navigation and, through Go type assertions, narrowing to a more
// specific operation type. Everything else — what operations mean, how they
// are produced — belongs to adapters such as the goast package.
//
// Core components:
//
//   - Operation
//     The minimal collaborator interface: a kind name and a parent link.
//
//   - Container
//     Optional downward navigation for analyses that traverse subtrees.
//
//   - Op
//     A ready-made mutable tree node for building representations by hand.
//
//   - SpanIndex
//     Maps source positions to the innermost operation covering them.
package ir

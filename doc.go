// Package opana implements lazy computation, caching and invalidation of
// per-operation analyses for a pass infrastructure over a hierarchical
// program representation.
//
// A Root owns the analysis tree of one top-level operation. Passes hold
// AnalysisManager handles over its nodes, request analyses with Get and its
// variants, descend into child operations with Nest, and after running
// declare what survived through a PreservedAnalyses set; Invalidate then
// prunes everything not covered by the declaration.
//
// The cache tree mirrors only the visited part of the operation tree:
// a node exists once some query descended into its operation, never before.
//
// The package does no locking of its own. Handles over disjoint, already
// materialized subtrees may be used concurrently; anything that could touch
// a shared node must be serialized by the caller.
package opana

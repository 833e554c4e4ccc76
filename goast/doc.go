// Package goast materializes an operation tree over real Go source code so
// analyses managed by the opana package have something to chew on.
//
// The tree is Module -> Package -> File -> Func. Modules come either from
// the build system via Load or from in-memory sources via ParseSource. File
// and function operations register their source ranges in a module-wide
// position index, see Module.OperationAt.
//
// The package also ships a few analyses over this tree: FuncIndex, OpCount
// and ExportedAPI. They double as real usage examples of the manager's
// generic entry points, including subtype-bound construction and custom
// invalidation rules.
package goast

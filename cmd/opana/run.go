package main

import (
	"fmt"
	"log/slog"

	"github.com/sirkon/opana"
	"github.com/sirkon/opana/goast"
)

// run loads the matched packages, computes the configured analyses through
// a fresh analysis tree, then invalidates with the configured preserved set
// and reports what stayed cached.
func run(logger *slog.Logger, cfg *Config, dir string, patterns []string) error {
	mod, err := goast.Load(goast.Config{Dir: dir, Tests: cfg.Tests}, patterns...)
	if err != nil {
		return fmt.Errorf("load sources: %w", err)
	}

	rec := &opana.Recorder{}
	root := opana.NewRoot(mod, rec)
	am := root.Manager()

	for _, pkg := range mod.Packages() {
		for _, kind := range cfg.Analyses {
			if err := computeOne(logger, am, pkg, kind); err != nil {
				return fmt.Errorf("compute %s for %s: %w", kind, pkg.Path(), err)
			}
		}
	}
	logger.Info("analyses computed", "constructions", rec.Constructions())

	var pa opana.PreservedAnalyses
	for _, kind := range cfg.Preserve {
		switch kind {
		case AnalysisKindFuncIndex:
			opana.Preserve[goast.FuncIndex](&pa)
		case AnalysisKindOpCount:
			opana.Preserve[goast.OpCount](&pa)
		case AnalysisKindExports:
			opana.Preserve[goast.ExportedAPI](&pa)
		}
	}
	am.Invalidate(&pa)

	for _, pkg := range mod.Packages() {
		pm := am.Nest(pkg)
		for _, kind := range cfg.Analyses {
			logger.Info("cache state after invalidation",
				"package", pkg.Path(),
				"analysis", kind.String(),
				"cached", stillCached(pm, pkg, kind),
			)
		}
	}

	return nil
}

func computeOne(logger *slog.Logger, am opana.AnalysisManager, pkg *goast.Package, kind AnalysisKind) error {
	switch kind {
	case AnalysisKindFuncIndex:
		for _, file := range pkg.Files() {
			index, err := opana.GetTypedChild[goast.FuncIndex](am, file)
			if err != nil {
				return err
			}
			logger.Debug("file indexed", "file", file.Name(), "funcs", len(index.Funcs))
		}
	case AnalysisKindOpCount:
		count, err := opana.GetChild[goast.OpCount](am, pkg)
		if err != nil {
			return err
		}
		logger.Debug("subtree counted", "package", pkg.Path(), "total", count.Total, "leaves", count.Leaves)
	case AnalysisKindExports:
		api, err := opana.GetTypedChild[goast.ExportedAPI](am, pkg)
		if err != nil {
			return err
		}
		logger.Debug("exports collected", "package", pkg.Path(), "funcs", api.Funcs)
	default:
		return fmt.Errorf("unsupported analysis kind %s", kind)
	}

	return nil
}

// stillCached checks the post-invalidation cache state without triggering
// any recomputation.
func stillCached(pm opana.AnalysisManager, pkg *goast.Package, kind AnalysisKind) bool {
	switch kind {
	case AnalysisKindFuncIndex:
		for _, file := range pkg.Files() {
			if _, ok := opana.GetCachedChild[goast.FuncIndex](pm, file); !ok {
				return false
			}
		}
		return len(pkg.Files()) > 0
	case AnalysisKindOpCount:
		_, ok := opana.GetCached[goast.OpCount](pm)
		return ok
	case AnalysisKindExports:
		_, ok := opana.GetCached[goast.ExportedAPI](pm)
		return ok
	default:
		return false
	}
}

// Package repo provides a read-only view of a candidate source tree.
//
// Detectors consult the tree only through [SourceRepo]: existence checks,
// bounded content reads and pattern-based enumeration. Paths are given as
// segments and joined with forward slashes relative to the tree root, so
// the same detector code runs against the local filesystem and against an
// in-memory [testing/fstest.MapFS]:
//
//	src, err := repo.NewLocal("/workspace/app")
//	if err != nil {
//		return err
//	}
//	if src.FileExists("config", "config.toml") {
//		// ...
//	}
//
// File contents are cached in a bounded LRU so several detectors reading the
// same manifest during one pass hit the filesystem once.
package repo

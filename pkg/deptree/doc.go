// Package deptree builds and validates dependency trees from declared
// relations.
//
// # Overview
//
// A caller declares relations (a key and the keys it depends on) on a
// [Builder], then finalizes with [Builder.Build]. Build runs cycle detection
// over the whole accumulated edge set and either returns an immutable,
// provably acyclic [Tree] or a [CycleError] describing one offending cycle.
// Validation happens exactly once, at Build - there is no incremental
// re-validation and no way to remove a declared relation.
//
// Keys are generic over any comparable type. Dependency keys that are never
// declared on the left-hand side of a relation are implicit leaves: they
// cannot participate in a cycle and do not need their own entry.
//
// # Basic Usage
//
// Declare relations with [Builder.WithDep] (chainable, last write wins) and
// finalize with [Builder.Build]:
//
//	tree, err := deptree.New[string]().
//		WithDep("app", "lib", "core").
//		WithDep("lib", "core").
//		Build()
//	if err != nil {
//		var cerr *deptree.CycleError[string]
//		if errors.As(err, &cerr) {
//			// cerr.Path is the cycle, first and last key equal
//		}
//	}
//	fmt.Print(tree)
//
// Traversal order is deterministic: keys iterate in the order they were first
// declared, dependencies in the order they were listed. Two builders fed the
// same declarations render byte-identical output.
//
// # Analytics
//
// A validated tree answers structural questions: [Tree.DependenciesOf] and
// [Tree.DependentsOf] for single keys, [Tree.MostDependencies],
// [Tree.LeastDependencies], [Tree.MostDependents], and [Tree.LeastDependents]
// for whole-tree rankings, plus [Tree.Roots] and [Tree.Leaves].
//
// # Concurrency
//
// A Builder is a single-owner value and is not safe for concurrent mutation.
// A Tree is immutable after Build and safe for concurrent reads.
package deptree

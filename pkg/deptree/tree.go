package deptree

import (
	"fmt"
	"slices"
	"strings"
)

// Entry is one declared relation in a validated tree.
type Entry[K comparable] struct {
	Key  K
	Deps []K
}

// Tree is an immutable, validated dependency tree: for every key there is no
// path through declared dependency edges leading back to itself. Trees are
// produced exclusively by [Builder.Build] and are safe for concurrent reads.
type Tree[K comparable] struct {
	order     []K
	relations map[K][]K
}

// Len returns the number of declared keys.
func (t *Tree[K]) Len() int { return len(t.order) }

// Contains reports whether key was declared as a relation.
// Implicit leaves (keys only referenced as dependencies) are not contained.
func (t *Tree[K]) Contains(key K) bool {
	_, ok := t.relations[key]
	return ok
}

// Keys returns the declared keys in declaration order.
func (t *Tree[K]) Keys() []K { return slices.Clone(t.order) }

// Deps returns a copy of the direct dependency list declared for key, and
// whether the key was declared. Implicit leaves report (nil, false).
func (t *Tree[K]) Deps(key K) ([]K, bool) {
	deps, ok := t.relations[key]
	if !ok {
		return nil, false
	}
	return slices.Clone(deps), true
}

// Entries returns all declared relations in declaration order.
// The returned slices are copies; modifying them does not affect the tree.
func (t *Tree[K]) Entries() []Entry[K] {
	entries := make([]Entry[K], len(t.order))
	for i, k := range t.order {
		entries[i] = Entry[K]{Key: k, Deps: slices.Clone(t.relations[k])}
	}
	return entries
}

// String renders the tree as text, one declared relation per line in
// declaration order:
//
//	app: lib, core
//	lib: core
//	core:
//
// The output is a pure function of the tree's contents - structurally
// identical trees render byte-identical.
func (t *Tree[K]) String() string {
	var sb strings.Builder
	for _, k := range t.order {
		sb.WriteString(fmt.Sprint(k))
		sb.WriteString(":")
		for i, dep := range t.relations[k] {
			if i == 0 {
				sb.WriteString(" ")
			} else {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprint(dep))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Roots returns the declared keys no other declared key depends on, in
// declaration order. These are typically application entry points.
func (t *Tree[K]) Roots() []K {
	depended := make(map[K]bool)
	for _, deps := range t.relations {
		for _, d := range deps {
			depended[d] = true
		}
	}
	var roots []K
	for _, k := range t.order {
		if !depended[k] {
			roots = append(roots, k)
		}
	}
	return roots
}

// Leaves returns the declared keys with an empty dependency list, in
// declaration order. Implicit leaves are not included since they were never
// declared.
func (t *Tree[K]) Leaves() []K {
	var leaves []K
	for _, k := range t.order {
		if len(t.relations[k]) == 0 {
			leaves = append(leaves, k)
		}
	}
	return leaves
}

// EdgeCount returns the total number of declared dependency edges.
func (t *Tree[K]) EdgeCount() int {
	n := 0
	for _, deps := range t.relations {
		n += len(deps)
	}
	return n
}

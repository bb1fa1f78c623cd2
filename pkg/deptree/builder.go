package deptree

import (
	"errors"
	"slices"
)

// ErrBuilderConsumed is returned by [Builder.Build] when the builder has
// already been finalized. A builder accumulates relations for exactly one
// tree; create a new builder to build another.
var ErrBuilderConsumed = errors.New("builder already consumed by Build")

// Builder accumulates key → dependency-list relations for a dependency tree.
// It does no validation: even a key declared dependent on itself is accepted
// silently until [Builder.Build] runs cycle detection over the full edge set.
//
// The zero value is not usable - use [New]. Builder is not safe for
// concurrent use.
type Builder[K comparable] struct {
	order     []K       // keys in first-declaration order
	relations map[K][]K // key -> declared dependency list
	consumed  bool
}

// New creates an empty builder.
func New[K comparable]() *Builder[K] {
	return &Builder[K]{relations: make(map[K][]K)}
}

// WithDep declares the dependency list for key and returns the builder for
// chaining. Declaring the same key again replaces its previous list (last
// write wins); the key keeps its original position in the declaration order.
// The deps slice is copied, so the caller may reuse it.
//
// WithDep panics if the builder was already consumed by [Builder.Build].
func (b *Builder[K]) WithDep(key K, deps ...K) *Builder[K] {
	if b.consumed {
		panic("deptree: WithDep on a builder already consumed by Build")
	}
	if _, seen := b.relations[key]; !seen {
		b.order = append(b.order, key)
	}
	b.relations[key] = slices.Clone(deps)
	return b
}

// Len returns the number of declared keys.
func (b *Builder[K]) Len() int { return len(b.relations) }

// Build consumes the builder, validates the accumulated relations, and
// returns an immutable [Tree]. If any cycle exists through the declared
// edges - including a key depending on itself - Build returns a
// [CycleError] identifying the first cycle found in declaration order, and
// no tree. A second call returns [ErrBuilderConsumed].
func (b *Builder[K]) Build() (*Tree[K], error) {
	if b.consumed {
		return nil, ErrBuilderConsumed
	}
	b.consumed = true

	if err := detectCycles(b.order, b.relations); err != nil {
		return nil, err
	}

	t := &Tree[K]{order: b.order, relations: b.relations}
	b.order = nil
	b.relations = nil
	return t, nil
}

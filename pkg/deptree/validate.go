package deptree

import (
	"fmt"
	"strings"
)

// CycleError reports a dependency cycle found during [Builder.Build].
//
// Path holds the keys forming the cycle in traversal order. A
// self-dependency is the degenerate case and has a single-element path;
// longer cycles repeat the entry key, so first and last element are equal
// (e.g. [Y Z Y] for Y→Z→Y).
type CycleError[K comparable] struct {
	Path []K
}

// Error implements the error interface.
func (e *CycleError[K]) Error() string {
	if len(e.Path) == 1 {
		return fmt.Sprintf("%v depends on itself", e.Path[0])
	}
	parts := make([]string, len(e.Path))
	for i, k := range e.Path {
		parts[i] = fmt.Sprint(k)
	}
	return "dependency cycle: " + strings.Join(parts, " -> ")
}

// Node colors for the three-state DFS.
const (
	white = iota // unvisited
	gray         // on the active traversal path
	black        // fully processed, proven acyclic
)

// frame is one level of the explicit DFS stack. Keeping the stack on the
// heap instead of the call stack means arbitrarily deep dependency chains
// cannot overflow.
type frame[K comparable] struct {
	key  K
	next int // index of the next dependency to visit
}

// detectCycles runs a depth-first traversal over all declared keys in
// declaration order and returns a [CycleError] for the first cycle found,
// or nil if the graph is acyclic. Dependency keys without a declared
// relation are implicit leaves and are skipped. Runs in O(keys + edges).
func detectCycles[K comparable](order []K, relations map[K][]K) error {
	color := make(map[K]int, len(relations))

	for _, root := range order {
		if color[root] != white {
			continue
		}

		stack := []frame[K]{{key: root}}
		color[root] = gray

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			deps := relations[top.key]

			if top.next >= len(deps) {
				color[top.key] = black
				stack = stack[:len(stack)-1]
				continue
			}

			dep := deps[top.next]
			top.next++

			if _, declared := relations[dep]; !declared {
				continue // implicit leaf, cannot close a cycle
			}

			switch color[dep] {
			case gray:
				return &CycleError[K]{Path: cyclePath(stack, dep)}
			case white:
				color[dep] = gray
				stack = append(stack, frame[K]{key: dep})
			}
		}
	}
	return nil
}

// cyclePath extracts the cycle from the active stack: the keys from dep's
// occurrence on the stack down to the top, closed by dep itself. A
// self-dependency (dep on top of the stack) yields a single-element path.
func cyclePath[K comparable](stack []frame[K], dep K) []K {
	if stack[len(stack)-1].key == dep {
		return []K{dep}
	}
	start := 0
	for i := range stack {
		if stack[i].key == dep {
			start = i
			break
		}
	}
	path := make([]K, 0, len(stack)-start+1)
	for _, f := range stack[start:] {
		path = append(path, f.key)
	}
	return append(path, dep)
}

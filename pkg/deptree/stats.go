package deptree

import "slices"

// Ranking pairs a key with a computed count, used by the tree-wide
// ranking methods.
type Ranking[K comparable] struct {
	Key   K
	Count int
}

// MostDependencies ranks declared keys by their transitive dependency count,
// highest first. Shared dependencies are counted once per root (diamond
// shapes do not inflate the count). Ties keep declaration order.
func (t *Tree[K]) MostDependencies() []Ranking[K] {
	r := t.dependencyCounts()
	slices.SortStableFunc(r, func(a, b Ranking[K]) int { return b.Count - a.Count })
	return r
}

// LeastDependencies ranks declared keys by their transitive dependency
// count, lowest first. Ties keep declaration order.
func (t *Tree[K]) LeastDependencies() []Ranking[K] {
	r := t.dependencyCounts()
	slices.SortStableFunc(r, func(a, b Ranking[K]) int { return a.Count - b.Count })
	return r
}

// MostDependents ranks every key - declared or implicit leaf - by how many
// declared keys list it as a direct dependency, highest first. Ties keep
// declaration/first-reference order.
func (t *Tree[K]) MostDependents() []Ranking[K] {
	r := t.dependentCounts()
	slices.SortStableFunc(r, func(a, b Ranking[K]) int { return b.Count - a.Count })
	return r
}

// LeastDependents ranks every key by its direct dependent count, lowest
// first. Ties keep declaration/first-reference order.
func (t *Tree[K]) LeastDependents() []Ranking[K] {
	r := t.dependentCounts()
	slices.SortStableFunc(r, func(a, b Ranking[K]) int { return a.Count - b.Count })
	return r
}

// DependenciesOf returns every key reachable from key through dependency
// edges, in depth-first preorder following declared order. Each key appears
// once. Returns nil for a key with no dependencies or one never declared.
func (t *Tree[K]) DependenciesOf(key K) []K {
	visited := map[K]bool{key: true}
	var out []K
	var walk func(k K)
	walk = func(k K) {
		for _, dep := range t.relations[k] {
			if visited[dep] {
				continue
			}
			visited[dep] = true
			out = append(out, dep)
			walk(dep)
		}
	}
	walk(key)
	return out
}

// DependentsOf returns the declared keys that list key as a direct
// dependency, in declaration order.
func (t *Tree[K]) DependentsOf(key K) []K {
	var out []K
	for _, k := range t.order {
		if slices.Contains(t.relations[k], key) {
			out = append(out, k)
		}
	}
	return out
}

func (t *Tree[K]) dependencyCounts() []Ranking[K] {
	out := make([]Ranking[K], len(t.order))
	for i, k := range t.order {
		out[i] = Ranking[K]{Key: k, Count: len(t.DependenciesOf(k))}
	}
	return out
}

// dependentCounts counts direct dependents for every key mentioned anywhere
// in the tree, including implicit leaves. Declared keys come first in
// declaration order, implicit leaves follow in first-reference order.
func (t *Tree[K]) dependentCounts() []Ranking[K] {
	counts := make(map[K]int, len(t.order))
	var order []K
	for _, k := range t.order {
		counts[k] = 0
		order = append(order, k)
	}
	for _, k := range t.order {
		for _, dep := range t.relations[k] {
			if _, seen := counts[dep]; !seen {
				order = append(order, dep)
			}
			counts[dep]++
		}
	}
	out := make([]Ranking[K], len(order))
	for i, k := range order {
		out[i] = Ranking[K]{Key: k, Count: counts[k]}
	}
	return out
}

package deptree

import (
	"slices"
	"testing"
)

// statsTree builds the fixture used across the analytics tests:
//
//	app → lib, util
//	cli → lib
//	lib → core
//	core, util declared leaves; "vendored" stays implicit.
func statsTree(t *testing.T) *Tree[string] {
	t.Helper()
	return buildTree(t, func(b *Builder[string]) *Builder[string] {
		return b.
			WithDep("app", "lib", "util").
			WithDep("cli", "lib").
			WithDep("lib", "core", "vendored").
			WithDep("core").
			WithDep("util")
	})
}

func TestTree_DependenciesOf(t *testing.T) {
	tree := statsTree(t)

	tests := []struct {
		key  string
		want []string
	}{
		{"app", []string{"lib", "core", "vendored", "util"}},
		{"cli", []string{"lib", "core", "vendored"}},
		{"lib", []string{"core", "vendored"}},
		{"core", nil},
		{"vendored", nil}, // implicit leaf
	}

	for _, tt := range tests {
		if got := tree.DependenciesOf(tt.key); !slices.Equal(got, tt.want) {
			t.Errorf("DependenciesOf(%s) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestTree_DependenciesOf_Diamond(t *testing.T) {
	tree := buildTree(t, func(b *Builder[string]) *Builder[string] {
		return b.
			WithDep("a", "b", "c").
			WithDep("b", "d").
			WithDep("c", "d").
			WithDep("d")
	})

	// d is reachable twice but reported once.
	if got := tree.DependenciesOf("a"); !slices.Equal(got, []string{"b", "d", "c"}) {
		t.Errorf("DependenciesOf(a) = %v, want [b d c]", got)
	}
}

func TestTree_DependentsOf(t *testing.T) {
	tree := statsTree(t)

	tests := []struct {
		key  string
		want []string
	}{
		{"lib", []string{"app", "cli"}},
		{"core", []string{"lib"}},
		{"vendored", []string{"lib"}},
		{"app", nil},
	}

	for _, tt := range tests {
		if got := tree.DependentsOf(tt.key); !slices.Equal(got, tt.want) {
			t.Errorf("DependentsOf(%s) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestTree_DependencyRankings(t *testing.T) {
	tree := statsTree(t)

	most := tree.MostDependencies()
	want := []Ranking[string]{
		{"app", 4}, {"cli", 3}, {"lib", 2}, {"core", 0}, {"util", 0},
	}
	if !slices.Equal(most, want) {
		t.Errorf("MostDependencies() = %v, want %v", most, want)
	}

	least := tree.LeastDependencies()
	want = []Ranking[string]{
		{"core", 0}, {"util", 0}, {"lib", 2}, {"cli", 3}, {"app", 4},
	}
	if !slices.Equal(least, want) {
		t.Errorf("LeastDependencies() = %v, want %v", least, want)
	}
}

func TestTree_DependentRankings(t *testing.T) {
	tree := statsTree(t)

	most := tree.MostDependents()
	// lib has 2 direct dependents; util, core and the implicit leaf
	// "vendored" one each; roots none.
	want := []Ranking[string]{
		{"lib", 2}, {"core", 1}, {"util", 1}, {"vendored", 1}, {"app", 0}, {"cli", 0},
	}
	if !slices.Equal(most, want) {
		t.Errorf("MostDependents() = %v, want %v", most, want)
	}

	least := tree.LeastDependents()
	want = []Ranking[string]{
		{"app", 0}, {"cli", 0}, {"core", 1}, {"util", 1}, {"vendored", 1}, {"lib", 2},
	}
	if !slices.Equal(least, want) {
		t.Errorf("LeastDependents() = %v, want %v", least, want)
	}
}

func TestTree_Rankings_Empty(t *testing.T) {
	tree := buildTree(t, func(b *Builder[string]) *Builder[string] { return b })

	if got := tree.MostDependencies(); len(got) != 0 {
		t.Errorf("MostDependencies() = %v, want empty", got)
	}
	if got := tree.MostDependents(); len(got) != 0 {
		t.Errorf("MostDependents() = %v, want empty", got)
	}
}

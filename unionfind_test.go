package clustereval

import (
	"reflect"
	"testing"
)

func TestUnionFind_Components(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		pairs [][2]int
		want  [][]int
	}{
		{"empty", 0, nil, nil},
		{"no links", 3, nil, [][]int{{0}, {1}, {2}}},
		{"one pair", 4, [][2]int{{3, 1}}, [][]int{{0}, {1, 3}, {2}}},
		{"chained", 5, [][2]int{{0, 2}, {2, 4}}, [][]int{{0, 2, 4}, {1}, {3}}},
		{"ordered by smallest member", 6, [][2]int{{4, 1}, {5, 2}, {2, 4}}, [][]int{{0}, {1, 2, 4, 5}, {3}}},
		{"repeated link", 3, [][2]int{{0, 1}, {1, 0}, {0, 1}}, [][]int{{0, 1}, {2}}},
		{"all joined", 4, [][2]int{{3, 2}, {1, 0}, {0, 3}}, [][]int{{0, 1, 2, 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uf := NewUnionFind(tt.n)
			for _, p := range tt.pairs {
				uf.Union(p[0], p[1])
			}
			got := uf.Components()
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Components() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnionFind_UnionReturnsSharedRoot(t *testing.T) {
	uf := NewUnionFind(4)
	root := uf.Union(2, 3)
	if uf.Find(2) != root || uf.Find(3) != root {
		t.Errorf("Union(2, 3) = %d, but Find gives %d and %d", root, uf.Find(2), uf.Find(3))
	}
	if uf.Find(0) == root || uf.Find(1) == root {
		t.Error("untouched elements joined the set")
	}
	if again := uf.Union(3, 2); again != root {
		t.Errorf("second Union = %d, want %d", again, root)
	}
}

func TestUnionFind_ComponentsStableAcrossCalls(t *testing.T) {
	uf := NewUnionFind(5)
	uf.Union(1, 4)
	first := uf.Components()
	second := uf.Components()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Components() changed between calls: %v then %v", first, second)
	}
}

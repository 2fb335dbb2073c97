package comps

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/ttpr0/go-lineplanner/geo"
	"github.com/ttpr0/go-lineplanner/structs"
	. "github.com/ttpr0/go-lineplanner/util"
)

func _BuildTestGraphBase() *GraphBase {
	// 0 -- 1 -- 2
	//      |
	//      3
	nodes := NewArray[structs.Node](4)
	nodes.Set(0, structs.Node{Loc: geo.Coord{9.0, 52.0}})
	nodes.Set(1, structs.Node{Loc: geo.Coord{9.001, 52.0}})
	nodes.Set(2, structs.Node{Loc: geo.Coord{9.002, 52.0}})
	nodes.Set(3, structs.Node{Loc: geo.Coord{9.001, 52.001}})
	edges := NewArray[structs.Edge](3)
	edges.Set(0, structs.Edge{NodeA: 0, NodeB: 1})
	edges.Set(1, structs.Edge{NodeA: 1, NodeB: 2})
	edges.Set(2, structs.Edge{NodeA: 1, NodeB: 3})
	edge_geoms := make([]geo.CoordArray, 3)
	edge_geoms[1] = geo.CoordArray{{9.001, 52.0}, {9.0015, 52.0002}, {9.002, 52.0}}
	return NewGraphBase(nodes, edges, edge_geoms)
}

func TestGraphBaseCounts(t *testing.T) {
	base := _BuildTestGraphBase()
	if base.NodeCount() != 4 {
		t.Errorf("NodeCount() = %v; want 4", base.NodeCount())
	}
	if base.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %v; want 3", base.EdgeCount())
	}
	if base.IsNode(4) {
		t.Errorf("IsNode(4) = true; want false")
	}
	if !base.IsEdge(2) {
		t.Errorf("IsEdge(2) = false; want true")
	}
}

func TestGraphBaseUndirected(t *testing.T) {
	base := _BuildTestGraphBase()

	// every incident edge has to be visible from both endpoints and in
	// both iteration directions
	for _, forward := range []bool{true, false} {
		accessor := base.GetAccessor()
		accessor.SetBaseNode(1, forward)
		others := make([]int, 0)
		for accessor.Next() {
			others = append(others, int(accessor.GetOtherID()))
		}
		sort.Ints(others)
		if len(others) != 3 || others[0] != 0 || others[1] != 2 || others[2] != 3 {
			t.Errorf("neighbours of node 1 (forward=%v) = %v; want [0 2 3]", forward, others)
		}
	}

	if base.GetNodeDegree(1, true) != 3 {
		t.Errorf("GetNodeDegree(1, true) = %v; want 3", base.GetNodeDegree(1, true))
	}
	if base.GetNodeDegree(0, false) != 1 {
		t.Errorf("GetNodeDegree(0, false) = %v; want 1", base.GetNodeDegree(0, false))
	}
}

func TestGraphBaseEdgeGeom(t *testing.T) {
	base := _BuildTestGraphBase()

	geom := base.GetEdgeGeom(1)
	if len(geom) != 3 {
		t.Errorf("len(GetEdgeGeom(1)) = %v; want 3", len(geom))
	}

	// edges without stored geometry fall back to their endpoints
	geom = base.GetEdgeGeom(0)
	if len(geom) != 2 {
		t.Errorf("len(GetEdgeGeom(0)) = %v; want 2", len(geom))
	}
	if geom[0] != base.GetNode(0).Loc || geom[1] != base.GetNode(1).Loc {
		t.Errorf("GetEdgeGeom(0) = %v; want endpoint locations", geom)
	}
}

func TestGraphBaseStoreLoad(t *testing.T) {
	base := _BuildTestGraphBase()
	path := filepath.Join(t.TempDir(), "streets")

	Store(base, path)
	loaded := Load[*GraphBase](path)

	if loaded.NodeCount() != base.NodeCount() {
		t.Errorf("NodeCount() = %v; want %v", loaded.NodeCount(), base.NodeCount())
	}
	if loaded.EdgeCount() != base.EdgeCount() {
		t.Errorf("EdgeCount() = %v; want %v", loaded.EdgeCount(), base.EdgeCount())
	}
	if loaded.GetNode(3).Loc != base.GetNode(3).Loc {
		t.Errorf("GetNode(3).Loc = %v; want %v", loaded.GetNode(3).Loc, base.GetNode(3).Loc)
	}
	if loaded.GetEdge(1) != base.GetEdge(1) {
		t.Errorf("GetEdge(1) = %v; want %v", loaded.GetEdge(1), base.GetEdge(1))
	}
	if len(loaded.GetEdgeGeom(1)) != 3 {
		t.Errorf("len(GetEdgeGeom(1)) = %v; want 3", len(loaded.GetEdgeGeom(1)))
	}
	if loaded.GetNodeDegree(1, true) != 3 {
		t.Errorf("GetNodeDegree(1, true) = %v; want 3", loaded.GetNodeDegree(1, true))
	}
}

func TestWeightingStoreLoad(t *testing.T) {
	base := _BuildTestGraphBase()
	weight := NewDefaultWeighting(base)
	weight.SetEdgeWeight(0, 69.5)
	weight.SetEdgeWeight(1, 138.2)
	weight.SetEdgeWeight(2, 111.0)
	path := filepath.Join(t.TempDir(), "streets")

	Store(weight, path)
	loaded := Load[*DefaultWeighting](path)

	for i := 0; i < 3; i++ {
		if loaded.GetEdgeWeight(int32(i)) != weight.GetEdgeWeight(int32(i)) {
			t.Errorf("GetEdgeWeight(%v) = %v; want %v", i, loaded.GetEdgeWeight(int32(i)), weight.GetEdgeWeight(int32(i)))
		}
	}
}

func TestGraphIndex(t *testing.T) {
	base := _BuildTestGraphBase()
	index := NewGraphIndex(base)

	node, ok := index.GetClosestNode(geo.Coord{9.0011, 52.0012})
	if !ok {
		t.Errorf("GetClosestNode() = _, false; want node 3")
	}
	if node != 3 {
		t.Errorf("GetClosestNode() = %v; want 3", node)
	}

	// far away from every node, outside of the snapping range
	_, ok = index.GetClosestNode(geo.Coord{10.0, 53.0})
	if ok {
		t.Errorf("GetClosestNode() = _, true; want false")
	}
}

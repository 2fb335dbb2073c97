package comps

import (
	"github.com/ttpr0/go-lineplanner/structs"
	. "github.com/ttpr0/go-lineplanner/util"
)

//*******************************************
// build graph components
//*******************************************

// Edges are undirected, every edge is added to the adjacency of both
// of its endpoints.
func _BuildTopology(nodes Array[structs.Node], edges Array[structs.Edge]) structs.AdjacencyArray {
	dyn := structs.NewAdjacencyList(nodes.Length())
	for id, edge := range edges {
		dyn.AddFWDEntry(edge.NodeA, edge.NodeB, int32(id))
		dyn.AddFWDEntry(edge.NodeB, edge.NodeA, int32(id))
		dyn.AddBWDEntry(edge.NodeB, edge.NodeA, int32(id))
		dyn.AddBWDEntry(edge.NodeA, edge.NodeB, int32(id))
	}

	return *structs.AdjacencyListToArray(&dyn)
}

func _BuildKDTreeIndex(base IGraphBase) KDTree[int32] {
	tree := NewKDTree[int32](2)
	for i := 0; i < base.NodeCount(); i++ {
		if !base.IsNode(int32(i)) {
			continue
		}
		node := base.GetNode(int32(i))
		geom := node.Loc
		tree.Insert(geom[:], int32(i))
	}
	return tree
}

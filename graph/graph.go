package graph

import (
	"github.com/ttpr0/go-lineplanner/comps"
	"github.com/ttpr0/go-lineplanner/geo"
	"github.com/ttpr0/go-lineplanner/structs"
	. "github.com/ttpr0/go-lineplanner/util"
)

//*******************************************
// graph interfaces
//******************************************

type IGraph interface {
	GetGraphExplorer() IGraphExplorer
	NodeCount() int
	EdgeCount() int
	IsNode(node int32) bool
	GetNode(node int32) structs.Node
	GetEdge(edge int32) structs.Edge
	GetNodeGeom(node int32) geo.Coord
	GetEdgeGeom(edge int32) geo.CoordArray
	GetClosestNode(point geo.Coord) (int32, bool)
}

// not thread safe, use only one instance per thread
type IGraphExplorer interface {
	// Iterates through the adjacency of a node calling the callback for every edge.
	//
	// direction tells the traversal direction (FORWARD means outgoing edges, BACKWARD ingoing edges)
	ForAdjacentEdges(node int32, dir Direction, typ Adjacency, callback func(EdgeRef))
	GetEdgeWeight(edge EdgeRef) float32
	GetOtherNode(edge EdgeRef, node int32) int32
}

//*******************************************
// street graph
//******************************************

type Graph struct {
	base   comps.IGraphBase
	weight comps.IWeighting
	index  Optional[comps.IGraphIndex]
}

func (self *Graph) GetGraphExplorer() IGraphExplorer {
	return &BaseGraphExplorer{
		graph:    self,
		accessor: self.base.GetAccessor(),
		weight:   self.weight,
	}
}
func (self *Graph) NodeCount() int {
	return self.base.NodeCount()
}
func (self *Graph) EdgeCount() int {
	return self.base.EdgeCount()
}
func (self *Graph) IsNode(node int32) bool {
	return self.base.IsNode(node)
}
func (self *Graph) GetNode(node int32) structs.Node {
	return self.base.GetNode(node)
}
func (self *Graph) GetEdge(edge int32) structs.Edge {
	return self.base.GetEdge(edge)
}
func (self *Graph) GetNodeGeom(node int32) geo.Coord {
	return self.base.GetNode(node).Loc
}
func (self *Graph) GetEdgeGeom(edge int32) geo.CoordArray {
	return self.base.GetEdgeGeom(edge)
}
func (self *Graph) GetClosestNode(point geo.Coord) (int32, bool) {
	if !self.index.HasValue() {
		self.index = Some(comps.NewGraphIndex(self.base))
	}
	return self.index.Value.GetClosestNode(point)
}

//*******************************************
// street graph explorer
//******************************************

type BaseGraphExplorer struct {
	graph    *Graph
	accessor structs.IAdjAccessor
	weight   comps.IWeighting
}

func (self *BaseGraphExplorer) ForAdjacentEdges(node int32, direction Direction, typ Adjacency, callback func(EdgeRef)) {
	if typ == ADJACENT_ALL || typ == ADJACENT_EDGES {
		self.accessor.SetBaseNode(node, direction == FORWARD)
		for self.accessor.Next() {
			edge_id := self.accessor.GetEdgeID()
			other_id := self.accessor.GetOtherID()
			callback(EdgeRef{
				EdgeID:  edge_id,
				OtherID: other_id,
			})
		}
	} else {
		panic("Adjacency-type not implemented for this graph.")
	}
}
func (self *BaseGraphExplorer) GetEdgeWeight(edge EdgeRef) float32 {
	return self.weight.GetEdgeWeight(edge.EdgeID)
}
func (self *BaseGraphExplorer) GetOtherNode(edge EdgeRef, node int32) int32 {
	e := self.graph.GetEdge(edge.EdgeID)
	if node == e.NodeA {
		return e.NodeB
	}
	if node == e.NodeB {
		return e.NodeA
	}
	return -1
}

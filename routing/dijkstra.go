package routing

import (
	"math"

	"github.com/ttpr0/go-lineplanner/geo"
	"github.com/ttpr0/go-lineplanner/graph"
	. "github.com/ttpr0/go-lineplanner/util"
)

// Computes the walking distance in metres between two locations.
//
// Both locations are snapped to their closest street node, the snapping
// distances are added onto the path length. Returns false if either
// location has no street node nearby or no path exists.
func CalcDijkstra(g graph.IGraph, from geo.Coord, to geo.Coord) (float64, bool) {
	from_node, ok := g.GetClosestNode(from)
	if !ok {
		return 0, false
	}
	to_node, ok := g.GetClosestNode(to)
	if !ok {
		return 0, false
	}
	from_dist := geo.HaversineDistance(from, g.GetNodeGeom(from_node))
	to_dist := geo.HaversineDistance(to, g.GetNodeGeom(to_node))
	if from_node == to_node {
		return float64(from_dist) + float64(to_dist), true
	}

	node_flags := NewFlags[DistFlag](int32(g.NodeCount()), DistFlag{float32(math.Inf(1))})
	heap := NewPriorityQueue[PQItem, float32](100)
	explorer := g.GetGraphExplorer()

	start_flag := node_flags.Get(from_node)
	start_flag.Dist = 0
	heap.Enqueue(PQItem{from_node, 0}, 0)

	for {
		curr_item, ok := heap.Dequeue()
		if !ok {
			return 0, false
		}
		curr_id := curr_item.item
		curr_dist := curr_item.dist
		curr_flag := node_flags.Get(curr_id)
		if curr_flag.Dist < curr_dist {
			continue
		}
		if curr_id == to_node {
			return float64(curr_dist) + float64(from_dist) + float64(to_dist), true
		}
		explorer.ForAdjacentEdges(curr_id, graph.FORWARD, graph.ADJACENT_EDGES, func(ref graph.EdgeRef) {
			other_id := ref.OtherID
			other_flag := node_flags.Get(other_id)
			new_length := curr_flag.Dist + explorer.GetEdgeWeight(ref)
			if other_flag.Dist > new_length {
				other_flag.Dist = new_length
				heap.Enqueue(PQItem{other_id, new_length}, new_length)
			}
		})
	}
}

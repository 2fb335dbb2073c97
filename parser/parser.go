package parser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/ttpr0/go-lineplanner/comps"
	"github.com/ttpr0/go-lineplanner/geo"
	"github.com/ttpr0/go-lineplanner/structs"
	. "github.com/ttpr0/go-lineplanner/util"
	"golang.org/x/exp/slog"
)

var ErrEmptyGraph = errors.New("no road data found in extract")

// Builds the street graph from the walkable ways of an osm extract.
//
// Graph nodes are created at way endpoints and wherever ways share a
// node, edges for the spans in between carrying the full segment
// geometry. Edge weights are the summed haversine length in metres.
func ParseGraph(pbf_file string, decoder IOSMDecoder) (*comps.GraphBase, *comps.DefaultWeighting, error) {
	nodes := NewList[OSMNode](10000)
	edges := NewList[OSMEdge](10000)
	index_mapping := NewDict[int64, int](10000)
	if err := _ParseOsm(pbf_file, decoder, &nodes, &edges, &index_mapping); err != nil {
		return nil, nil, err
	}
	slog.Info(fmt.Sprintf("street graph: %v nodes, %v edges", nodes.Length(), edges.Length()))
	if nodes.Length() == 0 {
		return nil, nil, ErrEmptyGraph
	}
	base, weight := _CreateGraphBase(&nodes, &edges)
	return base, weight, nil
}

func _ParseOsm(filename string, decoder IOSMDecoder, nodes *List[OSMNode], edges *List[OSMEdge], index_mapping *Dict[int64, int]) error {
	osm_nodes := NewDict[int64, TempNode](1000)

	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
	_InitWayHandler(scanner, decoder, &osm_nodes)
	scanner.Close()
	file.Seek(0, 0)
	scanner = osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
	_NodeHandler(scanner, &osm_nodes, nodes, index_mapping)
	scanner.Close()
	file.Seek(0, 0)
	scanner = osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
	_WayHandler(scanner, decoder, edges, &osm_nodes, index_mapping)
	return scanner.Close()
}

func _CreateGraphBase(osmnodes *List[OSMNode], osmedges *List[OSMEdge]) (*comps.GraphBase, *comps.DefaultWeighting) {
	nodes := NewList[structs.Node](osmnodes.Length())
	edges := NewList[structs.Edge](osmedges.Length())
	edge_geoms := NewList[geo.CoordArray](osmedges.Length())

	for _, osmedge := range *osmedges {
		edges.Add(structs.Edge{
			NodeA: int32(osmedge.NodeA),
			NodeB: int32(osmedge.NodeB),
		})
		edge_geoms.Add(geo.CoordArray(osmedge.Nodes))
	}
	for _, osmnode := range *osmnodes {
		nodes.Add(structs.Node{
			Loc: osmnode.Point,
		})
	}

	base := comps.NewGraphBase(Array[structs.Node](nodes), Array[structs.Edge](edges), edge_geoms)
	weight := comps.NewDefaultWeighting(base)
	for i := 0; i < base.EdgeCount(); i++ {
		weight.SetEdgeWeight(int32(i), geo.HaversineLength(base.GetEdgeGeom(int32(i))))
	}
	return base, weight
}

//*******************************************
// osm handler methods
//*******************************************

// First pass: count how many ways use every node. Endpoints count
// twice so they always become graph nodes.
func _InitWayHandler(scanner *osmpbf.Scanner, decoder IOSMDecoder, osm_nodes *Dict[int64, TempNode]) {
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Way:
			tags := Dict[string, string](object.TagMap())
			if !decoder.IsValidHighway(tags) {
				continue
			}
			nodes := object.Nodes.NodeIDs()
			l := len(nodes)
			for i := 0; i < l; i++ {
				ndref := nodes[i].FeatureID().Ref()
				if !osm_nodes.ContainsKey(ndref) {
					(*osm_nodes)[ndref] = TempNode{geo.Coord{0, 0}, 1}
				} else {
					node := (*osm_nodes)[ndref]
					node.Count += 1
					(*osm_nodes)[ndref] = node
				}
			}
			node_a := (*osm_nodes)[nodes[0].FeatureID().Ref()]
			node_b := (*osm_nodes)[nodes[l-1].FeatureID().Ref()]
			node_a.Count += 1
			node_b.Count += 1
			(*osm_nodes)[nodes[0].FeatureID().Ref()] = node_a
			(*osm_nodes)[nodes[l-1].FeatureID().Ref()] = node_b
		default:
			continue
		}
	}
}

// Second pass: fill in the coordinates, nodes used more than once
// become graph nodes.
func _NodeHandler(scanner *osmpbf.Scanner, osm_nodes *Dict[int64, TempNode], nodes *List[OSMNode], index_mapping *Dict[int64, int]) {
	i := 0

	scanner.SkipWays = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Node:
			id := object.FeatureID().Ref()
			if !osm_nodes.ContainsKey(id) {
				continue
			}
			on := osm_nodes.Get(id)
			if on.Count > 1 {
				nodes.Add(OSMNode{Point: geo.Coord{float32(object.Lon), float32(object.Lat)}})
				index_mapping.Set(id, i)
				i += 1
			}
			on.Point[0] = float32(object.Lon)
			on.Point[1] = float32(object.Lat)
			osm_nodes.Set(id, on)
		default:
			continue
		}
	}
}

// Third pass: split every way at its graph nodes into edges.
func _WayHandler(scanner *osmpbf.Scanner, decoder IOSMDecoder, edges *List[OSMEdge], osm_nodes *Dict[int64, TempNode], index_mapping *Dict[int64, int]) {
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Way:
			tags := Dict[string, string](object.TagMap())
			if !decoder.IsValidHighway(tags) {
				continue
			}
			nodes := object.Nodes.NodeIDs()
			way_nodes := make([]int64, len(nodes))
			for i, node := range nodes {
				way_nodes[i] = node.FeatureID().Ref()
			}
			_SplitWay(way_nodes, osm_nodes, index_mapping, edges)
		default:
			continue
		}
	}
}

// Walks along a way and emits an edge for every span between two graph
// nodes, carrying the intermediate geometry.
func _SplitWay(way_nodes []int64, osm_nodes *Dict[int64, TempNode], index_mapping *Dict[int64, int], edges *List[OSMEdge]) {
	if len(way_nodes) < 2 {
		return
	}
	start := way_nodes[0]
	e := OSMEdge{}
	for i := 0; i < len(way_nodes); i++ {
		curr := way_nodes[i]
		on := osm_nodes.Get(curr)
		e.Nodes.Add(on.Point)
		if on.Count > 1 && curr != start {
			e.NodeA = index_mapping.Get(start)
			e.NodeB = index_mapping.Get(curr)
			edges.Add(e)
			start = curr
			e = OSMEdge{}
			e.Nodes.Add(on.Point)
		}
	}
}

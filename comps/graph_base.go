package comps

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"

	"github.com/ttpr0/go-lineplanner/geo"
	"github.com/ttpr0/go-lineplanner/structs"
	. "github.com/ttpr0/go-lineplanner/util"
)

//*******************************************
// graph base interface
//*******************************************

type IGraphBase interface {
	NodeCount() int
	EdgeCount() int
	GetNode(node int32) structs.Node
	IsNode(node int32) bool
	GetEdge(edge int32) structs.Edge
	IsEdge(edge int32) bool
	GetEdgeGeom(edge int32) geo.CoordArray
	GetAccessor() structs.IAdjAccessor
	GetNodeDegree(node int32, forward bool) int16
}

//*******************************************
// graph base
//*******************************************

var _ IGraphBase = &GraphBase{}

// Nodes, undirected edges and their adjacency.
//
// Every edge shows up in the adjacency of both endpoints, in both
// directions, so traversals never need to special-case orientation.
type GraphBase struct {
	nodes      Array[structs.Node]
	edges      Array[structs.Edge]
	edge_geoms []geo.CoordArray
	topology   structs.AdjacencyArray
}

func NewGraphBase(nodes Array[structs.Node], edges Array[structs.Edge], edge_geoms []geo.CoordArray) *GraphBase {
	topology := _BuildTopology(nodes, edges)
	return &GraphBase{
		nodes:      nodes,
		edges:      edges,
		edge_geoms: edge_geoms,
		topology:   topology,
	}
}

func (self *GraphBase) NodeCount() int {
	return len(self.nodes)
}
func (self *GraphBase) EdgeCount() int {
	return len(self.edges)
}
func (self *GraphBase) IsNode(node int32) bool {
	if node >= 0 && node < int32(len(self.nodes)) {
		return true
	} else {
		return false
	}
}
func (self *GraphBase) GetNode(node int32) structs.Node {
	return self.nodes[node]
}
func (self *GraphBase) IsEdge(edge int32) bool {
	if edge >= 0 && edge < int32(len(self.edges)) {
		return true
	} else {
		return false
	}
}
func (self *GraphBase) GetEdge(edge int32) structs.Edge {
	return self.edges[edge]
}
func (self *GraphBase) GetEdgeGeom(edge int32) geo.CoordArray {
	geom := self.edge_geoms[edge]
	if geom == nil {
		e := self.GetEdge(edge)
		geom = make(geo.CoordArray, 2)
		geom[0] = self.GetNode(e.NodeA).Loc
		geom[1] = self.GetNode(e.NodeB).Loc
	}
	return geom
}
func (self *GraphBase) GetAccessor() structs.IAdjAccessor {
	accessor := self.topology.GetAccessor()
	return &accessor
}
func (self *GraphBase) GetNodeDegree(node int32, forward bool) int16 {
	return self.topology.GetDegree(node, forward)
}

//*******************************************
// load and store methods
//*******************************************

func (self *GraphBase) _Store(path string) {
	_StoreGraphNodes(self.nodes, path+"-nodes")
	_StoreGraphEdges(self.edges, path+"-edges")
	_StoreGraphGeom(self.edge_geoms, path+"-geom")
	structs.StoreAdjacency(&self.topology, path+"-graph")
}

func (self *GraphBase) _New() *GraphBase {
	return &GraphBase{}
}

func (self *GraphBase) _Load(path string) {
	nodes := _LoadGraphNodes(path + "-nodes")
	edges := _LoadGraphEdges(path + "-edges")
	edge_geoms := _LoadGraphGeom(path + "-geom")
	topology := structs.LoadAdjacency(path + "-graph")

	*self = GraphBase{
		nodes:      nodes,
		edges:      edges,
		edge_geoms: edge_geoms,
		topology:   *topology,
	}
}

//*******************************************
// load and store components
//*******************************************

func _StoreGraphNodes(nodes Array[structs.Node], filename string) {
	nodesbuffer := bytes.Buffer{}

	nodecount := nodes.Length()
	binary.Write(&nodesbuffer, binary.LittleEndian, int32(nodecount))

	for i := 0; i < nodecount; i++ {
		node := nodes.Get(i)
		binary.Write(&nodesbuffer, binary.LittleEndian, node.Loc)
	}

	nodesfile, _ := os.Create(filename)
	defer nodesfile.Close()
	nodesfile.Write(nodesbuffer.Bytes())
}

func _LoadGraphNodes(file string) Array[structs.Node] {
	_, err := os.Stat(file)
	if errors.Is(err, os.ErrNotExist) {
		panic("file not found: " + file)
	}

	nodedata, _ := os.ReadFile(file)
	nodereader := bytes.NewReader(nodedata)
	var nodecount int32
	binary.Read(nodereader, binary.LittleEndian, &nodecount)
	nodes := NewList[structs.Node](int(nodecount))
	for i := 0; i < int(nodecount); i++ {
		var c [2]float32
		binary.Read(nodereader, binary.LittleEndian, &c)
		nodes.Add(structs.Node{
			Loc: c,
		})
	}

	return Array[structs.Node](nodes)
}

func _StoreGraphEdges(edges Array[structs.Edge], filename string) {
	edgesbuffer := bytes.Buffer{}

	edgecount := edges.Length()
	binary.Write(&edgesbuffer, binary.LittleEndian, int32(edgecount))

	for i := 0; i < edgecount; i++ {
		edge := edges.Get(i)
		binary.Write(&edgesbuffer, binary.LittleEndian, int32(edge.NodeA))
		binary.Write(&edgesbuffer, binary.LittleEndian, int32(edge.NodeB))
	}

	edgesfile, _ := os.Create(filename)
	defer edgesfile.Close()
	edgesfile.Write(edgesbuffer.Bytes())
}

func _LoadGraphEdges(file string) Array[structs.Edge] {
	_, err := os.Stat(file)
	if errors.Is(err, os.ErrNotExist) {
		panic("file not found: " + file)
	}

	edgedata, _ := os.ReadFile(file)
	edgereader := bytes.NewReader(edgedata)
	var edgecount int32
	binary.Read(edgereader, binary.LittleEndian, &edgecount)
	edges := NewList[structs.Edge](int(edgecount))
	for i := 0; i < int(edgecount); i++ {
		var a int32
		binary.Read(edgereader, binary.LittleEndian, &a)
		var b int32
		binary.Read(edgereader, binary.LittleEndian, &b)
		edges.Add(structs.Edge{
			NodeA: a,
			NodeB: b,
		})
	}

	return Array[structs.Edge](edges)
}

// Edge geometries are truncated to 255 coordinates per edge.
func _StoreGraphGeom(edge_geoms []geo.CoordArray, filename string) {
	geombuffer := bytes.Buffer{}

	edgecount := len(edge_geoms)
	binary.Write(&geombuffer, binary.LittleEndian, int32(edgecount))

	for i := 0; i < edgecount; i++ {
		coords := edge_geoms[i]
		nc := len(coords)
		if nc > 255 {
			nc = 255
		}
		binary.Write(&geombuffer, binary.LittleEndian, uint8(nc))
		for j := 0; j < nc; j++ {
			coord := coords[j]
			binary.Write(&geombuffer, binary.LittleEndian, coord[0])
			binary.Write(&geombuffer, binary.LittleEndian, coord[1])
		}
	}

	geomfile, _ := os.Create(filename)
	defer geomfile.Close()
	geomfile.Write(geombuffer.Bytes())
}

func _LoadGraphGeom(file string) []geo.CoordArray {
	_, err := os.Stat(file)
	if errors.Is(err, os.ErrNotExist) {
		panic("file not found: " + file)
	}

	geomdata, _ := os.ReadFile(file)
	geomreader := bytes.NewReader(geomdata)
	var edgecount int32
	binary.Read(geomreader, binary.LittleEndian, &edgecount)
	edge_geoms := make([]geo.CoordArray, edgecount)
	for i := 0; i < int(edgecount); i++ {
		var nc uint8
		binary.Read(geomreader, binary.LittleEndian, &nc)
		coords := make(geo.CoordArray, nc)
		for j := 0; j < int(nc); j++ {
			var lon float32
			binary.Read(geomreader, binary.LittleEndian, &lon)
			var lat float32
			binary.Read(geomreader, binary.LittleEndian, &lat)
			coords[j][0] = lon
			coords[j][1] = lat
		}
		edge_geoms[i] = coords
	}

	return edge_geoms
}

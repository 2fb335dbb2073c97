package structs

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"

	. "github.com/ttpr0/go-lineplanner/util"
)

//*******************************************
// adjacency interfaces
//*******************************************

type IAdjAccessor interface {
	SetBaseNode(node int32, forward bool)
	Next() bool
	GetEdgeID() int32
	GetOtherID() int32
}

type _EdgeEntry struct {
	EdgeID  int32
	OtherID int32
}

//*******************************************
// dynamic adjacency (build phase)
//*******************************************

type _DynNodeEntry struct {
	FWDEdges List[_EdgeEntry]
	BWDEdges List[_EdgeEntry]
}

type AdjacencyList struct {
	node_entries List[_DynNodeEntry]
}

func NewAdjacencyList(node_count int) AdjacencyList {
	node_entries := NewList[_DynNodeEntry](node_count)
	for i := 0; i < node_count; i++ {
		node_entries.Add(_DynNodeEntry{
			FWDEdges: NewList[_EdgeEntry](2),
			BWDEdges: NewList[_EdgeEntry](2),
		})
	}
	return AdjacencyList{
		node_entries: node_entries,
	}
}

func (self *AdjacencyList) AddNodeEntry() {
	self.node_entries.Add(_DynNodeEntry{
		FWDEdges: NewList[_EdgeEntry](2),
		BWDEdges: NewList[_EdgeEntry](2),
	})
}

// Adds an outgoing entry to node_a.
func (self *AdjacencyList) AddFWDEntry(node_a, node_b, edge_id int32) {
	self.node_entries[node_a].FWDEdges.Add(_EdgeEntry{EdgeID: edge_id, OtherID: node_b})
}

// Adds an ingoing entry to node_b.
func (self *AdjacencyList) AddBWDEntry(node_a, node_b, edge_id int32) {
	self.node_entries[node_b].BWDEdges.Add(_EdgeEntry{EdgeID: edge_id, OtherID: node_a})
}

func (self *AdjacencyList) NodeCount() int {
	return self.node_entries.Length()
}

func (self *AdjacencyList) GetDegree(node int32, forward bool) int16 {
	entry := self.node_entries[node]
	if forward {
		return int16(entry.FWDEdges.Length())
	}
	return int16(entry.BWDEdges.Length())
}

//*******************************************
// static adjacency (csr)
//*******************************************

type _NodeRef struct {
	FWDStart int32
	FWDCount int16
	BWDStart int32
	BWDCount int16
}

type AdjacencyArray struct {
	node_refs   Array[_NodeRef]
	fwd_entries Array[_EdgeEntry]
	bwd_entries Array[_EdgeEntry]
}

func AdjacencyListToArray(dyn *AdjacencyList) *AdjacencyArray {
	node_refs := NewArray[_NodeRef](dyn.node_entries.Length())
	fwd_entries := NewList[_EdgeEntry](dyn.node_entries.Length() * 2)
	bwd_entries := NewList[_EdgeEntry](dyn.node_entries.Length() * 2)
	for i, entry := range dyn.node_entries {
		node_refs[i].FWDStart = int32(fwd_entries.Length())
		node_refs[i].FWDCount = int16(entry.FWDEdges.Length())
		for _, e := range entry.FWDEdges {
			fwd_entries.Add(e)
		}
		node_refs[i].BWDStart = int32(bwd_entries.Length())
		node_refs[i].BWDCount = int16(entry.BWDEdges.Length())
		for _, e := range entry.BWDEdges {
			bwd_entries.Add(e)
		}
	}
	return &AdjacencyArray{
		node_refs:   node_refs,
		fwd_entries: Array[_EdgeEntry](fwd_entries),
		bwd_entries: Array[_EdgeEntry](bwd_entries),
	}
}

func (self *AdjacencyArray) NodeCount() int {
	return self.node_refs.Length()
}

func (self *AdjacencyArray) GetDegree(node int32, forward bool) int16 {
	ref := self.node_refs[node]
	if forward {
		return ref.FWDCount
	}
	return ref.BWDCount
}

func (self *AdjacencyArray) GetAccessor() AdjArrayAccessor {
	return AdjArrayAccessor{
		topology: self,
	}
}

//*******************************************
// adjacency accessor
//*******************************************

var _ IAdjAccessor = &AdjArrayAccessor{}

type AdjArrayAccessor struct {
	topology *AdjacencyArray
	entries  Array[_EdgeEntry]
	state    int32
	end      int32
	curr     _EdgeEntry
}

func (self *AdjArrayAccessor) SetBaseNode(node int32, forward bool) {
	ref := self.topology.node_refs[node]
	if forward {
		self.entries = self.topology.fwd_entries
		self.state = ref.FWDStart
		self.end = ref.FWDStart + int32(ref.FWDCount)
	} else {
		self.entries = self.topology.bwd_entries
		self.state = ref.BWDStart
		self.end = ref.BWDStart + int32(ref.BWDCount)
	}
}

func (self *AdjArrayAccessor) Next() bool {
	if self.state >= self.end {
		return false
	}
	self.curr = self.entries[self.state]
	self.state += 1
	return true
}

func (self *AdjArrayAccessor) GetEdgeID() int32 {
	return self.curr.EdgeID
}

func (self *AdjArrayAccessor) GetOtherID() int32 {
	return self.curr.OtherID
}

//*******************************************
// load and store
//*******************************************

func StoreAdjacency(topology *AdjacencyArray, filename string) {
	topobuffer := bytes.Buffer{}

	binary.Write(&topobuffer, binary.LittleEndian, int32(topology.node_refs.Length()))
	binary.Write(&topobuffer, binary.LittleEndian, int32(topology.fwd_entries.Length()))
	binary.Write(&topobuffer, binary.LittleEndian, int32(topology.bwd_entries.Length()))
	for _, ref := range topology.node_refs {
		binary.Write(&topobuffer, binary.LittleEndian, ref.FWDStart)
		binary.Write(&topobuffer, binary.LittleEndian, ref.FWDCount)
		binary.Write(&topobuffer, binary.LittleEndian, ref.BWDStart)
		binary.Write(&topobuffer, binary.LittleEndian, ref.BWDCount)
	}
	for _, entry := range topology.fwd_entries {
		binary.Write(&topobuffer, binary.LittleEndian, entry.EdgeID)
		binary.Write(&topobuffer, binary.LittleEndian, entry.OtherID)
	}
	for _, entry := range topology.bwd_entries {
		binary.Write(&topobuffer, binary.LittleEndian, entry.EdgeID)
		binary.Write(&topobuffer, binary.LittleEndian, entry.OtherID)
	}

	topofile, _ := os.Create(filename)
	defer topofile.Close()
	topofile.Write(topobuffer.Bytes())
}

func LoadAdjacency(file string) *AdjacencyArray {
	_, err := os.Stat(file)
	if errors.Is(err, os.ErrNotExist) {
		panic("file not found: " + file)
	}

	topodata, _ := os.ReadFile(file)
	toporeader := bytes.NewReader(topodata)
	var nodecount int32
	binary.Read(toporeader, binary.LittleEndian, &nodecount)
	var fwdcount int32
	binary.Read(toporeader, binary.LittleEndian, &fwdcount)
	var bwdcount int32
	binary.Read(toporeader, binary.LittleEndian, &bwdcount)
	node_refs := NewArray[_NodeRef](int(nodecount))
	for i := 0; i < int(nodecount); i++ {
		binary.Read(toporeader, binary.LittleEndian, &node_refs[i].FWDStart)
		binary.Read(toporeader, binary.LittleEndian, &node_refs[i].FWDCount)
		binary.Read(toporeader, binary.LittleEndian, &node_refs[i].BWDStart)
		binary.Read(toporeader, binary.LittleEndian, &node_refs[i].BWDCount)
	}
	fwd_entries := NewArray[_EdgeEntry](int(fwdcount))
	for i := 0; i < int(fwdcount); i++ {
		binary.Read(toporeader, binary.LittleEndian, &fwd_entries[i].EdgeID)
		binary.Read(toporeader, binary.LittleEndian, &fwd_entries[i].OtherID)
	}
	bwd_entries := NewArray[_EdgeEntry](int(bwdcount))
	for i := 0; i < int(bwdcount); i++ {
		binary.Read(toporeader, binary.LittleEndian, &bwd_entries[i].EdgeID)
		binary.Read(toporeader, binary.LittleEndian, &bwd_entries[i].OtherID)
	}

	return &AdjacencyArray{
		node_refs:   node_refs,
		fwd_entries: fwd_entries,
		bwd_entries: bwd_entries,
	}
}

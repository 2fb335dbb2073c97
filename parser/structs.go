package parser

import (
	"github.com/ttpr0/go-lineplanner/geo"
	. "github.com/ttpr0/go-lineplanner/util"
)

//*******************************************
// parser structs
//*******************************************

type TempNode struct {
	Point geo.Coord
	Count int32
}
type OSMNode struct {
	Point geo.Coord
}
type OSMEdge struct {
	NodeA int
	NodeB int
	Nodes List[geo.Coord]
}

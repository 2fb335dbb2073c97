package structs

import (
	"github.com/ttpr0/go-lineplanner/geo"
)

//*******************************************
// graph structs
//*******************************************

type Node struct {
	Loc geo.Coord
}

type Edge struct {
	NodeA int32
	NodeB int32
}

package graph

//*******************************************
// enums
//*******************************************

type Direction byte

const (
	BACKWARD Direction = 0
	FORWARD  Direction = 1
)

type Adjacency byte

const (
	ADJACENT_EDGES Adjacency = 0
	ADJACENT_ALL   Adjacency = 2
)

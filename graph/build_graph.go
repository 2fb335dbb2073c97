package graph

import (
	"github.com/ttpr0/go-lineplanner/comps"
	. "github.com/ttpr0/go-lineplanner/util"
)

//*******************************************
// build graphs
//*******************************************

func BuildGraph(base comps.IGraphBase, weight comps.IWeighting, index Optional[comps.IGraphIndex]) *Graph {
	return &Graph{
		base:   base,
		weight: weight,
		index:  index,
	}
}

package comps

import (
	"errors"
	"os"

	. "github.com/ttpr0/go-lineplanner/util"
)

//*******************************************
// weighting interface
//*******************************************

type IWeighting interface {
	GetEdgeWeight(edge int32) float32
}

//*******************************************
// default weighting
//*******************************************

var _ IWeighting = &DefaultWeighting{}

// Stores one weight per edge, the walking distance in metres.
type DefaultWeighting struct {
	edge_weights []float32
}

func NewDefaultWeighting(base IGraphBase) *DefaultWeighting {
	return &DefaultWeighting{
		edge_weights: make([]float32, base.EdgeCount()),
	}
}

func (self *DefaultWeighting) GetEdgeWeight(edge int32) float32 {
	return self.edge_weights[edge]
}
func (self *DefaultWeighting) SetEdgeWeight(edge int32, weight float32) {
	self.edge_weights[edge] = weight
}

func (self *DefaultWeighting) _New() *DefaultWeighting {
	return &DefaultWeighting{}
}
func (self *DefaultWeighting) _Load(path string) {
	file := path + "-weight"
	_, err := os.Stat(file)
	if errors.Is(err, os.ErrNotExist) {
		panic("file not found: " + file)
	}

	data, _ := os.ReadFile(file)
	reader := NewBufferReader(data)

	weights := ReadArray[float32](reader)

	*self = DefaultWeighting{
		edge_weights: weights,
	}
}
func (self *DefaultWeighting) _Store(path string) {
	filename := path + "-weight"
	writer := NewBufferWriter()

	WriteArray(writer, self.edge_weights)

	weightfile, _ := os.Create(filename)
	defer weightfile.Close()
	weightfile.Write(writer.Bytes())
}

//*******************************************
// equal weighting
//*******************************************

// Every edge costs one hop, used by tests and topology checks.
type EqualWeighting struct{}

func NewEqualWeighting() *EqualWeighting {
	return &EqualWeighting{}
}

func (self *EqualWeighting) GetEdgeWeight(edge int32) float32 {
	return 1
}

package layers

import (
	"github.com/ttpr0/go-lineplanner/geo"
	. "github.com/ttpr0/go-lineplanner/util"
)

//*******************************************
// centroids and layers
//*******************************************

// A weighted population point aggregated from one building.
//
// Source is the originating OSM way id and serves as the identity when
// layers are merged. StreetNode is the precomputed closest street-graph
// node, -1 if none was in snapping range.
type Centroid struct {
	Point      geo.Coord `json:"point"`
	Weight     float64   `json:"weight"`
	Source     int64     `json:"source"`
	StreetNode int32     `json:"street_node"`
	StreetDist float32   `json:"street_dist"`
}

// One category of centroids from one ingested map area.
type Layer struct {
	ID        string     `json:"id"`
	Type      LayerType  `json:"type"`
	Area      string     `json:"area"`
	Centroids []Centroid `json:"centroids"`
}

// Appends the centroids of other, dropping every centroid whose Source
// already occurs. Merging a layer with itself is a no-op.
func (self Layer) Merge(other Layer) Layer {
	centroids := _MergeCentroids(self.Centroids, other.Centroids)
	return Layer{
		ID:        self.ID,
		Type:      self.Type,
		Area:      self.Area,
		Centroids: centroids,
	}
}

func _MergeCentroids(groups ...[]Centroid) []Centroid {
	seen := NewDict[int64, bool](100)
	merged := NewList[Centroid](100)
	for _, group := range groups {
		for _, centroid := range group {
			if seen.ContainsKey(centroid.Source) {
				continue
			}
			seen.Set(centroid.Source, true)
			merged.Add(centroid)
		}
	}
	return merged
}

//*******************************************
// layer set
//*******************************************

type Layers struct {
	Entries List[Layer] `json:"layers"`
}

func NewLayers() Layers {
	return Layers{
		Entries: NewList[Layer](4),
	}
}

func (self *Layers) Add(layer Layer) {
	self.Entries.Add(layer)
}

func (self *Layers) Remove(id string) bool {
	for i, layer := range self.Entries {
		if layer.ID == id {
			self.Entries = append(self.Entries[:i], self.Entries[i+1:]...)
			return true
		}
	}
	return false
}

func (self *Layers) Get(id string) (Layer, bool) {
	for _, layer := range self.Entries {
		if layer.ID == id {
			return layer, true
		}
	}
	return Layer{}, false
}

// Returns the deduplicated centroids of one category across every
// ingested area.
func (self *Layers) Centroids(typ LayerType) []Centroid {
	groups := NewList[[]Centroid](self.Entries.Length())
	for _, layer := range self.Entries {
		if layer.Type != typ {
			continue
		}
		groups.Add(layer.Centroids)
	}
	return _MergeCentroids(groups...)
}

// Flattens every category into a single deduplicated collection.
func (self *Layers) AllCentroids() []Centroid {
	groups := NewList[[]Centroid](self.Entries.Length())
	for _, layer := range self.Entries {
		groups.Add(layer.Centroids)
	}
	return _MergeCentroids(groups...)
}

// Returns one merged layer per category present in the set, in the
// order of LayerTypes.
func (self *Layers) AllMergedByType() []Layer {
	merged := NewList[Layer](3)
	for _, typ := range LayerTypes() {
		centroids := self.Centroids(typ)
		if len(centroids) == 0 {
			continue
		}
		merged.Add(Layer{
			Type:      typ,
			Centroids: centroids,
		})
	}
	return merged
}

// Returns the whole set merged into a single layer.
func (self *Layers) AllMerged() Layer {
	return Layer{
		Centroids: self.AllCentroids(),
	}
}

//*******************************************
// persistence
//*******************************************

func StoreLayers(layers *Layers, file string) {
	WriteJSONToFile(*layers, file)
}

// Missing or never stored layer files yield an empty set.
func LoadLayers(file string) Layers {
	if !FileExists(file) {
		return NewLayers()
	}
	return ReadJSONFromFile[Layers](file)
}

package population

import (
	"github.com/google/uuid"
	"github.com/ttpr0/go-lineplanner/geo"
	"github.com/ttpr0/go-lineplanner/graph"
	"github.com/ttpr0/go-lineplanner/layers"
	. "github.com/ttpr0/go-lineplanner/util"
)

//*******************************************
// extracted buildings
//*******************************************

// Population centroids extracted from the building footprints of one
// map extract, grouped by category.
type Buildings struct {
	Residences []layers.Centroid `json:"residences"`
	Workplaces []layers.Centroid `json:"workplaces"`
	Schools    []layers.Centroid `json:"schools"`
}

func (self *Buildings) Get(typ layers.LayerType) []layers.Centroid {
	switch typ {
	case layers.RESIDENCE:
		return self.Residences
	case layers.WORKPLACE:
		return self.Workplaces
	case layers.SCHOOL:
		return self.Schools
	}
	return nil
}

func (self *Buildings) CentroidCount() int {
	return len(self.Residences) + len(self.Workplaces) + len(self.Schools)
}

// Wraps the extracted centroids into one layer per non-empty category.
func (self *Buildings) ToLayers(area string) []layers.Layer {
	result := NewList[layers.Layer](3)
	for _, typ := range layers.LayerTypes() {
		centroids := self.Get(typ)
		if len(centroids) == 0 {
			continue
		}
		result.Add(layers.Layer{
			ID:        uuid.New().String(),
			Type:      typ,
			Area:      area,
			Centroids: centroids,
		})
	}
	return result
}

// Precomputes the closest street node of every centroid, so that
// coverage lookups only need one graph expansion per station.
func (self *Buildings) SnapToGraph(g graph.IGraph) {
	for _, centroids := range [][]layers.Centroid{self.Residences, self.Workplaces, self.Schools} {
		for i := range centroids {
			node, ok := g.GetClosestNode(centroids[i].Point)
			if !ok {
				centroids[i].StreetNode = -1
				centroids[i].StreetDist = 0
				continue
			}
			centroids[i].StreetNode = node
			centroids[i].StreetDist = geo.HaversineDistance(centroids[i].Point, g.GetNodeGeom(node))
		}
	}
}

//*******************************************
// persistence
//*******************************************

func StoreBuildings(buildings *Buildings, path string) {
	WriteJSONToFile(*buildings, path+"-buildings")
}

func LoadBuildings(path string) *Buildings {
	buildings := ReadJSONFromFile[Buildings](path + "-buildings")
	return &buildings
}

func BuildingsExist(path string) bool {
	return FileExists(path + "-buildings")
}

//*******************************************
// per-category totals
//*******************************************

// Covered population per category, the shape of the station-info
// response.
type InhabitantsMap map[string]float64

func NewInhabitantsMap(entries []Tuple[layers.LayerType, float64]) InhabitantsMap {
	result := InhabitantsMap{}
	for _, entry := range entries {
		result[entry.A.String()] = entry.B
	}
	return result
}

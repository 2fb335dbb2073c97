package population

import (
	"context"
	"math"
	"os"
	"runtime"
	"strconv"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"golang.org/x/exp/slog"

	"github.com/ttpr0/go-lineplanner/geo"
	"github.com/ttpr0/go-lineplanner/layers"
	. "github.com/ttpr0/go-lineplanner/util"
)

//*******************************************
// occupancy estimation
//*******************************************

// Floor-space per person used to estimate building occupancies.
type Config struct {
	SqmPerInhabitant float64 `yaml:"sqm_per_inhabitant"`
	SqmPerJob        float64 `yaml:"sqm_per_job"`
	SqmPerPupil      float64 `yaml:"sqm_per_pupil"`
}

func DefaultConfig() Config {
	return Config{
		SqmPerInhabitant: 40,
		SqmPerJob:        25,
		SqmPerPupil:      10,
	}
}

//*******************************************
// building extraction
//*******************************************

// ExtractBuildings scans the pbf-file for building footprints and
// estimates the population of every usable one.
func ExtractBuildings(pbf_file string, conf Config) (*Buildings, error) {
	temp_buildings := NewList[_TempBuilding](1000)
	node_coords := NewDict[int64, geo.Coord](1000)
	err := _ScanBuildings(pbf_file, &temp_buildings, &node_coords)
	if err != nil {
		return nil, err
	}
	return _AssembleBuildings(temp_buildings, node_coords, conf), nil
}

func _AssembleBuildings(temp_buildings List[_TempBuilding], node_coords Dict[int64, geo.Coord], conf Config) *Buildings {
	buildings := Buildings{
		Residences: make([]layers.Centroid, 0),
		Workplaces: make([]layers.Centroid, 0),
		Schools:    make([]layers.Centroid, 0),
	}
	for _, building := range temp_buildings {
		ring_coords := make([]geo.Coord, 0, len(building.NodeRefs))
		valid := true
		for _, ref := range building.NodeRefs {
			if !node_coords.ContainsKey(ref) {
				valid = false
				break
			}
			ring_coords = append(ring_coords, node_coords.Get(ref))
		}
		if !valid {
			continue
		}
		centroid, ok := _BuildCentroid(building.ID, ring_coords, building.Type, building.Levels, conf)
		if !ok {
			continue
		}
		switch building.Type {
		case layers.RESIDENCE:
			buildings.Residences = append(buildings.Residences, centroid)
		case layers.WORKPLACE:
			buildings.Workplaces = append(buildings.Workplaces, centroid)
		case layers.SCHOOL:
			buildings.Schools = append(buildings.Schools, centroid)
		}
	}
	slog.Info("extracted buildings", "residences", len(buildings.Residences), "workplaces", len(buildings.Workplaces), "schools", len(buildings.Schools))
	return &buildings
}

type _TempBuilding struct {
	ID       int64
	Type     layers.LayerType
	Levels   float64
	NodeRefs []int64
}

func _ScanBuildings(pbf_file string, temp_buildings *List[_TempBuilding], node_coords *Dict[int64, geo.Coord]) error {
	file, err := os.Open(pbf_file)
	if err != nil {
		return err
	}
	defer file.Close()

	// first pass: building ways and their node-refs
	needed_nodes := NewDict[int64, bool](1000)
	scanner := osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		object := scanner.Object()
		way := object.(*osm.Way)
		tags := NewDict[string, string](len(way.Tags))
		for _, tag := range way.Tags {
			tags.Set(tag.Key, tag.Value)
		}
		typ, ok := _ClassifyBuilding(tags)
		if !ok {
			continue
		}
		refs := make([]int64, 0, len(way.Nodes))
		for _, node := range way.Nodes {
			refs = append(refs, int64(node.ID))
			needed_nodes.Set(int64(node.ID), true)
		}
		temp_buildings.Add(_TempBuilding{
			ID:       int64(way.ID),
			Type:     typ,
			Levels:   _BuildingLevels(tags),
			NodeRefs: refs,
		})
	}
	scanner.Close()
	file.Seek(0, 0)

	// second pass: coordinates of the referenced nodes
	scanner = osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
	scanner.SkipWays = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		object := scanner.Object()
		node := object.(*osm.Node)
		if !needed_nodes.ContainsKey(int64(node.ID)) {
			continue
		}
		node_coords.Set(int64(node.ID), geo.Coord{float32(node.Lon), float32(node.Lat)})
	}
	scanner.Close()
	return nil
}

//*******************************************
// classification
//*******************************************

// Maps the building and amenity tags onto a population category.
// Untagged "yes" buildings count as residences, everything without a
// usable tag is skipped.
func _ClassifyBuilding(tags Dict[string, string]) (layers.LayerType, bool) {
	building := ""
	if tags.ContainsKey("building") {
		building = tags.Get("building")
	}
	if building == "" || building == "no" {
		return 0, false
	}
	switch building {
	case "school", "university", "kindergarten", "college":
		return layers.SCHOOL, true
	case "commercial", "industrial", "office", "retail", "warehouse", "supermarket":
		return layers.WORKPLACE, true
	case "residential", "house", "apartments", "detached", "semidetached_house", "terrace", "dormitory", "bungalow":
		return layers.RESIDENCE, true
	}
	if tags.ContainsKey("amenity") {
		switch tags.Get("amenity") {
		case "school", "university", "kindergarten", "college":
			return layers.SCHOOL, true
		case "restaurant", "cafe", "fast_food", "bank", "pharmacy", "marketplace":
			return layers.WORKPLACE, true
		}
	}
	if tags.ContainsKey("shop") || tags.ContainsKey("office") {
		return layers.WORKPLACE, true
	}
	if building == "yes" {
		return layers.RESIDENCE, true
	}
	return 0, false
}

func _BuildingLevels(tags Dict[string, string]) float64 {
	levels := 1.0
	if tags.ContainsKey("building:levels") {
		parsed, err := strconv.ParseFloat(tags.Get("building:levels"), 64)
		if err == nil && !math.IsNaN(parsed) {
			levels = parsed
		}
	}
	if levels < 1 {
		levels = 1
	}
	if levels > 100 {
		levels = 100
	}
	return levels
}

//*******************************************
// footprint geometry
//*******************************************

// Computes the centroid and estimated occupancy of one footprint ring.
// Degenerate footprints with less than three distinct corners or
// without area are rejected.
func _BuildCentroid(id int64, ring_coords []geo.Coord, typ layers.LayerType, levels float64, conf Config) (layers.Centroid, bool) {
	ring := make(orb.Ring, 0, len(ring_coords)+1)
	for _, coord := range ring_coords {
		ring = append(ring, orb.Point{float64(coord[0]), float64(coord[1])})
	}
	if len(ring) == 0 {
		return layers.Centroid{}, false
	}
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	distinct := 0
	seen := NewDict[orb.Point, bool](len(ring))
	for _, point := range ring[:len(ring)-1] {
		if !seen.ContainsKey(point) {
			seen.Set(point, true)
			distinct += 1
		}
	}
	if distinct < 3 {
		return layers.Centroid{}, false
	}
	center, _ := planar.CentroidArea(ring)
	area := math.Abs(orbgeo.Area(ring))
	if area == 0 {
		return layers.Centroid{}, false
	}
	weight := _EstimateWeight(typ, area, levels, conf)
	return layers.Centroid{
		Point:      geo.Coord{float32(center[0]), float32(center[1])},
		Weight:     weight,
		Source:     id,
		StreetNode: -1,
		StreetDist: 0,
	}, true
}

func _EstimateWeight(typ layers.LayerType, area float64, levels float64, conf Config) float64 {
	switch typ {
	case layers.RESIDENCE:
		return area * levels / conf.SqmPerInhabitant
	case layers.WORKPLACE:
		return area * levels / conf.SqmPerJob
	case layers.SCHOOL:
		return area / conf.SqmPerPupil
	}
	return 0
}

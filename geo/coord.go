package geo

import (
	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

//*******************************************
// geographic primitives
//*******************************************

// Coord is a (lon, lat) pair.
type Coord [2]float32

type CoordArray []Coord

func (self Coord) ToPoint() orb.Point {
	return orb.Point{float64(self[0]), float64(self[1])}
}

func FromPoint(point orb.Point) Coord {
	return Coord{float32(point[0]), float32(point[1])}
}

func (self CoordArray) ToLineString() orb.LineString {
	line := make(orb.LineString, len(self))
	for i, c := range self {
		line[i] = c.ToPoint()
	}
	return line
}

//*******************************************
// distances
//*******************************************

// Haversine distance in metres.
func HaversineDistance(a, b Coord) float32 {
	return float32(orbgeo.DistanceHaversine(a.ToPoint(), b.ToPoint()))
}

// Summed haversine length of a coordinate sequence in metres.
func HaversineLength(coords CoordArray) float32 {
	length := float32(0)
	for i := 0; i < len(coords)-1; i++ {
		length += HaversineDistance(coords[i], coords[i+1])
	}
	return length
}

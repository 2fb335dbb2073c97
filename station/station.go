package station

import (
	"errors"
	"math"

	"github.com/ttpr0/go-lineplanner/coverage"
	"github.com/ttpr0/go-lineplanner/geo"
	"github.com/ttpr0/go-lineplanner/graph"
	"github.com/ttpr0/go-lineplanner/layers"
	"github.com/ttpr0/go-lineplanner/routing"
	. "github.com/ttpr0/go-lineplanner/util"
)

var ErrNoRoute = errors.New("no route supplied")

type OptimalStationResult struct {
	Location geo.Coord        `json:"location"`
	Gain     float64          `json:"gain"`
	Method   coverage.Method  `json:"method"`
	Routing  coverage.Routing `json:"routing"`
}

//**********************************************************
// optimal station search
//**********************************************************

// Searches the route for the point that covers the most population not
// already covered by the existing stations.
//
// Candidates are the route vertices plus interpolated points every
// sample_interval metres. Only candidates with at least one centroid
// within search_radius are evaluated; their gain is the weight of the
// previously uncovered centroids within radius under the given method
// and routing. Ties go to the earliest route position, and if no
// candidate gains anything the first one is returned with gain zero.
func FindOptimalStation(route []geo.Coord, search_radius float64, sample_interval float64, centroids []layers.Centroid, stations []coverage.Station, method coverage.Method, router coverage.Routing, radius float64, g graph.IGraph) (OptimalStationResult, error) {
	if len(route) == 0 {
		return OptimalStationResult{}, ErrNoRoute
	}
	if router == coverage.OSM && (g == nil || g.NodeCount() == 0) {
		return OptimalStationResult{}, coverage.ErrNoGraph
	}

	covered, err := _CoveredCentroids(stations, centroids, method, router, radius, g)
	if err != nil {
		return OptimalStationResult{}, err
	}

	candidates := _EnumerateCandidates(route, sample_interval)
	index := _BuildCentroidIndex(centroids)

	var solver routing.ISolver
	if router == coverage.OSM {
		solver = routing.NewRangeDijkstra(g, float32(radius)).CreateSolver()
	}

	best := 0
	best_gain := 0.0
	for i, candidate := range candidates {
		if !_HasCentroidNearby(index, candidate, search_radius) {
			continue
		}
		gain := _CalcGain(candidate, centroids, covered, router, radius, g, solver)
		if gain > best_gain {
			best = i
			best_gain = gain
		}
	}

	return OptimalStationResult{
		Location: candidates[best],
		Gain:     best_gain,
		Method:   method,
		Routing:  router,
	}, nil
}

// Marks every centroid already attributed to an existing station.
func _CoveredCentroids(stations []coverage.Station, centroids []layers.Centroid, method coverage.Method, router coverage.Routing, radius float64, g graph.IGraph) ([]bool, error) {
	covered := make([]bool, len(centroids))
	if len(stations) == 0 {
		return covered, nil
	}
	result, err := coverage.CalcCoverage(stations, centroids, method, router, radius, g)
	if err != nil {
		return nil, err
	}
	for _, entry := range result.Entries {
		for _, attributed := range entry.Centroids {
			covered[attributed.Centroid] = true
		}
	}
	return covered, nil
}

// Candidate locations are the route vertices plus a point every
// sample_interval metres along each segment.
func _EnumerateCandidates(route []geo.Coord, sample_interval float64) []geo.Coord {
	candidates := NewList[geo.Coord](len(route))
	for i := 0; i < len(route)-1; i++ {
		from := route[i]
		to := route[i+1]
		candidates.Add(from)
		seg_len := float64(geo.HaversineDistance(from, to))
		if sample_interval <= 0 {
			continue
		}
		for k := 1; float64(k)*sample_interval < seg_len; k++ {
			t := float32(float64(k) * sample_interval / seg_len)
			candidates.Add(geo.Coord{
				from[0] + t*(to[0]-from[0]),
				from[1] + t*(to[1]-from[1]),
			})
		}
	}
	candidates.Add(route[len(route)-1])
	return candidates
}

func _BuildCentroidIndex(centroids []layers.Centroid) KDTree[int32] {
	tree := NewKDTree[int32](2)
	for i, centroid := range centroids {
		point := centroid.Point
		tree.Insert(point[:], int32(i))
	}
	return tree
}

// Checks against the centroid index whether any centroid is within
// search_radius metres. The radius is widened into a degree bound that
// always contains the metric circle, so the check never misses, only
// lets the odd too-far candidate through.
func _HasCentroidNearby(index KDTree[int32], point geo.Coord, search_radius float64) bool {
	lat := float64(point[1]) * math.Pi / 180.0
	bound := math.Sqrt2 * search_radius / (111320.0 * math.Cos(lat))
	_, ok := index.GetClosest(point[:], float32(math.Abs(bound)))
	return ok
}

// Weight of the not yet covered centroids within radius of the
// candidate.
func _CalcGain(candidate geo.Coord, centroids []layers.Centroid, covered []bool, router coverage.Routing, radius float64, g graph.IGraph, solver routing.ISolver) float64 {
	gain := 0.0
	if router == coverage.NAIVE {
		for i, centroid := range centroids {
			if covered[i] {
				continue
			}
			if float64(geo.HaversineDistance(candidate, centroid.Point)) <= radius {
				gain += centroid.Weight
			}
		}
		return gain
	}

	node, ok := g.GetClosestNode(candidate)
	if !ok {
		return 0
	}
	snap_dist := geo.HaversineDistance(candidate, g.GetNodeGeom(node))
	starts := [1]Tuple[int32, float32]{{node, snap_dist}}
	solver.CalcDistanceFromStart(starts[:])

	for i, centroid := range centroids {
		if covered[i] || centroid.StreetNode == -1 {
			continue
		}
		dist := solver.GetDistance(centroid.StreetNode) + centroid.StreetDist
		if float64(dist) <= radius {
			gain += centroid.Weight
		}
	}
	return gain
}

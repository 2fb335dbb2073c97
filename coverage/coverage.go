package coverage

import (
	"errors"
	"math"
	"runtime"
	"sync"

	"github.com/ttpr0/go-lineplanner/geo"
	"github.com/ttpr0/go-lineplanner/graph"
	"github.com/ttpr0/go-lineplanner/layers"
	"github.com/ttpr0/go-lineplanner/routing"
	. "github.com/ttpr0/go-lineplanner/util"
)

var ErrNoStations = errors.New("no stations supplied")
var ErrNoGraph = errors.New("street graph is empty")

//**********************************************************
// coverage result
//**********************************************************

type Station struct {
	ID    string    `json:"id"`
	Point geo.Coord `json:"location"`
}

type CoveredCentroid struct {
	// index into the centroids the coverage was computed for
	Centroid int32   `json:"centroid"`
	Distance float64 `json:"distance"`
	Share    float64 `json:"share"`
}

type StationCoverage struct {
	Station   Station               `json:"station"`
	Weight    float64               `json:"weight"`
	Centroids List[CoveredCentroid] `json:"centroids"`
}

// Per-station covered population, entries parallel to the input
// stations.
type CoverageMap struct {
	Entries []StationCoverage `json:"entries"`
}

func (self *CoverageMap) Get(station_id string) (StationCoverage, bool) {
	for _, entry := range self.Entries {
		if entry.Station.ID == station_id {
			return entry, true
		}
	}
	return StationCoverage{}, false
}

func (self *CoverageMap) TotalWeight() float64 {
	total := 0.0
	for _, entry := range self.Entries {
		total += entry.Weight
	}
	return total
}

//**********************************************************
// coverage computation
//**********************************************************

// Computes how much population weight every station covers.
//
// Distances are computed per station, restricted to radius metres. With
// router OSM a single bounded shortest-path expansion per station serves
// every centroid lookup. Centroids out of range of all stations stay
// uncovered, centroids in range of several stations are allocated
// according to method.
func CalcCoverage(stations []Station, centroids []layers.Centroid, method Method, router Routing, radius float64, g graph.IGraph) (CoverageMap, error) {
	if len(stations) == 0 {
		return CoverageMap{}, ErrNoStations
	}
	if router == OSM && (g == nil || g.NodeCount() == 0) {
		return CoverageMap{}, ErrNoGraph
	}

	dists := _CalcStationDistances(stations, centroids, router, radius, g)
	return _AllocateCoverage(stations, centroids, dists, method, radius), nil
}

// Computes the distance of every centroid to every station, +Inf for
// unreachable ones. Stations are fanned out onto a worker pool, one
// shortest-path solver per worker.
func _CalcStationDistances(stations []Station, centroids []layers.Centroid, router Routing, radius float64, g graph.IGraph) [][]float32 {
	dists := make([][]float32, len(stations))
	station_chan := make(chan Tuple[int, Station], len(stations))
	for i, station := range stations {
		station_chan <- MakeTuple(i, station)
	}
	close(station_chan)

	var otm routing.IOneToMany
	if router == OSM {
		otm = routing.NewRangeDijkstra(g, float32(radius))
	}

	inf := float32(math.Inf(1))
	wg := sync.WaitGroup{}
	for i := 0; i < runtime.GOMAXPROCS(0); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var solver routing.ISolver
			if router == OSM {
				solver = otm.CreateSolver()
			}
			for {
				job, ok := <-station_chan
				if !ok {
					break
				}
				s := job.A
				station := job.B
				row := make([]float32, len(centroids))
				dists[s] = row

				if router == NAIVE {
					for c, centroid := range centroids {
						row[c] = geo.HaversineDistance(station.Point, centroid.Point)
					}
					continue
				}

				// stations without a street node in snapping range cover nothing
				station_node, ok := g.GetClosestNode(station.Point)
				if !ok {
					for c := range centroids {
						row[c] = inf
					}
					continue
				}
				snap_dist := geo.HaversineDistance(station.Point, g.GetNodeGeom(station_node))

				starts := [1]Tuple[int32, float32]{{station_node, snap_dist}}
				solver.CalcDistanceFromStart(starts[:])

				for c, centroid := range centroids {
					if centroid.StreetNode == -1 {
						row[c] = inf
						continue
					}
					row[c] = solver.GetDistance(centroid.StreetNode) + centroid.StreetDist
				}
			}
		}()
	}
	wg.Wait()

	return dists
}

// Distributes centroid weights over the stations in range.
func _AllocateCoverage(stations []Station, centroids []layers.Centroid, dists [][]float32, method Method, radius float64) CoverageMap {
	entries := make([]StationCoverage, len(stations))
	for i, station := range stations {
		entries[i] = StationCoverage{
			Station:   station,
			Centroids: NewList[CoveredCentroid](100),
		}
	}

	in_range := NewList[int](len(stations))
	for c, centroid := range centroids {
		in_range = in_range[:0]
		for s := range stations {
			if float64(dists[s][c]) <= radius {
				in_range.Add(s)
			}
		}
		if in_range.Length() == 0 {
			continue
		}

		if method == ABSOLUTE {
			// full weight to the nearest station, ties to the lowest index
			best := in_range[0]
			for _, s := range in_range[1:] {
				if dists[s][c] < dists[best][c] {
					best = s
				}
			}
			entries[best].Weight += centroid.Weight
			entries[best].Centroids.Add(CoveredCentroid{
				Centroid: int32(c),
				Distance: float64(dists[best][c]),
				Share:    centroid.Weight,
			})
		} else {
			// weight split inversely proportional to distance; distances are
			// clamped to 1m so collapsed geometry cannot divide by zero
			total_inv := 0.0
			nearest := in_range[0]
			for _, s := range in_range {
				total_inv += 1.0 / math.Max(float64(dists[s][c]), 1.0)
				if dists[s][c] < dists[nearest][c] {
					nearest = s
				}
			}
			assigned := 0.0
			for _, s := range in_range {
				if s == nearest {
					continue
				}
				share := centroid.Weight * (1.0 / math.Max(float64(dists[s][c]), 1.0)) / total_inv
				assigned += share
				entries[s].Weight += share
				entries[s].Centroids.Add(CoveredCentroid{
					Centroid: int32(c),
					Distance: float64(dists[s][c]),
					Share:    share,
				})
			}
			// the nearest station takes the remainder so that the shares sum
			// up to the centroid weight exactly
			share := centroid.Weight - assigned
			entries[nearest].Weight += share
			entries[nearest].Centroids.Add(CoveredCentroid{
				Centroid: int32(c),
				Distance: float64(dists[nearest][c]),
				Share:    share,
			})
		}
	}

	return CoverageMap{Entries: entries}
}

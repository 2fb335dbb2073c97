package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/ttpr0/go-lineplanner/coverage"
	"github.com/ttpr0/go-lineplanner/layers"
	. "github.com/ttpr0/go-lineplanner/util"
)

// Returns the covered centroids as geojson, each feature tagged with
// its closest covering station. The routing comes from the path so
// that clients can compare both routers.
func (self *Server) HandleCoverageInfo(c *gin.Context) {
	router, err := coverage.RoutingFromString(c.Param("router"))
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse("coverage-info", err.Error()))
		return
	}
	var request CoverageInfoRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse("coverage-info", err.Error()))
		return
	}
	if err := _ValidateStations(request.Stations); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse("coverage-info", err.Error()))
		return
	}

	merged := self.state.Merged()
	coverages, err := coverage.CalcCoverage(request.Stations, merged.Centroids, request.GetMethod(), router, self.config.Coverage.Radius, self.state.streets)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse("coverage-info", err.Error()))
		return
	}
	c.JSON(http.StatusOK, _CoverageGeoJSON(coverages, merged.Centroids))
}

func _CoverageGeoJSON(coverages coverage.CoverageMap, centroids []layers.Centroid) *geojson.FeatureCollection {
	best_station := NewDict[int32, string](100)
	best_dist := NewDict[int32, float64](100)
	for _, entry := range coverages.Entries {
		for _, covered := range entry.Centroids {
			if !best_dist.ContainsKey(covered.Centroid) || covered.Distance < best_dist.Get(covered.Centroid) {
				best_dist.Set(covered.Centroid, covered.Distance)
				best_station.Set(covered.Centroid, entry.Station.ID)
			}
		}
	}

	collection := geojson.NewFeatureCollection()
	for i := range centroids {
		index := int32(i)
		if !best_station.ContainsKey(index) {
			continue
		}
		feature := geojson.NewFeature(orb.Point{float64(centroids[i].Point[0]), float64(centroids[i].Point[1])})
		feature.Properties["station"] = best_station.Get(index)
		feature.Properties["distance"] = best_dist.Get(index)
		feature.Properties["weight"] = centroids[i].Weight
		collection.Append(feature)
	}
	return collection
}

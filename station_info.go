package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ttpr0/go-lineplanner/coverage"
	"github.com/ttpr0/go-lineplanner/layers"
	"github.com/ttpr0/go-lineplanner/population"
	. "github.com/ttpr0/go-lineplanner/util"
)

// Computes how many inhabitants, employees and pupils the given
// stations cover, one total per layer type.
func (self *Server) HandleStationInfo(c *gin.Context) {
	var request StationInfoRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse("station-info", err.Error()))
		return
	}
	if err := _ValidateStations(request.Stations); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse("station-info", err.Error()))
		return
	}

	merged := self.state.MergedByType()
	totals := NewList[Tuple[layers.LayerType, float64]](len(merged))
	for _, layer := range merged {
		coverages, err := coverage.CalcCoverage(request.Stations, layer.Centroids, request.GetMethod(), request.GetRouting(), self.config.Coverage.Radius, self.state.streets)
		if err != nil {
			c.JSON(http.StatusInternalServerError, NewErrorResponse("station-info", err.Error()))
			return
		}
		totals.Add(MakeTuple(layer.Type, coverages.TotalWeight()))
	}
	c.JSON(http.StatusOK, population.NewInhabitantsMap(totals))
}

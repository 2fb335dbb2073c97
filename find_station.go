package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ttpr0/go-lineplanner/station"
)

// Searches the point along the requested route where an additional
// station would cover the most yet-uncovered population.
func (self *Server) HandleFindStation(c *gin.Context) {
	var request FindStationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse("find-station", err.Error()))
		return
	}
	if err := _ValidateRoute(request.Route); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse("find-station", err.Error()))
		return
	}
	// an empty station list is fine here, the route may not have any
	// stations yet
	if err := _ValidateStationCoords(request.Stations); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse("find-station", err.Error()))
		return
	}

	merged := self.state.Merged()
	result, err := station.FindOptimalStation(
		request.Route,
		self.config.Station.SearchRadius,
		self.config.Station.SampleInterval,
		merged.Centroids,
		request.Stations,
		request.GetMethod(),
		request.GetRouting(),
		self.config.Coverage.Radius,
		self.state.streets,
	)
	if err != nil {
		if errors.Is(err, station.ErrNoRoute) {
			c.JSON(http.StatusBadRequest, NewErrorResponse("find-station", err.Error()))
		} else {
			c.JSON(http.StatusInternalServerError, NewErrorResponse("find-station", err.Error()))
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

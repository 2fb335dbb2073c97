package main

import (
	"errors"

	"github.com/ttpr0/go-lineplanner/coverage"
	"github.com/ttpr0/go-lineplanner/geo"
	"github.com/ttpr0/go-lineplanner/layers"
)

//**********************************************************
// request types
//**********************************************************

type StationInfoRequest struct {
	Stations []coverage.Station `json:"stations"`
	Method   *coverage.Method   `json:"method"`
	Routing  *coverage.Routing  `json:"routing"`
}

func (self *StationInfoRequest) GetMethod() coverage.Method {
	if self.Method == nil {
		return coverage.RELATIVE
	}
	return *self.Method
}

func (self *StationInfoRequest) GetRouting() coverage.Routing {
	if self.Routing == nil {
		return coverage.OSM
	}
	return *self.Routing
}

type CoverageInfoRequest struct {
	Stations []coverage.Station `json:"stations"`
	Method   *coverage.Method   `json:"method"`
}

func (self *CoverageInfoRequest) GetMethod() coverage.Method {
	if self.Method == nil {
		return coverage.RELATIVE
	}
	return *self.Method
}

type FindStationRequest struct {
	Stations []coverage.Station `json:"stations"`
	Route    []geo.Coord        `json:"route"`
	Method   *coverage.Method   `json:"method"`
	Routing  *coverage.Routing  `json:"routing"`
}

func (self *FindStationRequest) GetMethod() coverage.Method {
	if self.Method == nil {
		return coverage.RELATIVE
	}
	return *self.Method
}

func (self *FindStationRequest) GetRouting() coverage.Routing {
	if self.Routing == nil {
		return coverage.OSM
	}
	return *self.Routing
}

type CreateLayerRequest struct {
	Area string            `json:"area"`
	Type *layers.LayerType `json:"type"`
}

//**********************************************************
// validation
//**********************************************************

func _ValidCoord(coord geo.Coord) bool {
	return coord[0] >= -180 && coord[0] <= 180 && coord[1] >= -90 && coord[1] <= 90
}

func _ValidateStations(stations []coverage.Station) error {
	if len(stations) == 0 {
		return errors.New("at least one station is required")
	}
	return _ValidateStationCoords(stations)
}

func _ValidateStationCoords(stations []coverage.Station) error {
	for _, station := range stations {
		if !_ValidCoord(station.Point) {
			return errors.New("station location out of range")
		}
	}
	return nil
}

func _ValidateRoute(route []geo.Coord) error {
	if len(route) == 0 {
		return errors.New("an empty route cannot be optimized")
	}
	for _, point := range route {
		if !_ValidCoord(point) {
			return errors.New("route point out of range")
		}
	}
	return nil
}

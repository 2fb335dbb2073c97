package parser

import (
	. "github.com/ttpr0/go-lineplanner/util"
)

type IOSMDecoder interface {
	IsValidHighway(tags Dict[string, string]) bool
}

// Selects the ways a pedestrian can walk on.
type WalkingDecoder struct {
}

var walking_types = Dict[string, bool]{"primary": true, "primary_link": true, "secondary": true, "secondary_link": true,
	"tertiary": true, "tertiary_link": true, "residential": true, "living_street": true, "service": true,
	"track": true, "unclassified": true, "road": true, "footway": true, "path": true, "pedestrian": true,
	"steps": true, "cycleway": true}

func (self *WalkingDecoder) IsValidHighway(tags Dict[string, string]) bool {
	if !tags.ContainsKey("highway") {
		return false
	}
	if !walking_types.ContainsKey(tags.Get("highway")) {
		return false
	}
	return true
}

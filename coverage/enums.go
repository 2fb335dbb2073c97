package coverage

import (
	"encoding/json"
	"errors"
)

//*******************************************
// enums
//*******************************************

type Method int8

const (
	RELATIVE Method = 1
	ABSOLUTE Method = 2
)

func (self Method) String() string {
	switch self {
	case RELATIVE:
		return "relative"
	case ABSOLUTE:
		return "absolute"
	}
	return ""
}

func MethodFromString(typ string) Method {
	switch typ {
	case "relative":
		return RELATIVE
	case "absolute":
		return ABSOLUTE
	}
	return 0
}

func (self Method) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *Method) UnmarshalJSON(data []byte) error {
	var typ string
	if err := json.Unmarshal(data, &typ); err != nil {
		return err
	}
	method := MethodFromString(typ)
	if method == 0 {
		return errors.New("invalid coverage method")
	}
	*self = method
	return nil
}

type Routing int8

const (
	// walking distance along the street graph
	OSM Routing = 1
	// straight-line distance
	NAIVE Routing = 2
)

func (self Routing) String() string {
	switch self {
	case OSM:
		return "osm"
	case NAIVE:
		return "naive"
	}
	return ""
}

func RoutingFromString(typ string) Routing {
	switch typ {
	case "osm":
		return OSM
	case "naive":
		return NAIVE
	}
	return 0
}

func (self Routing) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *Routing) UnmarshalJSON(data []byte) error {
	var typ string
	if err := json.Unmarshal(data, &typ); err != nil {
		return err
	}
	routing := RoutingFromString(typ)
	if routing == 0 {
		return errors.New("invalid routing")
	}
	*self = routing
	return nil
}

package layers

import (
	"encoding/json"
	"errors"
)

//*******************************************
// enums
//*******************************************

type LayerType int8

const (
	RESIDENCE LayerType = 1
	WORKPLACE LayerType = 2
	SCHOOL    LayerType = 3
)

func (self LayerType) String() string {
	switch self {
	case RESIDENCE:
		return "residence"
	case WORKPLACE:
		return "workplace"
	case SCHOOL:
		return "school"
	}
	return ""
}

func LayerTypeFromString(typ string) LayerType {
	switch typ {
	case "residence":
		return RESIDENCE
	case "workplace":
		return WORKPLACE
	case "school":
		return SCHOOL
	}
	return 0
}

func LayerTypes() []LayerType {
	return []LayerType{RESIDENCE, WORKPLACE, SCHOOL}
}

func (self LayerType) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *LayerType) UnmarshalJSON(data []byte) error {
	var typ string
	if err := json.Unmarshal(data, &typ); err != nil {
		return err
	}
	layer_typ := LayerTypeFromString(typ)
	if layer_typ == 0 {
		return errors.New("invalid layer type")
	}
	*self = layer_typ
	return nil
}

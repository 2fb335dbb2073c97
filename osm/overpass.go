package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

const DefaultOverpassEndpoint = "https://overpass-api.de/api/interpreter"

//*******************************************
// overpass client
//*******************************************

// Client for ad-hoc queries against an Overpass interpreter.
type OverpassClient struct {
	endpoint string
	client   *http.Client
}

func NewOverpassClient(endpoint string) *OverpassClient {
	if endpoint == "" {
		endpoint = DefaultOverpassEndpoint
	}
	return &OverpassClient{
		endpoint: endpoint,
		client:   &http.Client{},
	}
}

type OverpassResponse struct {
	Version   float32           `json:"version"`
	Generator string            `json:"generator"`
	Elements  []OverpassElement `json:"elements"`
}

type OverpassElement struct {
	Type    string            `json:"type"`
	ID      int64             `json:"id"`
	Tags    map[string]string `json:"tags"`
	Bounds  OverpassBounds    `json:"bounds"`
	Members []OverpassMember  `json:"members"`
}

type OverpassBounds struct {
	MinLat float64 `json:"minlat"`
	MinLon float64 `json:"minlon"`
	MaxLat float64 `json:"maxlat"`
	MaxLon float64 `json:"maxlon"`
}

// BBox returns the bounds in the order the extract services expect.
func (self OverpassBounds) BBox() [4]float64 {
	return [4]float64{self.MaxLat, self.MaxLon, self.MinLat, self.MinLon}
}

type OverpassMember struct {
	Type     string          `json:"type"`
	Role     string          `json:"role"`
	Ref      int64           `json:"ref"`
	Geometry []OverpassPoint `json:"geometry"`
}

type OverpassPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Query posts a raw Overpass-QL query and decodes the json response.
func (self *OverpassClient) Query(ctx context.Context, query string) (OverpassResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, self.endpoint, strings.NewReader(query))
	if err != nil {
		return OverpassResponse{}, err
	}
	resp, err := self.client.Do(req)
	if err != nil {
		return OverpassResponse{}, fmt.Errorf("overpass query: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return OverpassResponse{}, fmt.Errorf("overpass query: %w: %v", ErrStatus, resp.Status)
	}
	var response OverpassResponse
	err = json.NewDecoder(resp.Body).Decode(&response)
	if err != nil {
		return OverpassResponse{}, fmt.Errorf("overpass response: %w", err)
	}
	return response, nil
}

//*******************************************
// admin-area search
//*******************************************

// Administrative boundary candidate for an extract download.
type AdminArea struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	AdminLevel  int        `json:"admin_level"`
	BoundingBox [4]float64 `json:"bounding_box"`
}

// SearchAdminAreas looks up administrative boundaries matching the
// given name, coarsest admin-level first.
func (self *OverpassClient) SearchAdminAreas(ctx context.Context, name string) ([]AdminArea, error) {
	query := fmt.Sprintf(`[out:json];relation["boundary"="administrative"]["name"=%s];out tags bb;`, strconv.Quote(name))
	response, err := self.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	areas := make([]AdminArea, 0, len(response.Elements))
	for _, element := range response.Elements {
		if element.Type != "relation" {
			continue
		}
		area_name := element.Tags["name"]
		if area_name == "" {
			continue
		}
		level := 99
		if parsed, err := strconv.Atoi(element.Tags["admin_level"]); err == nil {
			level = parsed
		}
		areas = append(areas, AdminArea{
			ID:          element.ID,
			Name:        area_name,
			AdminLevel:  level,
			BoundingBox: element.Bounds.BBox(),
		})
	}
	slices.SortFunc(areas, func(a, b AdminArea) int {
		return a.AdminLevel - b.AdminLevel
	})
	return areas, nil
}

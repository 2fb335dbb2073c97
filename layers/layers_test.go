package layers

import (
	"path/filepath"
	"testing"

	"github.com/ttpr0/go-lineplanner/geo"
)

func _TestCentroid(source int64, weight float64) Centroid {
	return Centroid{
		Point:      geo.Coord{9.0, 52.0},
		Weight:     weight,
		Source:     source,
		StreetNode: -1,
	}
}

func TestLayerMergeIdempotent(t *testing.T) {
	layer := Layer{
		ID:        "a",
		Type:      RESIDENCE,
		Centroids: []Centroid{_TestCentroid(1, 10), _TestCentroid(2, 20)},
	}

	merged := layer.Merge(layer)
	if len(merged.Centroids) != 2 {
		t.Errorf("len(merged.Centroids) = %v; want 2", len(merged.Centroids))
	}
	for i, centroid := range merged.Centroids {
		if centroid != layer.Centroids[i] {
			t.Errorf("merged.Centroids[%v] = %v; want %v", i, centroid, layer.Centroids[i])
		}
	}
}

func TestLayerMergeKeepsFirst(t *testing.T) {
	a := Layer{Type: RESIDENCE, Centroids: []Centroid{_TestCentroid(1, 10)}}
	b := Layer{Type: RESIDENCE, Centroids: []Centroid{_TestCentroid(1, 99), _TestCentroid(2, 20)}}

	merged := a.Merge(b)
	if len(merged.Centroids) != 2 {
		t.Errorf("len(merged.Centroids) = %v; want 2", len(merged.Centroids))
	}
	if merged.Centroids[0].Weight != 10 {
		t.Errorf("merged.Centroids[0].Weight = %v; want 10 (first occurrence wins)", merged.Centroids[0].Weight)
	}
}

func TestLayersCentroids(t *testing.T) {
	layers := NewLayers()
	layers.Add(Layer{ID: "a", Type: RESIDENCE, Centroids: []Centroid{_TestCentroid(1, 10), _TestCentroid(2, 20)}})
	layers.Add(Layer{ID: "b", Type: RESIDENCE, Centroids: []Centroid{_TestCentroid(2, 99), _TestCentroid(3, 30)}})
	layers.Add(Layer{ID: "c", Type: WORKPLACE, Centroids: []Centroid{_TestCentroid(4, 40)}})

	centroids := layers.Centroids(RESIDENCE)
	if len(centroids) != 3 {
		t.Errorf("len(Centroids(RESIDENCE)) = %v; want 3", len(centroids))
	}
	if centroids[1].Weight != 20 {
		t.Errorf("Centroids(RESIDENCE)[1].Weight = %v; want 20 (first occurrence wins)", centroids[1].Weight)
	}

	all := layers.AllCentroids()
	if len(all) != 4 {
		t.Errorf("len(AllCentroids()) = %v; want 4", len(all))
	}
}

func TestLayersAllMergedByType(t *testing.T) {
	layers := NewLayers()
	layers.Add(Layer{ID: "a", Type: WORKPLACE, Centroids: []Centroid{_TestCentroid(1, 10)}})
	layers.Add(Layer{ID: "b", Type: RESIDENCE, Centroids: []Centroid{_TestCentroid(2, 20)}})

	merged := layers.AllMergedByType()
	if len(merged) != 2 {
		t.Errorf("len(AllMergedByType()) = %v; want 2", len(merged))
	}
	// grouped layers come out in declaration order of the types
	if merged[0].Type != RESIDENCE || merged[1].Type != WORKPLACE {
		t.Errorf("merged types = %v, %v; want residence, workplace", merged[0].Type, merged[1].Type)
	}
}

func TestLayersRemove(t *testing.T) {
	layers := NewLayers()
	layers.Add(Layer{ID: "a", Type: RESIDENCE, Centroids: []Centroid{_TestCentroid(1, 10)}})
	layers.Add(Layer{ID: "b", Type: WORKPLACE, Centroids: []Centroid{_TestCentroid(2, 20)}})

	if !layers.Remove("a") {
		t.Errorf("Remove(a) = false; want true")
	}
	if layers.Remove("a") {
		t.Errorf("second Remove(a) = true; want false")
	}
	if layers.Entries.Length() != 1 {
		t.Errorf("Entries.Length() = %v; want 1", layers.Entries.Length())
	}
	if _, ok := layers.Get("b"); !ok {
		t.Errorf("Get(b) = _, false; want true")
	}
}

func TestStoreLoadLayers(t *testing.T) {
	layers := NewLayers()
	layers.Add(Layer{ID: "a", Type: SCHOOL, Area: "somewhere", Centroids: []Centroid{_TestCentroid(1, 10)}})
	file := filepath.Join(t.TempDir(), "layers")

	StoreLayers(&layers, file)
	loaded := LoadLayers(file)

	if loaded.Entries.Length() != 1 {
		t.Errorf("Entries.Length() = %v; want 1", loaded.Entries.Length())
	}
	layer := loaded.Entries.Get(0)
	if layer.ID != "a" || layer.Type != SCHOOL || layer.Area != "somewhere" {
		t.Errorf("loaded layer = %v; want id a, type school, area somewhere", layer)
	}
	if len(layer.Centroids) != 1 || layer.Centroids[0].Weight != 10 {
		t.Errorf("loaded centroids = %v; want one with weight 10", layer.Centroids)
	}
}

func TestLoadLayersMissing(t *testing.T) {
	loaded := LoadLayers(filepath.Join(t.TempDir(), "layers"))
	if loaded.Entries.Length() != 0 {
		t.Errorf("Entries.Length() = %v; want 0", loaded.Entries.Length())
	}
}

func TestLayerTypeRoundTrip(t *testing.T) {
	for _, typ := range LayerTypes() {
		parsed := LayerTypeFromString(typ.String())
		if parsed != typ {
			t.Errorf("LayerTypeFromString(%v) = %v; want %v", typ.String(), parsed, typ)
		}
	}
	if LayerTypeFromString("garbage") != 0 {
		t.Errorf("LayerTypeFromString(garbage) = %v; want 0", LayerTypeFromString("garbage"))
	}
}

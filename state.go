package main

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/exp/slog"

	"github.com/ttpr0/go-lineplanner/comps"
	"github.com/ttpr0/go-lineplanner/graph"
	"github.com/ttpr0/go-lineplanner/layers"
	"github.com/ttpr0/go-lineplanner/parser"
	"github.com/ttpr0/go-lineplanner/population"
	. "github.com/ttpr0/go-lineplanner/util"
)

//**********************************************************
// application state
//**********************************************************

// Shared state of all request handlers. The street graph and the
// extracted buildings are read-only after startup, only the layer set
// changes at runtime and is guarded by the lock.
type AppState struct {
	streets    *graph.Graph
	buildings  *population.Buildings
	layers     layers.Layers
	layer_file string
	lock       sync.RWMutex
}

func (self *AppState) LayerList() []layers.Layer {
	self.lock.RLock()
	defer self.lock.RUnlock()
	result := make([]layers.Layer, self.layers.Entries.Length())
	copy(result, self.layers.Entries)
	return result
}

func (self *AppState) MergedByType() []layers.Layer {
	self.lock.RLock()
	defer self.lock.RUnlock()
	return self.layers.AllMergedByType()
}

func (self *AppState) Merged() layers.Layer {
	self.lock.RLock()
	defer self.lock.RUnlock()
	return self.layers.AllMerged()
}

func (self *AppState) AddLayers(new_layers []layers.Layer) {
	self.lock.Lock()
	defer self.lock.Unlock()
	for _, layer := range new_layers {
		self.layers.Add(layer)
	}
	layers.StoreLayers(&self.layers, self.layer_file)
	self._UpdateLayerMetrics()
}

func (self *AppState) RemoveLayer(id string) bool {
	self.lock.Lock()
	defer self.lock.Unlock()
	removed := self.layers.Remove(id)
	if removed {
		layers.StoreLayers(&self.layers, self.layer_file)
		self._UpdateLayerMetrics()
	}
	return removed
}

func (self *AppState) UpdateMetrics() {
	GraphNodes.Set(float64(self.streets.NodeCount()))
	GraphEdges.Set(float64(self.streets.EdgeCount()))
	self.lock.RLock()
	defer self.lock.RUnlock()
	self._UpdateLayerMetrics()
}

func (self *AppState) _UpdateLayerMetrics() {
	LayerCentroids.Set(float64(len(self.layers.AllCentroids())))
}

//**********************************************************
// startup
//**********************************************************

// LoadAppState locates the pbf-extract in the data dir and either
// loads the preprocessed street graph and buildings from the cache or
// builds and caches them.
func LoadAppState(config Config) (*AppState, error) {
	err := os.MkdirAll(config.Cache.Dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	pbf_file, err := _FindPbfFile(config.Data.Dir)
	if err != nil {
		return nil, err
	}
	key, err := _CacheKey(pbf_file)
	if err != nil {
		return nil, err
	}
	prefix := filepath.Join(config.Cache.Dir, key)

	var base *comps.GraphBase
	var weight *comps.DefaultWeighting
	var buildings *population.Buildings
	var streets *graph.Graph
	if _CacheComplete(prefix) {
		slog.Info("loading preprocessed data from cache", "prefix", prefix)
		base = comps.Load[*comps.GraphBase](prefix)
		weight = comps.Load[*comps.DefaultWeighting](prefix)
		buildings = population.LoadBuildings(prefix)
		streets = graph.BuildGraph(base, weight, None[comps.IGraphIndex]())
		if streets.NodeCount() == 0 {
			return nil, parser.ErrEmptyGraph
		}
	} else {
		slog.Info("preprocessing extract", "file", pbf_file)
		base, weight, err = parser.ParseGraph(pbf_file, &parser.WalkingDecoder{})
		if err != nil {
			return nil, fmt.Errorf("parsing %v: %w", pbf_file, err)
		}
		buildings, err = population.ExtractBuildings(pbf_file, config.Population)
		if err != nil {
			return nil, fmt.Errorf("extracting buildings from %v: %w", pbf_file, err)
		}
		streets = graph.BuildGraph(base, weight, None[comps.IGraphIndex]())
		buildings.SnapToGraph(streets)
		comps.Store(base, prefix)
		comps.Store(weight, prefix)
		population.StoreBuildings(buildings, prefix)
		slog.Info("stored preprocessed data", "prefix", prefix)
	}

	state := &AppState{
		streets:    streets,
		buildings:  buildings,
		layer_file: filepath.Join(config.Cache.Dir, "layers"),
	}
	state.layers = layers.LoadLayers(state.layer_file)
	if state.layers.Entries.Length() == 0 && buildings.CentroidCount() > 0 {
		area := _FileStem(pbf_file)
		slog.Info("seeding layers from extracted buildings", "area", area)
		for _, layer := range buildings.ToLayers(area) {
			state.layers.Add(layer)
		}
		layers.StoreLayers(&state.layers, state.layer_file)
	}
	return state, nil
}

func _FindPbfFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading data dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pbf") {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", errors.New("no pbf-file found in data directory")
}

// The cache key ties the preprocessed components to the exact extract
// they were built from.
func _CacheKey(pbf_file string) (string, error) {
	file, err := os.Open(pbf_file)
	if err != nil {
		return "", err
	}
	defer file.Close()
	hasher := sha256.New()
	_, err = io.Copy(hasher, file)
	if err != nil {
		return "", err
	}
	digest := hex.EncodeToString(hasher.Sum(nil))
	return _FileStem(pbf_file) + "-" + digest[:8], nil
}

func _FileStem(file string) string {
	name := filepath.Base(file)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func _CacheComplete(prefix string) bool {
	for _, suffix := range []string{"-nodes", "-edges", "-geom", "-graph", "-weight"} {
		if !FileExists(prefix + suffix) {
			return false
		}
	}
	return population.BuildingsExist(prefix)
}

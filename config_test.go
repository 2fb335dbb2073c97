package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadConfigMissingFile(t *testing.T) {
	config := ReadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if config.Server.Listen != "0.0.0.0:8080" {
		t.Errorf("Listen = %v; want 0.0.0.0:8080", config.Server.Listen)
	}
	if config.Coverage.Radius != 500 {
		t.Errorf("Coverage.Radius = %v; want 500", config.Coverage.Radius)
	}
	if config.Population.SqmPerInhabitant != 40 {
		t.Errorf("SqmPerInhabitant = %v; want 40", config.Population.SqmPerInhabitant)
	}
}

func TestReadConfigOverlay(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  listen: "127.0.0.1:9000"
coverage:
  radius: 750
station:
  search-radius: 150
osm:
  max-polls: 5
`
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	config := ReadConfig(file)
	if config.Server.Listen != "127.0.0.1:9000" {
		t.Errorf("Listen = %v; want 127.0.0.1:9000", config.Server.Listen)
	}
	if config.Coverage.Radius != 750 {
		t.Errorf("Coverage.Radius = %v; want 750", config.Coverage.Radius)
	}
	if config.Station.SearchRadius != 150 {
		t.Errorf("Station.SearchRadius = %v; want 150", config.Station.SearchRadius)
	}
	if config.OSM.MaxPolls != 5 {
		t.Errorf("OSM.MaxPolls = %v; want 5", config.OSM.MaxPolls)
	}
	// untouched keys keep their defaults
	if config.Station.SampleInterval != 20 {
		t.Errorf("Station.SampleInterval = %v; want 20", config.Station.SampleInterval)
	}
	if config.Cache.Dir != "./cache/" {
		t.Errorf("Cache.Dir = %v; want ./cache/", config.Cache.Dir)
	}
}

package main

import (
	"os"

	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"

	"github.com/ttpr0/go-lineplanner/population"
)

//**********************************************************
// config
//**********************************************************

func ReadConfig(file string) Config {
	config := DefaultConfig()
	data, err := os.ReadFile(file)
	if err != nil {
		slog.Info("no config file found, using defaults", "file", file)
		return config
	}
	slog.Info("reading config file", "file", file)
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		slog.Error("failed to parse config file: " + err.Error())
		panic(err)
	}
	return config
}

type Config struct {
	Data struct {
		Dir string `yaml:"dir"`
	} `yaml:"data"`
	Cache struct {
		Dir string `yaml:"dir"`
	} `yaml:"cache"`
	Server struct {
		Listen       string   `yaml:"listen"`
		AllowOrigins []string `yaml:"allow-origins"`
		MaxRequests  int      `yaml:"max-requests"`
	} `yaml:"server"`
	Coverage struct {
		Radius float64 `yaml:"radius"`
	} `yaml:"coverage"`
	Station struct {
		SearchRadius   float64 `yaml:"search-radius"`
		SampleInterval float64 `yaml:"sample-interval"`
	} `yaml:"station"`
	Population population.Config `yaml:"population"`
	OSM        struct {
		OverpassEndpoint  string `yaml:"overpass-endpoint"`
		ProtomapsEndpoint string `yaml:"protomaps-endpoint"`
		MaxPolls          int    `yaml:"max-polls"`
		PollDelaySeconds  int    `yaml:"poll-delay-seconds"`
	} `yaml:"osm"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

func DefaultConfig() Config {
	config := Config{}
	config.Data.Dir = "./pbf/"
	config.Cache.Dir = "./cache/"
	config.Server.Listen = "0.0.0.0:8080"
	config.Server.AllowOrigins = []string{"*"}
	config.Server.MaxRequests = 32
	config.Coverage.Radius = 500
	config.Station.SearchRadius = 300
	config.Station.SampleInterval = 20
	config.Population = population.DefaultConfig()
	config.OSM.OverpassEndpoint = ""
	config.OSM.ProtomapsEndpoint = ""
	config.OSM.MaxPolls = 90
	config.OSM.PollDelaySeconds = 2
	config.Logging.Level = "info"
	return config
}

package main

import (
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using process environment")
	}

	config_file := os.Getenv("LINEPLANNER_CONFIG")
	if config_file == "" {
		config_file = "./config.yaml"
	}
	config := ReadConfig(config_file)
	if listen := os.Getenv("LINEPLANNER_LISTEN"); listen != "" {
		config.Server.Listen = listen
	}
	InitLogging(config.Logging.Level)

	slog.Info("starting lineplanner backend")
	state, err := LoadAppState(config)
	if err != nil {
		slog.Error("failed to load base data: " + err.Error())
		os.Exit(1)
	}
	state.UpdateMetrics()
	slog.Info("loading data done", "nodes", state.streets.NodeCount(), "edges", state.streets.EdgeCount())

	server := NewServer(state, config)
	if err := server.Run(); err != nil {
		slog.Error("server stopped: " + err.Error())
		os.Exit(1)
	}
}

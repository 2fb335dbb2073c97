package main

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lineplanner_requests_total",
		Help: "Total number of handled requests",
	}, []string{"endpoint", "status"})
	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lineplanner_request_duration_ms",
		Help:    "Request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 5000},
	}, []string{"endpoint"})
	GraphNodes = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "lineplanner_graph_nodes",
		Help: "Number of nodes in the street graph",
	})
	GraphEdges = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "lineplanner_graph_edges",
		Help: "Number of edges in the street graph",
	})
	LayerCentroids = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "lineplanner_layer_centroids",
		Help: "Number of centroids over all population layers",
	})
	ExtractDownloadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lineplanner_extract_downloads_total",
		Help: "Total number of downloaded map extracts",
	})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(GraphNodes)
	prometheus.MustRegister(GraphEdges)
	prometheus.MustRegister(LayerCentroids)
	prometheus.MustRegister(ExtractDownloadsTotal)
}

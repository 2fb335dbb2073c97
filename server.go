package main

import (
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/exp/slog"

	"github.com/ttpr0/go-lineplanner/osm"
)

//**********************************************************
// http server
//**********************************************************

type Server struct {
	state     *AppState
	config    Config
	overpass  *osm.OverpassClient
	protomaps *osm.ProtomapsClient
	limiter   chan struct{}
}

func NewServer(state *AppState, config Config) *Server {
	protomaps := osm.NewProtomapsClient(config.OSM.ProtomapsEndpoint)
	if config.OSM.MaxPolls > 0 && config.OSM.PollDelaySeconds > 0 {
		protomaps.SetPolling(config.OSM.MaxPolls, time.Duration(config.OSM.PollDelaySeconds)*time.Second)
	}
	max_requests := config.Server.MaxRequests
	if max_requests <= 0 {
		max_requests = 32
	}
	return &Server{
		state:     state,
		config:    config,
		overpass:  osm.NewOverpassClient(config.OSM.OverpassEndpoint),
		protomaps: protomaps,
		limiter:   make(chan struct{}, max_requests),
	}
}

func (self *Server) Run() error {
	router := self._BuildRouter()
	slog.Info("starting server", "listen", self.config.Server.Listen)
	return router.Run(self.config.Server.Listen)
}

func (self *Server) _BuildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(self._LogRequests())
	router.Use(self._TrackMetrics())
	router.Use(cors.New(self._CorsConfig()))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, NewStatusResponse("healthy"))
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/", self._LimitRequests())
	api.POST("/station-info", self.HandleStationInfo)
	api.POST("/coverage-info/:router", self.HandleCoverageInfo)
	api.POST("/find-station", self.HandleFindStation)
	api.GET("/layer", self.HandleListLayers)
	api.POST("/layer", self.HandleCreateLayer)
	api.DELETE("/layer/:id", self.HandleDeleteLayer)
	api.GET("/osm/admin-search", self.HandleAdminSearch)
	return router
}

func (self *Server) _CorsConfig() cors.Config {
	config := cors.DefaultConfig()
	config.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Authorization", "Accept", "Content-Type"}
	config.MaxAge = time.Hour
	origins := self.config.Server.AllowOrigins
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	return config
}

//**********************************************************
// middlewares
//**********************************************************

// Caps the number of concurrently computed requests, the handlers are
// CPU-bound.
func (self *Server) _LimitRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		self.limiter <- struct{}{}
		defer func() { <-self.limiter }()
		c.Next()
	}
}

func (self *Server) _LogRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("handled request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"ms", time.Since(start).Milliseconds(),
		)
	}
}

func (self *Server) _TrackMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		RequestsTotal.WithLabelValues(endpoint, strconv.Itoa(c.Writer.Status())).Inc()
		RequestDurationMs.WithLabelValues(endpoint).Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}
}

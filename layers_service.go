package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"github.com/ttpr0/go-lineplanner/layers"
	"github.com/ttpr0/go-lineplanner/population"
)

func (self *Server) HandleListLayers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"layers": self.state.LayerList()})
}

// Creates population layers for an admin area: resolves the area,
// downloads a fresh extract, extracts its buildings and merges the
// result into the layer set.
func (self *Server) HandleCreateLayer(c *gin.Context) {
	var request CreateLayerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse("layer", err.Error()))
		return
	}
	if request.Area == "" {
		c.JSON(http.StatusBadRequest, NewErrorResponse("layer", "an admin area name is required"))
		return
	}

	ctx := c.Request.Context()
	areas, err := self.overpass.SearchAdminAreas(ctx, request.Area)
	if err != nil {
		c.JSON(http.StatusBadGateway, NewErrorResponse("layer", err.Error()))
		return
	}
	if len(areas) == 0 {
		c.JSON(http.StatusNotFound, NewErrorResponse("layer", "no admin area found for "+request.Area))
		return
	}
	area := areas[0]

	pbf_path, err := self.protomaps.DownloadExtract(ctx, area, self.config.Data.Dir)
	if err != nil {
		c.JSON(http.StatusBadGateway, NewErrorResponse("layer", err.Error()))
		return
	}
	ExtractDownloadsTotal.Inc()

	buildings, err := population.ExtractBuildings(pbf_path, self.config.Population)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse("layer", err.Error()))
		return
	}
	buildings.SnapToGraph(self.state.streets)

	var new_layers []layers.Layer
	if request.Type != nil {
		centroids := buildings.Get(*request.Type)
		if len(centroids) == 0 {
			c.JSON(http.StatusNotFound, NewErrorResponse("layer", "extract contains no matching buildings"))
			return
		}
		new_layers = []layers.Layer{{
			ID:        uuid.New().String(),
			Type:      *request.Type,
			Area:      area.Name,
			Centroids: centroids,
		}}
	} else {
		new_layers = buildings.ToLayers(area.Name)
	}
	self.state.AddLayers(new_layers)
	slog.Info("created layers", "area", area.Name, "count", len(new_layers))
	c.JSON(http.StatusCreated, gin.H{"layers": new_layers})
}

func (self *Server) HandleDeleteLayer(c *gin.Context) {
	id := c.Param("id")
	if !self.state.RemoveLayer(id) {
		c.JSON(http.StatusNotFound, NewErrorResponse("layer", "no layer with id "+id))
		return
	}
	c.JSON(http.StatusOK, NewStatusResponse("deleted"))
}

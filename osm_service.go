package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Admin-area lookup backing the area picker of the layer service.
func (self *Server) HandleAdminSearch(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, NewErrorResponse("admin-search", "a name parameter is required"))
		return
	}
	areas, err := self.overpass.SearchAdminAreas(c.Request.Context(), name)
	if err != nil {
		c.JSON(http.StatusBadGateway, NewErrorResponse("admin-search", err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"areas": areas})
}
